package layout

import (
	"math"
	"testing"
)

func TestLinear(t *testing.T) {
	s := NewLinear([2]float64{0, 1}, [2]float64{0, Tau})
	if got := s.Apply(0.5); !approx(got, math.Pi) {
		t.Errorf("Apply(0.5) = %g, want π", got)
	}
	if got := s.Invert(math.Pi); !approx(got, 0.5) {
		t.Errorf("Invert(π) = %g, want 0.5", got)
	}
	if got := s.Apply(1.5); !approx(got, 3*math.Pi) {
		t.Errorf("Apply extrapolates: got %g", got)
	}
	z := s.WithDomain([2]float64{0.25, 0.5})
	if got := z.Apply(0.25); !approx(got, 0) {
		t.Errorf("zoomed Apply(x0) = %g, want 0", got)
	}
	if got := z.Apply(0.5); !approx(got, Tau) {
		t.Errorf("zoomed Apply(x1) = %g, want 2π", got)
	}
	if s.Domain() != [2]float64{0, 1} {
		t.Errorf("WithDomain mutated the receiver")
	}
}

func TestLinear_DegenerateDomain(t *testing.T) {
	s := NewLinear([2]float64{0.5, 0.5}, [2]float64{0, 10})
	if got := s.Apply(0.9); got != 5 {
		t.Errorf("degenerate domain should map to range midpoint, got %g", got)
	}
}

func TestSqrt(t *testing.T) {
	s := NewSqrt([2]float64{0, 1}, [2]float64{0, 200})
	if got := s.Apply(0.25); !approx(got, 100) {
		t.Errorf("Apply(0.25) = %g, want 100", got)
	}
	if got := s.Apply(1); !approx(got, 200) {
		t.Errorf("Apply(1) = %g, want 200", got)
	}
	if got := s.Invert(100); !approx(got, 0.25) {
		t.Errorf("Invert(100) = %g, want 0.25", got)
	}
	r := s.WithRange([2]float64{20, 200})
	if got := r.Apply(0); !approx(got, 20) {
		t.Errorf("Apply(0) with offset range = %g, want 20", got)
	}
}

func TestDefaultScales(t *testing.T) {
	s := DefaultScales(150)
	if s.X.Range() != [2]float64{0, Tau} {
		t.Errorf("X range = %v", s.X.Range())
	}
	if s.Y.Range() != [2]float64{0, 150} || s.Y.Domain() != [2]float64{0, 1} {
		t.Errorf("Y = %v -> %v", s.Y.Domain(), s.Y.Range())
	}
}
