package layout

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	domain [2]float64
	rng    [2]float64
}

// NewLinear returns a linear scale.
func NewLinear(domain, rng [2]float64) Linear {
	return Linear{domain: domain, rng: rng}
}

// Domain returns the scale's input extent.
func (s Linear) Domain() [2]float64 { return s.domain }

// Range returns the scale's output extent.
func (s Linear) Range() [2]float64 { return s.rng }

// WithDomain returns a copy of s with a new domain.
func (s Linear) WithDomain(d [2]float64) Linear {
	s.domain = d
	return s
}

// WithRange returns a copy of s with a new range.
func (s Linear) WithRange(r [2]float64) Linear {
	s.rng = r
	return s
}

// Apply maps v from the domain to the range. Values outside the domain are
// extrapolated. A degenerate domain maps everything to the middle of the
// range.
func (s Linear) Apply(v float64) float64 {
	return interpolateNormalized(normalize(s.domain[0], s.domain[1], v), s.rng)
}

// Invert maps a range value back to the domain.
func (s Linear) Invert(v float64) float64 {
	return interpolateNormalized(normalize(s.rng[0], s.rng[1], v), s.domain)
}

// Sqrt is a power scale with exponent one half: the domain is square-rooted
// before the linear mapping, so areas rather than radii stay proportional.
type Sqrt struct {
	domain [2]float64
	rng    [2]float64
}

// NewSqrt returns a square-root scale.
func NewSqrt(domain, rng [2]float64) Sqrt {
	return Sqrt{domain: domain, rng: rng}
}

// Domain returns the scale's input extent.
func (s Sqrt) Domain() [2]float64 { return s.domain }

// Range returns the scale's output extent.
func (s Sqrt) Range() [2]float64 { return s.rng }

// WithDomain returns a copy of s with a new domain.
func (s Sqrt) WithDomain(d [2]float64) Sqrt {
	s.domain = d
	return s
}

// WithRange returns a copy of s with a new range.
func (s Sqrt) WithRange(r [2]float64) Sqrt {
	s.rng = r
	return s
}

// Apply maps v from the domain to the range.
func (s Sqrt) Apply(v float64) float64 {
	t := normalize(signedSqrt(s.domain[0]), signedSqrt(s.domain[1]), signedSqrt(v))
	return interpolateNormalized(t, s.rng)
}

// Invert maps a range value back to the domain.
func (s Sqrt) Invert(v float64) float64 {
	t := normalize(s.rng[0], s.rng[1], v)
	root := interpolateNormalized(t, [2]float64{signedSqrt(s.domain[0]), signedSqrt(s.domain[1])})
	if root < 0 {
		return -root * root
	}
	return root * root
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

func normalize(a, b, v float64) float64 {
	if b == a {
		return 0.5
	}
	return (v - a) / (b - a)
}

func interpolateNormalized(t float64, r [2]float64) float64 {
	return r[0]*(1-t) + r[1]*t
}

// Scales is the pair of scales a sunburst is drawn with: X maps the
// normalized angular position to radians, Y maps the normalized radial
// position to pixels.
type Scales struct {
	X Linear
	Y Sqrt
}

// DefaultScales returns the unzoomed scales for a chart of the given radius.
func DefaultScales(radius float64) Scales {
	return Scales{
		X: NewLinear([2]float64{0, 1}, [2]float64{0, Tau}),
		Y: NewSqrt([2]float64{0, 1}, [2]float64{0, radius}),
	}
}
