package layout

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrInvalidLayout is returned by Validate when partition bounds are broken.
var ErrInvalidLayout = errors.New("invalid layout")

const tolerance = 1e-9

// Validate checks the partition invariants of a laid-out tree: every node
// stays inside the unit square, and the children of each node tile its
// angular span with no gaps or overlaps.
func Validate(r *Result) error {
	if r == nil || r.Root == nil {
		return nil
	}
	for _, n := range r.Nodes {
		if err := checkBounds(n); err != nil {
			return err
		}
		if len(n.Children) == 0 || n.Value == 0 {
			continue
		}
		spans := make([]float64, len(n.Children))
		prev := n.X0
		for i, c := range n.Children {
			if !scalar.EqualWithinAbs(c.X0, prev, tolerance) {
				return fmt.Errorf("%w: child %q of %q starts at %g, want %g", ErrInvalidLayout, c.Name(), n.Name(), c.X0, prev)
			}
			spans[i] = c.X1 - c.X0
			prev = c.X1
		}
		if total := floats.Sum(spans); !scalar.EqualWithinAbs(total, n.X1-n.X0, tolerance) {
			return fmt.Errorf("%w: children of %q span %g, parent spans %g", ErrInvalidLayout, n.Name(), total, n.X1-n.X0)
		}
	}
	return nil
}

func checkBounds(n *Node) error {
	in := func(v float64) bool { return v >= -tolerance && v <= 1+tolerance }
	if !in(n.X0) || !in(n.X1) || n.X0 > n.X1+tolerance {
		return fmt.Errorf("%w: %q x=[%g,%g]", ErrInvalidLayout, n.Name(), n.X0, n.X1)
	}
	if !in(n.Y0) || !in(n.Y1) || n.Y0 > n.Y1+tolerance {
		return fmt.Errorf("%w: %q y=[%g,%g]", ErrInvalidLayout, n.Name(), n.Y0, n.Y1)
	}
	return nil
}
