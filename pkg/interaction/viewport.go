package interaction

import (
	"time"

	"github.com/vanderheijden86/sunburst/pkg/layout"
)

// Viewport is the pair of scales every arc is currently drawn with. All arcs
// read the same viewport, so a zoom moves them in lockstep.
type Viewport struct {
	X layout.Linear
	Y layout.Sqrt
}

// DefaultViewport is the unzoomed viewport for a chart of the given radius.
func DefaultViewport(radius float64) Viewport {
	s := layout.DefaultScales(radius)
	return Viewport{X: s.X, Y: s.Y}
}

// ZoomViewport returns the viewport that makes n's subtree fill the chart:
// the angle domain becomes n's span, the radius domain starts at n's inner
// edge, and non-root targets leave an inner ring of innerOffset pixels.
func ZoomViewport(n *layout.Node, radius, innerOffset float64) Viewport {
	inner := 0.0
	if n.Y0 != 0 {
		inner = innerOffset
	}
	return Viewport{
		X: layout.NewLinear([2]float64{n.X0, n.X1}, [2]float64{0, layout.Tau}),
		Y: layout.NewSqrt([2]float64{n.Y0, 1}, [2]float64{inner, radius}),
	}
}

// Scales returns the viewport as layout scales.
func (v Viewport) Scales() layout.Scales {
	return layout.Scales{X: v.X, Y: v.Y}
}

// Lerp interpolates every domain and range of v towards to.
func (v Viewport) Lerp(to Viewport, t float64) Viewport {
	return Viewport{
		X: layout.NewLinear(lerp2(v.X.Domain(), to.X.Domain(), t), lerp2(v.X.Range(), to.X.Range(), t)),
		Y: layout.NewSqrt(lerp2(v.Y.Domain(), to.Y.Domain(), t), lerp2(v.Y.Range(), to.Y.Range(), t)),
	}
}

func lerp2(a, b [2]float64, t float64) [2]float64 {
	return [2]float64{lerp(a[0], b[0], t), lerp(a[1], b[1], t)}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Transition is a timed interpolation between two viewports. It holds no
// clock of its own: callers sample it with At.
type Transition struct {
	From     Viewport
	To       Viewport
	Start    time.Time
	Duration time.Duration
	Ease     Ease
}

// Progress returns the linear progress in [0, 1] at now.
func (tr Transition) Progress(now time.Time) float64 {
	return progress(tr.Start, tr.Duration, now)
}

// Done reports whether the transition has settled at now.
func (tr Transition) Done(now time.Time) bool {
	return tr.Progress(now) >= 1
}

// At samples the viewport at now.
func (tr Transition) At(now time.Time) Viewport {
	p := tr.Progress(now)
	if p >= 1 {
		return tr.To
	}
	ease := tr.Ease
	if ease == nil {
		ease = CubicInOut
	}
	return tr.From.Lerp(tr.To, ease(p))
}

func progress(start time.Time, d time.Duration, now time.Time) float64 {
	if d <= 0 {
		return 1
	}
	elapsed := now.Sub(start)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= d:
		return 1
	}
	return float64(elapsed) / float64(d)
}
