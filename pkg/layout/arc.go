package layout

import (
	"math"
	"strconv"
	"strings"
)

const epsilon = 1e-12

// Arc is the pixel geometry of one annular sector. Angles are in radians,
// measured clockwise from 12 o'clock.
type Arc struct {
	StartAngle  float64
	EndAngle    float64
	InnerRadius float64
	OuterRadius float64
}

// Arc maps a node's normalized bounds through the scales. Angles are clamped
// to [0, 2π] and radii to be non-negative, so nodes outside the zoomed
// domain collapse instead of wrapping around.
func (s Scales) Arc(n *Node) Arc {
	return Arc{
		StartAngle:  clamp(s.X.Apply(n.X0), 0, Tau),
		EndAngle:    clamp(s.X.Apply(n.X1), 0, Tau),
		InnerRadius: math.Max(0, s.Y.Apply(n.Y0)),
		OuterRadius: math.Max(0, s.Y.Apply(n.Y1)),
	}
}

// Span returns the angular extent of the arc.
func (a Arc) Span() float64 { return math.Abs(a.EndAngle - a.StartAngle) }

// Empty reports whether the arc covers no area.
func (a Arc) Empty() bool {
	return a.Span() <= epsilon || math.Abs(a.OuterRadius-a.InnerRadius) <= epsilon
}

// Path returns SVG path data for the arc, centred on the origin. Full rings
// are drawn as two half-circle pairs and rely on an evenodd fill rule to
// leave the hole open.
func (a Arc) Path() string {
	r0, r1 := a.InnerRadius, a.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0 := a.StartAngle - math.Pi/2
	a1 := a.EndAngle - math.Pi/2
	da := math.Abs(a1 - a0)
	cw := a1 >= a0

	var p pathBuilder
	switch {
	case r1 <= epsilon:
		p.move(0, 0)
	case da > Tau-epsilon:
		p.circle(r1, a0, cw)
		if r0 > epsilon {
			p.circle(r0, a1, !cw)
		}
	default:
		large := da >= math.Pi
		p.move(r1*math.Cos(a0), r1*math.Sin(a0))
		if da > epsilon {
			p.arc(r1, large, cw, r1*math.Cos(a1), r1*math.Sin(a1))
		}
		if r0 > epsilon {
			p.line(r0*math.Cos(a1), r0*math.Sin(a1))
			if da > epsilon {
				p.arc(r0, large, !cw, r0*math.Cos(a0), r0*math.Sin(a0))
			}
		} else {
			p.line(0, 0)
		}
	}
	p.close()
	return p.String()
}

// Contains reports whether the point (x, y), relative to the chart centre,
// falls inside the arc.
func (a Arc) Contains(x, y float64) bool {
	if a.Empty() {
		return false
	}
	r := math.Hypot(x, y)
	lo, hi := a.InnerRadius, a.OuterRadius
	if hi < lo {
		lo, hi = hi, lo
	}
	if r < lo || r >= hi {
		return false
	}
	theta := math.Atan2(x, -y)
	if theta < 0 {
		theta += Tau
	}
	start, end := a.StartAngle, a.EndAngle
	if end < start {
		start, end = end, start
	}
	if end-start > Tau-epsilon {
		return true
	}
	return theta >= start && theta < end
}

// Centroid returns the midpoint of the arc, relative to the chart centre.
func (a Arc) Centroid() (x, y float64) {
	r := (a.InnerRadius + a.OuterRadius) / 2
	theta := (a.StartAngle + a.EndAngle) / 2
	return r * math.Sin(theta), -r * math.Cos(theta)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

type pathBuilder struct {
	b strings.Builder
}

func (p *pathBuilder) move(x, y float64) {
	p.b.WriteString("M")
	p.point(x, y)
}

func (p *pathBuilder) line(x, y float64) {
	p.b.WriteString("L")
	p.point(x, y)
}

func (p *pathBuilder) arc(r float64, large, sweep bool, x, y float64) {
	p.b.WriteString("A")
	p.b.WriteString(num(r))
	p.b.WriteByte(',')
	p.b.WriteString(num(r))
	p.b.WriteString(",0,")
	p.b.WriteString(flag(large))
	p.b.WriteByte(',')
	p.b.WriteString(flag(sweep))
	p.b.WriteByte(',')
	p.point(x, y)
}

// circle draws a full circle of radius r starting at angle a0 (SVG angle
// convention) as two half arcs.
func (p *pathBuilder) circle(r, a0 float64, sweep bool) {
	x0, y0 := r*math.Cos(a0), r*math.Sin(a0)
	p.move(x0, y0)
	p.arc(r, true, sweep, -x0, -y0)
	p.arc(r, true, sweep, x0, y0)
}

func (p *pathBuilder) close() { p.b.WriteString("Z") }

func (p *pathBuilder) point(x, y float64) {
	p.b.WriteString(num(x))
	p.b.WriteByte(',')
	p.b.WriteString(num(y))
}

func (p *pathBuilder) String() string { return p.b.String() }

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
