package interaction

import "github.com/vanderheijden86/sunburst/pkg/layout"

// ArcFrame is one arc as it should be painted.
type ArcFrame struct {
	Node    *layout.Node
	Arc     layout.Arc
	Path    string
	Fill    string
	Opacity float64
}

// Frame is an immutable snapshot of everything a renderer draws: arcs in
// paint order, the breadcrumb trail and the hover caption.
type Frame struct {
	Radius         float64
	Arcs           []ArcFrame
	Trail          []Segment
	TrailVisible   bool
	Caption        string
	CaptionVisible bool
	State          State
}

// Frame snapshots the machine under its current viewport.
func (m *Machine) Frame() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.viewport.Scales()
	f := Frame{
		Radius:         m.radius,
		Arcs:           make([]ArcFrame, 0, len(m.result.Nodes)),
		Trail:          m.trail.Segments(),
		TrailVisible:   m.trail.Visible(),
		Caption:        m.caption,
		CaptionVisible: m.caption != "" || m.hovered != nil,
	}
	switch {
	case m.hovered != nil:
		f.State = Hovering
	case m.zoomTarget != nil:
		f.State = Zoomed
	}
	for i, n := range m.result.Nodes {
		a := s.Arc(n)
		f.Arcs = append(f.Arcs, ArcFrame{
			Node:    n,
			Arc:     a,
			Path:    a.Path(),
			Fill:    n.Color(),
			Opacity: m.opacity[i],
		})
	}
	return f
}

// Visible returns the arcs that cover some area under the frame's viewport.
func (f Frame) Visible() []ArcFrame {
	out := make([]ArcFrame, 0, len(f.Arcs))
	for _, a := range f.Arcs {
		if !a.Arc.Empty() {
			out = append(out, a)
		}
	}
	return out
}
