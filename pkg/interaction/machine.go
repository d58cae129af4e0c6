// Package interaction drives hover highlighting, click-to-zoom and the
// pointer-leave reset of a laid-out sunburst.
//
// The Machine is a pure state machine: pointer events change targets,
// Advance samples running transitions against a caller-supplied instant, and
// Frame snapshots everything a renderer needs. Nothing here draws.
package interaction

import (
	"sync"
	"time"

	"github.com/vanderheijden86/sunburst/pkg/debug"
	"github.com/vanderheijden86/sunburst/pkg/layout"
)

// Default timings and geometry.
const (
	DefaultZoomDuration    = 20 * time.Millisecond
	DefaultFadeDuration    = 200 * time.Millisecond
	DefaultInnerRingOffset = 20.0

	// DimOpacity is applied to every arc outside the hovered path.
	DimOpacity = 0.8
)

// State is the coarse interaction state.
type State int

const (
	Idle State = iota
	Hovering
	Zoomed
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Zoomed:
		return "zoomed"
	default:
		return "idle"
	}
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the clock used to timestamp transitions started by events.
func WithClock(clock func() time.Time) Option {
	return func(m *Machine) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithZoomDuration sets the click-to-zoom transition length.
func WithZoomDuration(d time.Duration) Option {
	return func(m *Machine) { m.zoomDuration = d }
}

// WithFadeDuration sets the pointer-leave fade length.
func WithFadeDuration(d time.Duration) Option {
	return func(m *Machine) { m.fadeDuration = d }
}

// WithInnerRingOffset sets the inner radius left free when zooming onto a
// non-root node.
func WithInnerRingOffset(px float64) Option {
	return func(m *Machine) { m.innerOffset = px }
}

// WithEase sets the easing used by zoom and fade transitions.
func WithEase(e Ease) Option {
	return func(m *Machine) {
		if e != nil {
			m.ease = e
		}
	}
}

type fade struct {
	from     []float64
	start    time.Time
	duration time.Duration
}

// Machine owns the interaction state of one chart instance.
type Machine struct {
	mu sync.Mutex

	result *layout.Result
	radius float64

	clock        func() time.Time
	zoomDuration time.Duration
	fadeDuration time.Duration
	innerOffset  float64
	ease         Ease

	viewport   Viewport
	zoom       *Transition
	zoomTarget *layout.Node

	opacity []float64
	fade    *fade

	hovered   *layout.Node
	trail     Trail
	caption   string
	listening bool
}

// New creates a machine over a laid-out tree. The machine starts Idle with
// every arc fully opaque and hover listeners attached.
func New(result *layout.Result, opts ...Option) *Machine {
	if result == nil {
		result = &layout.Result{}
	}
	m := &Machine{
		result:       result,
		radius:       result.Radius,
		clock:        time.Now,
		zoomDuration: DefaultZoomDuration,
		fadeDuration: DefaultFadeDuration,
		innerOffset:  DefaultInnerRingOffset,
		ease:         CubicInOut,
		viewport:     DefaultViewport(result.Radius),
		opacity:      make([]float64, len(result.Nodes)),
		listening:    true,
	}
	for i := range m.opacity {
		m.opacity[i] = 1
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Layout returns the laid-out tree the machine drives.
func (m *Machine) Layout() *layout.Result { return m.result }

// Hover highlights n and its ancestors and shows the breadcrumb trail.
// It reports false when listeners are detached and the event was dropped.
func (m *Machine) Hover(n *layout.Node) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.listening || !m.owns(n) {
		return false
	}
	path := n.Path()
	m.hovered = n
	m.caption = n.Name()
	m.trail.Update(path)
	m.trail.Show()

	for i := range m.opacity {
		m.opacity[i] = DimOpacity
	}
	for _, p := range path {
		m.opacity[p.Index] = 1
	}
	return true
}

// Click starts a zoom from the current viewport onto n. A click that lands
// while another zoom is running starts from wherever that zoom had got to.
func (m *Machine) Click(n *layout.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.owns(n) {
		return
	}
	now := m.clock()
	from := m.viewportAt(now)
	m.viewport = from
	m.zoom = &Transition{
		From:     from,
		To:       ZoomViewport(n, m.radius, m.innerOffset),
		Start:    now,
		Duration: m.zoomDuration,
		Ease:     m.ease,
	}
	m.zoomTarget = n
	if n.Parent == nil {
		m.zoomTarget = nil
	}
	debug.Log("interaction: zoom to %q depth=%d", n.Name(), n.Depth)
}

// Leave hides the trail and caption, detaches hover listeners and fades
// every arc back to full opacity. Listeners come back once the fade has
// been observed to complete by Advance.
func (m *Machine) Leave() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trail.Hide()
	m.caption = ""
	m.hovered = nil
	m.listening = false
	from := make([]float64, len(m.opacity))
	copy(from, m.opacity)
	m.fade = &fade{from: from, start: m.clock(), duration: m.fadeDuration}
}

// Advance steps running transitions to now and reports whether any is still
// in flight.
func (m *Machine) Advance(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	animating := false
	if m.zoom != nil {
		m.viewport = m.zoom.At(now)
		if m.zoom.Done(now) {
			m.zoom = nil
		} else {
			animating = true
		}
	}
	if m.fade != nil {
		p := progress(m.fade.start, m.fade.duration, now)
		if p >= 1 {
			for i := range m.opacity {
				m.opacity[i] = 1
			}
			m.fade = nil
			m.listening = true
		} else {
			e := m.ease(p)
			for i, from := range m.fade.from {
				m.opacity[i] = lerp(from, 1, e)
			}
			animating = true
		}
	}
	return animating
}

// Animating reports whether a zoom or fade is in flight.
func (m *Machine) Animating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zoom != nil || m.fade != nil
}

// State reports Hovering while a node is hovered, Zoomed while zoomed into
// a non-root node, and Idle otherwise.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.hovered != nil:
		return Hovering
	case m.zoomTarget != nil:
		return Zoomed
	default:
		return Idle
	}
}

// Hovered returns the hovered node, or nil.
func (m *Machine) Hovered() *layout.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hovered
}

// ZoomTarget returns the node last zoomed onto, or nil when the chart shows
// the whole tree.
func (m *Machine) ZoomTarget() *layout.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zoomTarget
}

// Listening reports whether hover events are currently accepted.
func (m *Machine) Listening() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listening
}

// Viewport returns the viewport as of the last Advance or event.
func (m *Machine) Viewport() Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

// Opacity returns the opacity of the node at index i.
func (m *Machine) Opacity(i int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.opacity) {
		return 0
	}
	return m.opacity[i]
}

// Trail returns a copy of the breadcrumb segments.
func (m *Machine) Trail() []Segment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trail.Segments()
}

// Locate hit-tests a point relative to the chart centre against the
// current viewport.
func (m *Machine) Locate(x, y float64) *layout.Node {
	m.mu.Lock()
	s := m.viewport.Scales()
	m.mu.Unlock()
	return layout.Locate(m.result, s, x, y)
}

func (m *Machine) owns(n *layout.Node) bool {
	return n != nil && n.Index < len(m.result.Nodes) && m.result.Nodes[n.Index] == n
}

func (m *Machine) viewportAt(now time.Time) Viewport {
	if m.zoom == nil {
		return m.viewport
	}
	return m.zoom.At(now)
}
