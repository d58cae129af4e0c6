package interaction

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/vanderheijden86/sunburst/pkg/layout"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func leaf(name string) *model.Node { return &model.Node{Name: name, Color: "#6c5efb", Size: 1} }

func branch(name string, children ...*model.Node) *model.Node {
	return &model.Node{Name: name, Color: "#00af3d", Children: children}
}

// fixture lays out two projects: P with two tasks and P2 with one.
func fixture() *layout.Result {
	root := branch("",
		branch("P",
			branch("Ph",
				branch("T", leaf("C1"), leaf("C2")),
				branch("T2", leaf("C3")),
			),
		),
		branch("P2", branch("Ph", branch("T", leaf("C1")))),
	)
	return layout.Layout(root, 100)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newMachine(t *testing.T) (*Machine, *fakeClock, *layout.Result) {
	t.Helper()
	clock := newFakeClock()
	res := fixture()
	return New(res, WithClock(clock.Now)), clock, res
}

func trailNames(segs []Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Label()
	}
	return out
}

func TestMachine_StartsIdle(t *testing.T) {
	m, _, res := newMachine(t)
	if m.State() != Idle {
		t.Fatalf("expected idle, got %v", m.State())
	}
	if !m.Listening() {
		t.Fatal("listeners should start attached")
	}
	for i := range res.Nodes {
		if m.Opacity(i) != 1 {
			t.Fatalf("arc %d opacity %g, want 1", i, m.Opacity(i))
		}
	}
	f := m.Frame()
	if f.TrailVisible || f.CaptionVisible {
		t.Error("trail and caption should start hidden")
	}
	if len(f.Arcs) != len(res.Nodes) {
		t.Errorf("frame has %d arcs, want %d", len(f.Arcs), len(res.Nodes))
	}
}

// Hovering a leaf shows the full chain below the root, leaf included.
func TestMachine_HoverLeaf(t *testing.T) {
	m, _, res := newMachine(t)
	c := res.Find("P", "Ph", "T", "C1")

	if !m.Hover(c) {
		t.Fatal("hover dropped")
	}
	if m.State() != Hovering {
		t.Fatalf("expected hovering, got %v", m.State())
	}
	got := trailNames(m.Trail())
	want := []string{"P", "Ph", "T", "C1"}
	if len(got) != len(want) {
		t.Fatalf("trail = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trail = %v, want %v", got, want)
		}
	}

	onPath := map[*layout.Node]bool{}
	for _, n := range c.Path() {
		onPath[n] = true
	}
	for i, n := range res.Nodes {
		want := DimOpacity
		if onPath[n] {
			want = 1
		}
		if m.Opacity(i) != want {
			t.Errorf("%q opacity %g, want %g", n.Name(), m.Opacity(i), want)
		}
	}
	if m.Opacity(res.Root.Index) != DimOpacity {
		t.Error("root is never part of the highlighted path")
	}

	f := m.Frame()
	if !f.TrailVisible || f.Caption != "C1" || !f.CaptionVisible {
		t.Errorf("frame trail=%v caption=%q", f.TrailVisible, f.Caption)
	}
}

func TestMachine_TrailKeepsSharedSegments(t *testing.T) {
	m, _, res := newMachine(t)
	m.Hover(res.Find("P", "Ph", "T", "C1"))
	first := m.Trail()

	m.Hover(res.Find("P", "Ph", "T2", "C3"))
	second := m.Trail()

	if first[0].ID != second[0].ID || first[1].ID != second[1].ID {
		t.Errorf("shared ancestors should keep their segments: %v -> %v", first, second)
	}
	if first[2].ID == second[2].ID {
		t.Errorf("T and T2 differ by name and should not share a segment")
	}
}

// Segments are keyed by (name, depth), so a same-named node in another
// project reuses the segment.
func TestTrail_KeyedByNameAndDepth(t *testing.T) {
	res := fixture()
	var tr Trail
	entered, _ := tr.Update(res.Find("P", "Ph").Path())
	if len(entered) != 2 {
		t.Fatalf("expected 2 entering segments, got %d", len(entered))
	}
	ph := tr.Segments()[1]

	entered, exited := tr.Update(res.Find("P2", "Ph").Path())
	if len(entered) != 1 || entered[0].Label() != "P2" {
		t.Fatalf("expected P2 to enter, got %v", trailNames(entered))
	}
	if len(exited) != 1 || exited[0].Label() != "P" {
		t.Fatalf("expected P to exit, got %v", trailNames(exited))
	}
	if got := tr.Segments()[1]; got.ID != ph.ID || got.Node != res.Find("P2", "Ph") {
		t.Errorf("Ph segment should persist and rebind to the new node")
	}

	_, exited = tr.Update(nil)
	if len(exited) != 2 || tr.Len() != 0 {
		t.Errorf("empty path should clear the trail")
	}
}

func TestMachine_HoverRootDimsEverything(t *testing.T) {
	m, _, res := newMachine(t)
	m.Hover(res.Root)
	if len(m.Trail()) != 0 {
		t.Errorf("root trail should be empty")
	}
	for i := range res.Nodes {
		if m.Opacity(i) != DimOpacity {
			t.Fatalf("arc %d opacity %g, want %g", i, m.Opacity(i), DimOpacity)
		}
	}
}

func TestMachine_HoverForeignNodeIgnored(t *testing.T) {
	m, _, _ := newMachine(t)
	other := fixture()
	if m.Hover(other.Find("P")) {
		t.Error("node from another layout should be ignored")
	}
	if m.Hover(nil) {
		t.Error("nil node should be ignored")
	}
}

// Clicking a node zooms so that its subtree covers the whole circle.
func TestMachine_ClickZoom(t *testing.T) {
	m, clock, res := newMachine(t)
	target := res.Find("P", "Ph")

	m.Click(target)
	if !m.Advance(clock.Now()) {
		t.Fatal("zoom should be in flight right after the click")
	}

	mid := clock.Advance(DefaultZoomDuration / 2)
	m.Advance(mid)
	d := m.Viewport().X.Domain()
	if !approx(d[0], target.X0/2) || !approx(d[1], (1+target.X1)/2) {
		t.Errorf("midpoint X domain = %v", d)
	}

	end := clock.Advance(DefaultZoomDuration / 2)
	if m.Advance(end) {
		t.Fatal("zoom should have settled")
	}
	if m.State() != Zoomed || m.ZoomTarget() != target {
		t.Fatalf("expected zoomed onto %q", target.Name())
	}

	s := m.Viewport().Scales()
	a := s.Arc(target)
	if !approx(a.StartAngle, 0) || !approx(a.EndAngle, layout.Tau) {
		t.Errorf("target angles [%g,%g], want [0,2π]", a.StartAngle, a.EndAngle)
	}
	if !approx(a.InnerRadius, DefaultInnerRingOffset) {
		t.Errorf("target inner radius %g, want %g", a.InnerRadius, DefaultInnerRingOffset)
	}
	for _, n := range res.Nodes {
		if n.Depth == 4 && target.IsAncestorOf(n) {
			if got := s.Arc(n).OuterRadius; !approx(got, 100) {
				t.Errorf("leaf %q outer radius %g, want 100", n.Name(), got)
			}
		}
	}
	if !s.Arc(res.Find("P2")).Empty() {
		t.Error("arcs outside the zoomed subtree should collapse")
	}
}

func TestMachine_ClickRootResetsZoom(t *testing.T) {
	m, clock, res := newMachine(t)
	m.Click(res.Find("P"))
	m.Advance(clock.Advance(time.Second))
	m.Click(res.Root)
	m.Advance(clock.Advance(time.Second))

	if m.State() != Idle || m.ZoomTarget() != nil {
		t.Fatalf("zooming onto the root should return to idle, got %v", m.State())
	}
	v := m.Viewport()
	if v.X.Domain() != [2]float64{0, 1} || v.Y.Range() != [2]float64{0, 100} {
		t.Errorf("viewport not reset: %v %v", v.X.Domain(), v.Y.Range())
	}
}

// A second click mid-zoom starts from the interpolated viewport.
func TestMachine_ClickInterruptsZoom(t *testing.T) {
	m, clock, res := newMachine(t)
	m.Click(res.Find("P"))
	clock.Advance(DefaultZoomDuration / 2)
	m.Click(res.Find("P2"))
	m.Advance(clock.Now())

	d := m.Viewport().X.Domain()
	if d == [2]float64{0, 1} {
		t.Error("second zoom should start from the partially zoomed viewport")
	}
	m.Advance(clock.Advance(DefaultZoomDuration))
	p2 := res.Find("P2")
	if got := m.Viewport().X.Domain(); !approx(got[0], p2.X0) || !approx(got[1], p2.X1) {
		t.Errorf("final domain %v, want [%g,%g]", got, p2.X0, p2.X1)
	}
}

func TestMachine_LeaveReattachesAfterFade(t *testing.T) {
	m, clock, res := newMachine(t)
	m.Hover(res.Find("P", "Ph", "T", "C1"))

	m.Leave()
	f := m.Frame()
	if f.TrailVisible || f.CaptionVisible {
		t.Fatal("leave should hide the trail and caption immediately")
	}
	if m.Listening() {
		t.Fatal("listeners should detach during the fade")
	}
	if m.State() != Idle {
		t.Fatalf("expected idle after leave, got %v", m.State())
	}

	clock.Advance(DefaultFadeDuration / 2)
	if !m.Advance(clock.Now()) {
		t.Fatal("fade should be running")
	}
	if m.Hover(res.Find("P")) {
		t.Fatal("hover during the fade should be dropped")
	}
	root := m.Opacity(res.Root.Index)
	if root <= DimOpacity || root >= 1 {
		t.Errorf("root opacity mid-fade %g, want between %g and 1", root, DimOpacity)
	}

	clock.Advance(DefaultFadeDuration/2 - time.Millisecond)
	m.Advance(clock.Now())
	if m.Listening() {
		t.Fatal("listeners must not reattach before the fade completes")
	}

	clock.Advance(time.Millisecond)
	if m.Advance(clock.Now()) {
		t.Fatal("fade should be done")
	}
	for i := range res.Nodes {
		if m.Opacity(i) != 1 {
			t.Fatalf("arc %d opacity %g after fade, want 1", i, m.Opacity(i))
		}
	}
	if !m.Listening() {
		t.Fatal("listeners should reattach once opacity has settled")
	}
	if !m.Hover(res.Find("P")) {
		t.Fatal("hover should work again")
	}
}

func TestMachine_HoverDuringZoom(t *testing.T) {
	m, clock, res := newMachine(t)
	m.Click(res.Find("P"))
	clock.Advance(DefaultZoomDuration / 4)
	if !m.Hover(res.Find("P", "Ph")) {
		t.Fatal("hover should race with a running zoom")
	}
	m.Advance(clock.Advance(DefaultZoomDuration))
	if m.State() != Hovering || m.ZoomTarget() != res.Find("P") {
		t.Errorf("state %v target %v", m.State(), m.ZoomTarget())
	}
}

func TestMachine_LocateFollowsViewport(t *testing.T) {
	m, clock, res := newMachine(t)
	before := m.Locate(0, -99)
	if before == nil || before.Depth != 4 {
		t.Fatalf("expected a leaf at the rim, got %v", before)
	}
	m.Click(res.Find("P2"))
	m.Advance(clock.Advance(time.Second))
	after := m.Locate(0, -99)
	if after == nil || after.Name() != "C1" || !res.Find("P2").IsAncestorOf(after) {
		t.Fatalf("expected P2's leaf after zoom, got %v", after)
	}
}

func TestMachine_ConcurrentEvents(t *testing.T) {
	m, clock, res := newMachine(t)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				n := res.Nodes[(i+j)%len(res.Nodes)]
				switch j % 4 {
				case 0:
					m.Hover(n)
				case 1:
					m.Click(n)
				case 2:
					m.Advance(clock.Advance(time.Millisecond))
				default:
					_ = m.Frame()
				}
			}
		}(i)
	}
	wg.Wait()
	m.Leave()
	m.Advance(clock.Advance(time.Second))
	if !m.Listening() {
		t.Error("listeners should be attached after the final fade")
	}
}

func TestNew_EmptyLayout(t *testing.T) {
	m := New(layout.Layout(nil, 100))
	if f := m.Frame(); len(f.Arcs) != 0 {
		t.Errorf("expected no arcs, got %d", len(f.Arcs))
	}
	m.Leave()
	m.Advance(time.Now().Add(time.Second))
	if !m.Listening() {
		t.Error("fade over no arcs should still complete")
	}
}
