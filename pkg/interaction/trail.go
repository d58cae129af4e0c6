package interaction

import "github.com/vanderheijden86/sunburst/pkg/layout"

// Segment is one breadcrumb in the trail. ID is stable for as long as a
// segment with the same key stays in the trail, so hosts can keep the
// rendered element instead of recreating it.
type Segment struct {
	ID    int
	Key   layout.Key
	Node  *layout.Node
	Index int
}

// Label returns the text shown on the segment.
func (s Segment) Label() string { return s.Key.Name }

// Color returns the segment fill.
func (s Segment) Color() string { return s.Node.Color() }

// Trail is the breadcrumb sequence joined against hovered paths by
// (name, depth).
type Trail struct {
	segments []Segment
	visible  bool
	nextID   int
}

// Update joins the trail against path. Segments whose key survives keep
// their ID and take the new node and position; the rest exit. Nodes with
// no matching segment enter with a fresh ID.
func (t *Trail) Update(path []*layout.Node) (entered, exited []Segment) {
	prev := make(map[layout.Key]Segment, len(t.segments))
	for _, s := range t.segments {
		prev[s.Key] = s
	}
	next := make([]Segment, 0, len(path))
	kept := make(map[layout.Key]bool, len(path))
	for i, n := range path {
		key := n.Key()
		seg, ok := prev[key]
		if !ok {
			t.nextID++
			seg = Segment{ID: t.nextID, Key: key}
			entered = append(entered, seg)
		}
		kept[key] = true
		seg.Node = n
		seg.Index = i
		next = append(next, seg)
	}
	for _, s := range t.segments {
		if !kept[s.Key] {
			exited = append(exited, s)
		}
	}
	t.segments = next
	for i := range entered {
		entered[i] = t.segments[indexOfID(t.segments, entered[i].ID)]
	}
	return entered, exited
}

func indexOfID(segs []Segment, id int) int {
	for i, s := range segs {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Segments returns a copy of the current segments in order.
func (t *Trail) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Visible reports whether the trail is shown.
func (t *Trail) Visible() bool { return t.visible }

// Show makes the trail visible.
func (t *Trail) Show() { t.visible = true }

// Hide hides the trail without clearing it.
func (t *Trail) Hide() { t.visible = false }

// Len returns the number of segments.
func (t *Trail) Len() int { return len(t.segments) }
