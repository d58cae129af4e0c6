package layout

// Locate returns the deepest node whose arc under s contains the point
// (x, y), given relative to the chart centre. Nodes are tested in reverse
// paint order, so descendants win over the root disc beneath them. It
// returns nil when the point misses every arc.
func Locate(r *Result, s Scales, x, y float64) *Node {
	if r == nil {
		return nil
	}
	for i := len(r.Nodes) - 1; i >= 0; i-- {
		n := r.Nodes[i]
		if s.Arc(n).Contains(x, y) {
			return n
		}
	}
	return nil
}
