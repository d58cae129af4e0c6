// Package layout turns a status tree into radial partition geometry.
//
// Every node receives normalized angular bounds [X0, X1] and radial bounds
// [Y0, Y1] inside the unit square. Angular extent is proportional to the
// number of condition leaves beneath the node; radial extent is one uniform
// band per depth. Scales then map the unit square to radians and pixels.
package layout

import (
	"sort"

	"github.com/vanderheijden86/sunburst/pkg/metrics"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// Node is a positioned tree node.
type Node struct {
	Data     *model.Node
	Parent   *Node
	Children []*Node

	// Depth is 0 for the root. Height is the longest distance to a leaf.
	Depth  int
	Height int
	// Value is the summed leaf size of the subtree.
	Value float64

	X0, X1 float64
	Y0, Y1 float64

	// Index is the node's position in Result.Nodes.
	Index int
}

// Name returns the source node name.
func (n *Node) Name() string { return n.Data.Name }

// Color returns the source node colour token.
func (n *Node) Color() string { return n.Data.Color }

// Key identifies the node within a breadcrumb: its name plus its depth.
type Key struct {
	Name  string
	Depth int
}

// Key returns the breadcrumb key for n.
func (n *Node) Key() Key { return Key{Name: n.Data.Name, Depth: n.Depth} }

// Ancestors returns n followed by its parent, grandparent and so on up to the
// root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

// Path returns the chain from the root's child down to n inclusive. The root
// itself is never part of a path; the path of the root is empty.
func (n *Node) Path() []*Node {
	anc := n.Ancestors()
	path := make([]*Node, 0, len(anc))
	for i := len(anc) - 1; i >= 0; i-- {
		if anc[i].Parent == nil {
			continue
		}
		path = append(path, anc[i])
	}
	return path
}

// IsAncestorOf reports whether n is other or one of other's ancestors.
func (n *Node) IsAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Result is a laid-out tree.
type Result struct {
	Root *Node
	// Nodes lists every node in depth-first pre-order, root first, which is
	// also the paint order.
	Nodes  []*Node
	Radius float64
}

// Layout builds the hierarchy over root, sums leaf sizes, orders siblings by
// descending value and partitions the unit square.
func Layout(root *model.Node, radius float64) *Result {
	defer metrics.Timer(metrics.Layout)()

	res := &Result{Radius: radius}
	if root == nil {
		return res
	}
	res.Root = wrap(root, nil, 0)
	sum(res.Root)
	partition(res.Root)
	res.Root.visit(func(n *Node) {
		n.Index = len(res.Nodes)
		res.Nodes = append(res.Nodes, n)
	})
	return res
}

// Scales returns the unzoomed scales for the result's radius.
func (r *Result) Scales() Scales {
	return DefaultScales(r.Radius)
}

// Find returns the node reached by following names from the root, or nil.
func (r *Result) Find(names ...string) *Node {
	cur := r.Root
	for _, name := range names {
		if cur == nil {
			return nil
		}
		var next *Node
		for _, c := range cur.Children {
			if c.Name() == name {
				next = c
				break
			}
		}
		cur = next
	}
	return cur
}

func wrap(src *model.Node, parent *Node, depth int) *Node {
	n := &Node{Data: src, Parent: parent, Depth: depth}
	if len(src.Children) > 0 {
		n.Children = make([]*Node, len(src.Children))
		for i, c := range src.Children {
			n.Children[i] = wrap(c, n, depth+1)
		}
	}
	return n
}

// sum computes Value and Height bottom-up, then orders children by value,
// largest first. Ties keep insertion order.
func sum(n *Node) {
	n.Value = float64(n.Data.Size)
	n.Height = 0
	for _, c := range n.Children {
		sum(c)
		n.Value += c.Value
		if c.Height+1 > n.Height {
			n.Height = c.Height + 1
		}
	}
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Value > n.Children[j].Value
	})
}

func partition(root *Node) {
	dy := 1 / float64(root.Height+1)
	root.X0, root.X1 = 0, 1
	root.Y0, root.Y1 = 0, dy
	root.visit(func(n *Node) {
		if len(n.Children) == 0 {
			return
		}
		dice(n, float64(n.Depth+1)*dy, float64(n.Depth+2)*dy)
	})
}

// dice splits the parent's angular span among its children in proportion
// to their values.
func dice(parent *Node, y0, y1 float64) {
	k := 0.0
	if parent.Value > 0 {
		k = (parent.X1 - parent.X0) / parent.Value
	}
	x := parent.X0
	for _, c := range parent.Children {
		c.Y0, c.Y1 = y0, y1
		c.X0 = x
		x += c.Value * k
		c.X1 = x
	}
	if len(parent.Children) > 0 && parent.Value > 0 {
		// Absorb float drift so the last child closes the span exactly.
		parent.Children[len(parent.Children)-1].X1 = parent.X1
	}
}

func (n *Node) visit(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.visit(fn)
	}
}
