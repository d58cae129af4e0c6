package model

// Node is one vertex of the status hierarchy. Internal nodes carry children
// and a zero Size; condition leaves carry Size 1 and no children. Color is
// resolved once when the node is created and never changes afterwards.
type Node struct {
	Name     string  `json:"name"`
	Color    string  `json:"status"`
	Children []*Node `json:"children,omitempty"`
	Size     int     `json:"size,omitempty"`
}

// IsLeaf reports whether n is a condition leaf.
func (n *Node) IsLeaf() bool {
	return n.Size > 0 && len(n.Children) == 0
}

// Walk visits n and its descendants in depth-first pre-order. The depth of n
// is 0. Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// LeafCount returns the summed Size of every leaf under n.
func (n *Node) LeafCount() int {
	total := 0
	n.Walk(func(node *Node, _ int) bool {
		total += node.Size
		return true
	})
	return total
}

// Child returns the direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
