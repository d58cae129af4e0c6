package testutil

import (
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// T is the subset of testing.TB the assertions need. Both *testing.T and
// *rapid.T satisfy it.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// AssertUniqueSiblings verifies that no two non-leaf siblings share a name.
// Condition leaves are allowed to repeat.
func AssertUniqueSiblings(t T, root *model.Node) {
	t.Helper()
	root.Walk(func(n *model.Node, depth int) bool {
		seen := make(map[string]bool, len(n.Children))
		for _, c := range n.Children {
			if c.IsLeaf() {
				continue
			}
			if seen[c.Name] {
				t.Errorf("duplicate sibling %q under %q at depth %d", c.Name, n.Name, depth+1)
			}
			seen[c.Name] = true
		}
		return true
	})
}

// AssertFourLevels verifies that every leaf sits exactly four levels below
// the root and that every internal node below the root has children.
func AssertFourLevels(t T, root *model.Node) {
	t.Helper()
	root.Walk(func(n *model.Node, depth int) bool {
		switch {
		case depth == 4:
			if !n.IsLeaf() || n.Size != 1 {
				t.Errorf("node %q at depth 4 should be a size-1 leaf, got size=%d children=%d", n.Name, n.Size, len(n.Children))
			}
		case depth > 0 && len(n.Children) == 0:
			t.Errorf("internal node %q at depth %d has no children", n.Name, depth)
		case depth > 0 && n.Size != 0:
			t.Errorf("internal node %q at depth %d carries size %d", n.Name, depth, n.Size)
		}
		return true
	})
}

// AssertLeafCount verifies the number of condition leaves.
func AssertLeafCount(t T, root *model.Node, expected int) {
	t.Helper()
	if got := root.LeafCount(); got != expected {
		t.Errorf("expected %d leaves, got %d", expected, got)
	}
}
