package ui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sunburst/pkg/interaction"
	"github.com/vanderheijden86/sunburst/pkg/layout"
)

// cell is one arc unrolled onto a terminal row: columns [Col0, Col1).
type cell struct {
	Node    *layout.Node
	Col0    int
	Col1    int
	Fill    string
	Opacity float64
}

// icicle is the sunburst unrolled into a rectangle. Each ring of the
// current viewport becomes one row and each arc keeps its angular share of
// the row's width.
type icicle struct {
	Width int
	Rows  [][]cell
}

// project unrolls the visible arcs of f across width columns.
func project(f interaction.Frame, width int) icicle {
	ic := icicle{Width: width}
	if width <= 0 {
		return ic
	}
	byDepth := make(map[int][]cell)
	for _, a := range f.Visible() {
		c0 := int(math.Round(a.Arc.StartAngle / layout.Tau * float64(width)))
		c1 := int(math.Round(a.Arc.EndAngle / layout.Tau * float64(width)))
		if c1 <= c0 {
			continue
		}
		d := a.Node.Depth
		byDepth[d] = append(byDepth[d], cell{
			Node:    a.Node,
			Col0:    c0,
			Col1:    c1,
			Fill:    a.Fill,
			Opacity: a.Opacity,
		})
	}
	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	for _, d := range depths {
		row := byDepth[d]
		sort.SliceStable(row, func(i, j int) bool { return row[i].Col0 < row[j].Col0 })
		ic.Rows = append(ic.Rows, row)
	}
	return ic
}

// At returns the node drawn at (row, col), or nil.
func (ic icicle) At(row, col int) *layout.Node {
	if row < 0 || row >= len(ic.Rows) {
		return nil
	}
	for _, c := range ic.Rows[row] {
		if col >= c.Col0 && col < c.Col1 {
			return c.Node
		}
	}
	return nil
}

// Find returns the row and index of n, or -1, -1 when n is not drawn.
func (ic icicle) Find(n *layout.Node) (row, idx int) {
	for r, cells := range ic.Rows {
		for i, c := range cells {
			if c.Node == n {
				return r, i
			}
		}
	}
	return -1, -1
}

// Render draws the rows. The cursor cell is underlined.
func (ic icicle) Render(r *lipgloss.Renderer, cursor *layout.Node) string {
	lines := make([]string, 0, len(ic.Rows))
	for _, cells := range ic.Rows {
		var b strings.Builder
		col := 0
		for _, c := range cells {
			if c.Col0 > col {
				b.WriteString(strings.Repeat(" ", c.Col0-col))
			}
			style := cellStyle(r, c.Fill, c.Opacity)
			if c.Node == cursor {
				style = style.Bold(true).Underline(true)
			}
			b.WriteString(style.Render(fitCell(c.Node.Name(), c.Col1-c.Col0)))
			col = c.Col1
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
