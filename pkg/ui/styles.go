package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// Text drawn on top of arc cells.
const (
	cellTextDark  = "#1A1A1A"
	cellTextLight = "#F8F8F2"
	cellFallback  = "#CCCCCC"
)

// cssNames covers the colour names the chart configuration commonly uses.
var cssNames = map[string]string{
	"white":  "#ffffff",
	"black":  "#000000",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"orange": "#ffa500",
	"gray":   "#808080",
	"grey":   "#808080",
}

// resolveColor turns a palette token into a colorful.Color. The second
// result is false when the token could not be understood.
func resolveColor(token string) (colorful.Color, bool) {
	if hex, ok := cssNames[token]; ok {
		token = hex
	}
	if len(token) == 4 && token[0] == '#' {
		token = string([]byte{'#', token[1], token[1], token[2], token[2], token[3], token[3]})
	}
	c, err := colorful.Hex(token)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// cellStyle returns the style of one arc cell: the arc colour as
// background and a readable foreground on top. Dimmed arcs render faint.
func cellStyle(r *lipgloss.Renderer, token string, opacity float64) lipgloss.Style {
	c, ok := resolveColor(token)
	if !ok {
		c, _ = colorful.Hex(cellFallback)
	}
	fg := cellTextLight
	if l, _, _ := c.Lab(); l > 0.6 {
		fg = cellTextDark
	}
	s := r.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg))
	if opacity < 1 {
		s = s.Faint(true)
	}
	return s
}

// swatch renders a one-cell colour sample for the legend and breadcrumb.
func swatch(r *lipgloss.Renderer, token string) string {
	c, ok := resolveColor(token)
	if !ok {
		c, _ = colorful.Hex(cellFallback)
	}
	return r.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■")
}
