// Package render draws sunburst frames as SVG, PNG and HTML.
//
// Every function here is a pure function of its inputs: a frame from the
// interaction machine, the palette and the breadcrumb/legend geometry.
package render

import (
	"strconv"
	"strings"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// Breadcrumb is the pixel geometry of one trail segment.
type Breadcrumb struct {
	Width     int `yaml:"width" json:"width"`
	Height    int `yaml:"height" json:"height"`
	Spacing   int `yaml:"spacing" json:"spacing"`
	TailWidth int `yaml:"tail_width" json:"tail_width"`
}

// DefaultBreadcrumb returns the stock segment geometry.
func DefaultBreadcrumb() Breadcrumb {
	return Breadcrumb{Width: 300, Height: 30, Spacing: 3, TailWidth: 10}
}

// Legend is the pixel geometry of one legend entry.
type Legend struct {
	Width        int `yaml:"width" json:"width"`
	Height       int `yaml:"height" json:"height"`
	Spacing      int `yaml:"spacing" json:"spacing"`
	CornerRadius int `yaml:"corner_radius" json:"corner_radius"`
}

// DefaultLegend returns the stock legend geometry.
func DefaultLegend() Legend {
	return Legend{Width: 75, Height: 30, Spacing: 3, CornerRadius: 3}
}

// Trail area size.
const (
	TrailWidth  = 1500
	TrailHeight = 50
)

// BreadcrumbVertices returns the polygon of segment i: a rectangle with an
// arrow point on its right edge and, after the first segment, a notch on
// its left edge that receives the previous point.
func BreadcrumbVertices(i int, b Breadcrumb) (xs, ys []float64) {
	w, h, t := float64(b.Width), float64(b.Height), float64(b.TailWidth)
	xs = []float64{0, w, w + t, w, 0}
	ys = []float64{0, 0, h / 2, h, h}
	if i > 0 {
		xs = append(xs, t)
		ys = append(ys, h/2)
	}
	return xs, ys
}

// BreadcrumbPoints formats the polygon of segment i as an SVG points list.
func BreadcrumbPoints(i int, b Breadcrumb) string {
	xs, ys := BreadcrumbVertices(i, b)
	pts := make([]string, len(xs))
	for k := range xs {
		pts[k] = fnum(xs[k]) + "," + fnum(ys[k])
	}
	return strings.Join(pts, " ")
}

// SegmentOffset returns the horizontal translation of segment i.
func SegmentOffset(i int, b Breadcrumb) int {
	return i * (b.Width + b.Spacing)
}

// LabelAnchor returns where a segment label is centred.
func LabelAnchor(b Breadcrumb) (x, y float64) {
	return float64(b.Width+b.TailWidth) / 2, float64(b.Height) / 2
}

// TrailExtent returns the width covered by n segments, including the final
// arrow point.
func TrailExtent(n int, b Breadcrumb) int {
	if n == 0 {
		return 0
	}
	return SegmentOffset(n-1, b) + b.Width + b.TailWidth
}

// LegendHeight returns the height of a legend with the given entries.
func LegendHeight(entries []model.PaletteEntry, l Legend) int {
	return len(entries) * (l.Height + l.Spacing)
}

// LegendOffset returns the vertical translation of legend entry i.
func LegendOffset(i int, l Legend) int {
	return i * (l.Height + l.Spacing)
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
