package render

import (
	"github.com/vanderheijden86/sunburst/pkg/interaction"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// Scene is everything drawn for one chart instance.
type Scene struct {
	// Key identifies the chart instance in composed output.
	Key        string
	Frame      interaction.Frame
	Palette    model.Palette
	Breadcrumb Breadcrumb
	Legend     Legend
	// EndLabel is drawn after the last trail segment when the trail is
	// visible.
	EndLabel string
}

// Arc stroke.
const (
	StrokeColor = "#fff"
	StrokeWidth = 0.3
)

// LegendGap separates the chart from the legend in composed output.
const LegendGap = 20

func (s Scene) diameter() int {
	return int(2*s.Frame.Radius + 0.5)
}

// Size returns the width and height of the composed scene: the trail on
// top, the chart below it and the legend to the right of the chart.
func (s Scene) Size() (w, h int) {
	d := s.diameter()
	entries := s.Palette.Entries()
	w = d + LegendGap + s.Legend.Width
	if tw := TrailExtent(len(s.Frame.Trail), s.Breadcrumb) + endLabelRoom; tw > w {
		w = tw
	}
	h = TrailHeight + d
	if lh := TrailHeight + LegendHeight(entries, s.Legend); lh > h {
		h = lh
	}
	return w, h
}

const endLabelRoom = 80
