package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	"github.com/ajstarks/svgo"

	"github.com/vanderheijden86/sunburst/pkg/interaction"
	"github.com/vanderheijden86/sunburst/pkg/metrics"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// WriteSVG writes the composed scene as one SVG document: trail across the
// top, chart below it, legend beside the chart and the caption in the
// middle of the chart.
func WriteSVG(w io.Writer, s Scene) error {
	defer metrics.Timer(metrics.Render)()

	width, height := s.Size()
	canvas := svg.New(w)
	if s.Key != "" {
		canvas.Start(width, height, fmt.Sprintf(`id="%s"`, html.EscapeString(s.Key)))
	} else {
		canvas.Start(width, height)
	}
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	canvas.Gid("trail")
	drawTrailSVG(canvas, s)
	canvas.Gend()

	canvas.Translate(0, TrailHeight)
	drawChartSVG(canvas, s.Frame)
	drawCaptionSVG(canvas, s.Frame)
	canvas.Gend()

	canvas.Translate(s.diameter()+LegendGap, TrailHeight)
	drawLegendSVG(canvas, s.Palette, s.Legend)
	canvas.Gend()

	canvas.End()
	return nil
}

// WriteChartSVG writes only the arcs, sized to the chart diameter.
func WriteChartSVG(w io.Writer, f interaction.Frame) error {
	d := int(2*f.Radius + 0.5)
	canvas := svg.New(w)
	canvas.Start(d, d, `class="sunburst-main-chart-svg"`)
	drawChartSVG(canvas, f)
	canvas.End()
	return nil
}

// WriteTrailSVG writes the breadcrumb trail area.
func WriteTrailSVG(w io.Writer, s Scene) error {
	canvas := svg.New(w)
	canvas.Start(TrailWidth, TrailHeight, `id="trail"`)
	drawTrailSVG(canvas, s)
	canvas.End()
	return nil
}

// WriteLegendSVG writes the status legend.
func WriteLegendSVG(w io.Writer, p model.Palette, l Legend) error {
	canvas := svg.New(w)
	canvas.Start(l.Width, LegendHeight(p.Entries(), l))
	drawLegendSVG(canvas, p, l)
	canvas.End()
	return nil
}

func drawChartSVG(canvas *svg.SVG, f interaction.Frame) {
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", fnum(f.Radius), fnum(f.Radius)))
	for _, a := range f.Arcs {
		canvas.Path(a.Path,
			`fill-rule="evenodd"`,
			fmt.Sprintf(`data-depth="%d"`, a.Node.Depth),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s;opacity:%s",
				fill(a.Fill), StrokeColor, fnum(StrokeWidth), opacityString(a.Opacity)))
	}
	canvas.Gend()
}

func drawCaptionSVG(canvas *svg.SVG, f interaction.Frame) {
	if !f.CaptionVisible || f.Caption == "" {
		return
	}
	c := int(math.Round(f.Radius))
	canvas.Text(c, c, f.Caption,
		`class="sunburst-main-chart-explanation-detail"`, `dy="0.35em"`,
		fmt.Sprintf("fill:%s;text-anchor:middle;font-family:sans-serif;font-size:14px", css(colorText)))
}

func drawTrailSVG(canvas *svg.SVG, s Scene) {
	if !s.Frame.TrailVisible {
		canvas.Group("visibility:hidden")
	} else {
		canvas.Group()
	}
	b := s.Breadcrumb
	lx, ly := LabelAnchor(b)
	for i, seg := range s.Frame.Trail {
		xs, ys := BreadcrumbVertices(i, b)
		canvas.Translate(SegmentOffset(i, b), 0)
		canvas.Polygon(roundAll(xs), roundAll(ys), fmt.Sprintf("fill:%s", fill(seg.Color())))
		canvas.Text(int(math.Round(lx)), int(math.Round(ly)), seg.Label(),
			`dy="0.35em"`, "text-anchor:middle;font-family:sans-serif;font-size:12px")
		canvas.Gend()
	}
	if s.EndLabel != "" && len(s.Frame.Trail) > 0 {
		x := TrailExtent(len(s.Frame.Trail), b) + b.TailWidth
		canvas.Text(x, b.Height/2, s.EndLabel, `id="endlabel"`, `dy="0.35em"`,
			fmt.Sprintf("fill:%s;text-anchor:start;font-family:sans-serif;font-size:12px", css(colorText)))
	}
	canvas.Gend()
}

func drawLegendSVG(canvas *svg.SVG, p model.Palette, l Legend) {
	for i, e := range p.Entries() {
		canvas.Translate(0, LegendOffset(i, l))
		canvas.Roundrect(0, 0, l.Width, l.Height, l.CornerRadius, l.CornerRadius,
			fmt.Sprintf("fill:%s", fill(e.Color)))
		canvas.Text(l.Width/2, l.Height/2, e.Key, `dy="0.35em"`,
			"text-anchor:middle;font-family:sans-serif;font-size:12px")
		canvas.Gend()
	}
}

func roundAll(vs []float64) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = int(math.Round(v))
	}
	return out
}

func opacityString(o float64) string {
	return strconv.FormatFloat(math.Round(o*1000)/1000, 'f', -1, 64)
}
