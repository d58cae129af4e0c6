package render

import (
	"image"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/sunburst/pkg/interaction"
	"github.com/vanderheijden86/sunburst/pkg/metrics"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// Image rasterizes the composed scene with the same arrangement as WriteSVG.
func Image(s Scene) image.Image {
	return draw(s).Image()
}

// WritePNG encodes the composed scene as PNG.
func WritePNG(w io.Writer, s Scene) error {
	return draw(s).EncodePNG(w)
}

// SavePNG writes the composed scene to a PNG file.
func SavePNG(path string, s Scene) error {
	return draw(s).SavePNG(path)
}

func draw(s Scene) *gg.Context {
	defer metrics.Timer(metrics.Render)()

	width, height := s.Size()
	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if s.Frame.TrailVisible {
		drawTrail(dc, s)
	}

	dc.Push()
	dc.Translate(s.Frame.Radius, TrailHeight+s.Frame.Radius)
	drawChart(dc, s.Frame)
	dc.Pop()

	dc.Push()
	dc.Translate(float64(s.diameter()+LegendGap), TrailHeight)
	drawLegend(dc, s.Palette, s.Legend)
	dc.Pop()

	return dc
}

func drawChart(dc *gg.Context, f interaction.Frame) {
	dc.SetLineWidth(StrokeWidth)
	for _, a := range f.Visible() {
		sector(dc, a)
		dc.SetColor(withOpacity(parseColor(a.Fill), a.Opacity))
		dc.FillPreserve()
		dc.SetColor(colorStroke)
		dc.Stroke()
	}
	if f.CaptionVisible && f.Caption != "" {
		dc.SetColor(colorText)
		dc.DrawStringAnchored(f.Caption, 0, 0, 0.5, 0.5)
	}
}

// sector traces an annular sector centred on the origin. gg measures angles
// from the positive x axis, so the 12 o'clock origin is shifted by -π/2.
func sector(dc *gg.Context, a interaction.ArcFrame) {
	a0 := a.Arc.StartAngle - math.Pi/2
	a1 := a.Arc.EndAngle - math.Pi/2
	dc.NewSubPath()
	dc.DrawArc(0, 0, a.Arc.OuterRadius, a0, a1)
	if a.Arc.InnerRadius > 0 {
		dc.DrawArc(0, 0, a.Arc.InnerRadius, a1, a0)
	} else {
		dc.LineTo(0, 0)
	}
	dc.ClosePath()
}

func drawTrail(dc *gg.Context, s Scene) {
	b := s.Breadcrumb
	lx, ly := LabelAnchor(b)
	for i, seg := range s.Frame.Trail {
		off := float64(SegmentOffset(i, b))
		xs, ys := BreadcrumbVertices(i, b)
		dc.NewSubPath()
		for k := range xs {
			dc.LineTo(off+xs[k], ys[k])
		}
		dc.ClosePath()
		dc.SetColor(parseColor(seg.Color()))
		dc.Fill()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(seg.Label(), off+lx, ly, 0.5, 0.5)
	}
	if s.EndLabel != "" && len(s.Frame.Trail) > 0 {
		dc.SetColor(colorText)
		x := float64(TrailExtent(len(s.Frame.Trail), b) + b.TailWidth)
		dc.DrawStringAnchored(s.EndLabel, x, float64(b.Height)/2, 0, 0.5)
	}
}

func drawLegend(dc *gg.Context, p model.Palette, l Legend) {
	for i, e := range p.Entries() {
		y := float64(LegendOffset(i, l))
		dc.SetColor(parseColor(e.Color))
		dc.DrawRoundedRectangle(0, y, float64(l.Width), float64(l.Height), float64(l.CornerRadius))
		dc.Fill()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(e.Key, float64(l.Width)/2, y+float64(l.Height)/2, 0.5, 0.5)
	}
}
