package render

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/vanderheijden86/sunburst/pkg/metrics"
)

var pageTemplate = template.Must(template.New("sunburst").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
.sunburst-main-chart { position: relative; display: flex; gap: {{.Gap}}px; }
.sunburst-main-chart-explanation { position: absolute; left: 0; top: 0; width: {{.Diameter}}px; height: {{.Diameter}}px;
  display: flex; align-items: center; justify-content: center; pointer-events: none; font-family: sans-serif; }
.sunburst-main-chart-explanation.hidden { visibility: hidden; }
</style>
</head>
<body>
<div{{if .Key}} id="{{.Key}}"{{end}} class="sunburst">
  <div class="sunburst-main">
    <div class="sunburst-main-sequence">{{.Trail}}</div>
    <div class="sunburst-main-chart">
      {{.Chart}}
      <div class="sunburst-main-chart-sidebar">
        <div class="sunburst-main-chart-sidebar-legend">{{.Legend}}</div>
      </div>
      <div class="sunburst-main-chart-explanation{{if not .CaptionVisible}} hidden{{end}}">
        <span class="sunburst-main-chart-explanation-detail">{{.Caption}}</span>
        <br>
      </div>
    </div>
  </div>
</div>
</body>
</html>
`))

type pageData struct {
	Key            string
	Title          string
	Gap            int
	Diameter       int
	Trail          template.HTML
	Chart          template.HTML
	Legend         template.HTML
	Caption        string
	CaptionVisible bool
}

// WriteHTML writes a standalone page mounting the trail, chart, legend and
// caption inside a container keyed by the scene key.
func WriteHTML(w io.Writer, s Scene, title string) error {
	defer metrics.Timer(metrics.Render)()

	var trail, chart, legend bytes.Buffer
	if err := WriteTrailSVG(&trail, s); err != nil {
		return err
	}
	if err := WriteChartSVG(&chart, s.Frame); err != nil {
		return err
	}
	if err := WriteLegendSVG(&legend, s.Palette, s.Legend); err != nil {
		return err
	}
	if title == "" {
		title = "sunburst"
	}
	return pageTemplate.Execute(w, pageData{
		Key:            s.Key,
		Title:          title,
		Gap:            LegendGap,
		Diameter:       s.diameter(),
		Trail:          inline(trail.String()),
		Chart:          inline(chart.String()),
		Legend:         inline(legend.String()),
		Caption:        s.Frame.Caption,
		CaptionVisible: s.Frame.CaptionVisible,
	})
}

// inline strips the XML prolog so the document can sit inside HTML. The
// markup comes from our own SVG writers, which escape all text content.
func inline(doc string) template.HTML {
	if i := strings.Index(doc, "<svg"); i > 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}
