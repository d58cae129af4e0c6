// Package view hosts one sunburst chart instance: it owns the data, the
// laid-out tree, the interaction machine and the render surfaces, and turns
// new payloads into full rebuilds.
package view

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/vanderheijden86/sunburst/pkg/config"
	"github.com/vanderheijden86/sunburst/pkg/debug"
	"github.com/vanderheijden86/sunburst/pkg/hierarchy"
	"github.com/vanderheijden86/sunburst/pkg/interaction"
	"github.com/vanderheijden86/sunburst/pkg/layout"
	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/render"
	"github.com/vanderheijden86/sunburst/pkg/status"
)

// Option configures a Chart.
type Option func(*Chart)

// WithNow fixes the time used to decide whether tasks are overdue. By
// default the wall clock is read on every rebuild.
func WithNow(now func() time.Time) Option {
	return func(c *Chart) {
		if now != nil {
			c.now = now
		}
	}
}

// WithAnimation sets the transition timings.
func WithAnimation(a config.Animation) Option {
	return func(c *Chart) { c.anim = a }
}

// WithMachineOptions passes options to every interaction machine the chart
// creates.
func WithMachineOptions(opts ...interaction.Option) Option {
	return func(c *Chart) { c.machineOpts = append(c.machineOpts, opts...) }
}

// Chart is one sunburst instance.
type Chart struct {
	mu sync.RWMutex

	cfg         config.Chart
	key         string
	now         func() time.Time
	anim        config.Animation
	machineOpts []interaction.Option

	loaded  bool
	records []model.Record
	slim    []model.SlimRecord
	result  *layout.Result
	machine *interaction.Machine
}

// New creates a chart with no data. Until SetData is called with a non-nil
// payload the chart renders nothing.
func New(cfg config.Chart, opts ...Option) *Chart {
	c := &Chart{
		cfg:  cfg,
		key:  cfg.Key,
		now:  time.Now,
		anim: config.DefaultConfig().Animation,
	}
	c.cfg.Colors = cfg.Colors.WithDefaults()
	if c.cfg.RootStatus == "" {
		c.cfg.RootStatus = model.DefaultRootColor
	}
	if c.cfg.Radius <= 0 {
		c.cfg.Radius = config.DefaultConfig().Chart.Radius
	}
	if c.cfg.Breadcrumb == (render.Breadcrumb{}) {
		c.cfg.Breadcrumb = render.DefaultBreadcrumb()
	}
	if c.cfg.Legend == (render.Legend{}) {
		c.cfg.Legend = render.DefaultLegend()
	}
	if c.key == "" {
		c.key = "sunburst-" + uuid.New().String()
	}
	for _, opt := range opts {
		opt(c)
	}
	c.result = layout.Layout(nil, c.cfg.Radius)
	c.machine = c.newMachine(c.result)
	return c
}

// Key returns the instance key.
func (c *Chart) Key() string { return c.key }

// Config returns the chart configuration.
func (c *Chart) Config() config.Chart { return c.cfg }

// Loaded reports whether a payload has been set.
func (c *Chart) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// SetData replaces the payload. A nil slice is missing data and clears the
// chart. A payload equal to the current one is ignored and reports false.
// Anything else rebuilds the aggregation, tree, layout and interaction
// state from scratch. On error the previous state is kept.
func (c *Chart) SetData(records []model.Record) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records == nil {
		changed := c.loaded
		c.loaded = false
		c.records = nil
		c.slim = nil
		c.result = layout.Layout(nil, c.cfg.Radius)
		c.machine = c.newMachine(c.result)
		return changed, nil
	}
	if c.loaded && cmp.Equal(c.records, records) {
		debug.Log("view %s: payload unchanged, skipping rebuild", c.key)
		return false, nil
	}

	root, slim, err := hierarchy.BuildFromRecords(records, hierarchy.Options{
		Now:       c.now(),
		RootColor: c.cfg.RootStatus,
		Palette:   c.cfg.Colors,
	})
	if err != nil {
		return false, fmt.Errorf("build hierarchy: %w", err)
	}
	if root.LeafCount() == 0 {
		root = nil
	}
	debug.LogIf(root == nil, "view %s: payload has no condition leaves", c.key)
	result := layout.Layout(root, c.cfg.Radius)
	if err := layout.Validate(result); err != nil {
		return false, err
	}

	c.loaded = true
	c.records = append([]model.Record(nil), records...)
	c.slim = slim
	c.result = result
	c.machine = c.newMachine(result)
	debug.Log("view %s: rebuilt %d records into %d nodes", c.key, len(records), len(result.Nodes))
	return true, nil
}

func (c *Chart) newMachine(result *layout.Result) *interaction.Machine {
	opts := []interaction.Option{
		interaction.WithZoomDuration(c.anim.ZoomDuration()),
		interaction.WithFadeDuration(c.anim.FadeDuration()),
		interaction.WithInnerRingOffset(c.anim.InnerRingOffset),
	}
	return interaction.New(result, append(opts, c.machineOpts...)...)
}

// Records returns the aggregated records of the current payload.
func (c *Chart) Records() []model.SlimRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slim
}

// Summary counts the statuses of the current payload.
func (c *Chart) Summary() status.Summary {
	return status.Summarize(c.Records())
}

// Layout returns the current laid-out tree.
func (c *Chart) Layout() *layout.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// Machine returns the interaction machine of the current payload. It is
// replaced on every rebuild.
func (c *Chart) Machine() *interaction.Machine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.machine
}

// Hover forwards a pointer-enter on n.
func (c *Chart) Hover(n *layout.Node) bool { return c.Machine().Hover(n) }

// Click forwards a click on n.
func (c *Chart) Click(n *layout.Node) { c.Machine().Click(n) }

// Leave forwards a pointer-leave of the chart.
func (c *Chart) Leave() { c.Machine().Leave() }

// Advance steps running transitions.
func (c *Chart) Advance(now time.Time) bool { return c.Machine().Advance(now) }

// PointerMove hovers whatever arc lies under (x, y), given relative to the
// chart centre. It returns the node hit, if any.
func (c *Chart) PointerMove(x, y float64) *layout.Node {
	m := c.Machine()
	n := m.Locate(x, y)
	if n != nil {
		m.Hover(n)
	}
	return n
}

// PointerClick zooms onto whatever arc lies under (x, y).
func (c *Chart) PointerClick(x, y float64) *layout.Node {
	m := c.Machine()
	n := m.Locate(x, y)
	if n != nil {
		m.Click(n)
	}
	return n
}

// Frame snapshots the current render input. Without data it is an empty
// frame of the configured radius.
func (c *Chart) Frame() interaction.Frame {
	return c.Machine().Frame()
}

// Scene composes the frame with the chart's palette and geometry.
func (c *Chart) Scene() render.Scene {
	f := c.Frame()
	return render.Scene{
		Key:        c.key,
		Frame:      f,
		Palette:    c.cfg.Colors,
		Breadcrumb: c.cfg.Breadcrumb,
		Legend:     c.cfg.Legend,
		EndLabel:   endLabel(f),
	}
}

// endLabel is the share of conditions under the last trail segment.
func endLabel(f interaction.Frame) string {
	if !f.TrailVisible || len(f.Trail) == 0 {
		return ""
	}
	n := f.Trail[len(f.Trail)-1].Node
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	if root.Value == 0 {
		return ""
	}
	pct := 100 * n.Value / root.Value
	if pct < 0.1 {
		return "< 0.1%"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// WriteSVG writes the composed scene as SVG.
func (c *Chart) WriteSVG(w io.Writer) error {
	return render.WriteSVG(w, c.Scene())
}

// WritePNG writes the composed scene as PNG.
func (c *Chart) WritePNG(w io.Writer) error {
	return render.WritePNG(w, c.Scene())
}

// SavePNG writes the composed scene to a PNG file.
func (c *Chart) SavePNG(path string) error {
	return render.SavePNG(path, c.Scene())
}

// WriteHTML writes a standalone HTML page for the scene.
func (c *Chart) WriteHTML(w io.Writer, title string) error {
	return render.WriteHTML(w, c.Scene(), title)
}
