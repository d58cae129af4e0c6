package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vanderheijden86/sunburst/internal/datasource"
	"github.com/vanderheijden86/sunburst/pkg/layout"
	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/status"
	"github.com/vanderheijden86/sunburst/pkg/view"
)

var errNoSource = errors.New("no data source: pass a file, DSN or URL, or set source.location in the config")

// sourceFlags are the source options shared by every data command.
type sourceFlags struct {
	table string
	name  string
	kind  string
}

// sources resolves positional locations, falling back to the configured
// source when none are given.
func (a *app) sources(args []string, f sourceFlags) ([]datasource.Source, error) {
	base := datasource.FromConfig(a.cfg.Source)
	if len(args) == 0 {
		if base.Location == "" {
			return nil, errNoSource
		}
		args = []string{base.Location}
	}
	out := make([]datasource.Source, 0, len(args))
	for _, loc := range args {
		src := datasource.New(loc)
		if loc == base.Location && base.Kind != "" {
			src.Kind = base.Kind
		}
		if f.kind != "" {
			src.Kind = datasource.Kind(strings.ToLower(f.kind))
		}
		src.Table = firstNonEmpty(f.table, base.Table, src.Table)
		src.Name = firstNonEmpty(f.name, base.Name)
		src.Token = base.Token
		out = append(out, src)
	}
	return out, nil
}

// load reads every source concurrently and concatenates the records in
// source order. Any failing source fails the load.
func (a *app) load(ctx context.Context, srcs []datasource.Source) ([]model.Record, error) {
	results := datasource.LoadAll(ctx, srcs)
	for _, r := range results {
		if r.Err != nil {
			a.logger.Warn("source failed", zap.Stringer("source", r.Source), zap.Error(r.Err))
			continue
		}
		a.logger.Debug("source loaded", zap.Stringer("source", r.Source), zap.Int("records", len(r.Records)))
	}
	return datasource.Merge(results)
}

// clock returns the instant due dates are evaluated against.
func (a *app) clock() (func() time.Time, error) {
	if a.now == "" {
		return time.Now, nil
	}
	t, ok := status.ParseDate(a.now)
	if !ok {
		return nil, fmt.Errorf("invalid --now date %q", a.now)
	}
	return func() time.Time { return t }, nil
}

// newChart creates an empty chart from the loaded configuration.
func (a *app) newChart() (*view.Chart, error) {
	now, err := a.clock()
	if err != nil {
		return nil, err
	}
	return view.New(a.cfg.Chart,
		view.WithNow(now),
		view.WithAnimation(a.cfg.Animation),
	), nil
}

// loadChart loads the sources into a new chart.
func (a *app) loadChart(ctx context.Context, srcs []datasource.Source) (*view.Chart, error) {
	c, err := a.newChart()
	if err != nil {
		return nil, err
	}
	records, err := a.load(ctx, srcs)
	if err != nil {
		return nil, err
	}
	if _, err := c.SetData(records); err != nil {
		return nil, err
	}
	s := c.Summary()
	a.logger.Info("chart built",
		zap.Int("records", len(records)),
		zap.Int("projects", s.Projects),
		zap.Int("projects_behind", s.ProjectsBehind),
		zap.Int("conditions", s.Conditions))
	return c, nil
}

// findPath resolves a slash separated name path such as "Alpha/Design".
func findPath(c *view.Chart, path string) (*layout.Node, error) {
	var names []string
	for _, part := range strings.Split(path, "/") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	n := c.Layout().Find(names...)
	if n == nil {
		return nil, fmt.Errorf("no node at %q", path)
	}
	return n, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
