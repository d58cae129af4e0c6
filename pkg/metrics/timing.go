// Package metrics times the stages of the render pipeline: load, aggregate,
// build, layout and render.
//
// Stage timers are process-wide and lock free. Collection is on by default
// and can be switched off with SUNBURST_METRICS=0.
//
//	defer metrics.Timer(metrics.Layout)()
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("SUNBURST_METRICS") != "0")
}

// Enabled reports whether stage timings are collected.
func Enabled() bool { return enabled.Load() }

// SetEnabled turns collection on or off.
func SetEnabled(e bool) { enabled.Store(e) }

// Stage accumulates the durations of one pipeline stage.
type Stage struct {
	name  string
	count atomic.Int64
	total atomic.Int64 // ns
	max   atomic.Int64 // ns
	min   atomic.Int64 // ns, 0 until the first sample
}

// Pipeline stages.
var (
	Load      = &Stage{name: "load"}
	Aggregate = &Stage{name: "aggregate"}
	Build     = &Stage{name: "build_hierarchy"}
	Layout    = &Stage{name: "layout"}
	Render    = &Stage{name: "render"}
)

// Stages lists every pipeline stage in execution order.
func Stages() []*Stage {
	return []*Stage{Load, Aggregate, Build, Layout, Render}
}

// Name returns the stage name.
func (s *Stage) Name() string { return s.name }

// Count returns the number of samples.
func (s *Stage) Count() int64 { return s.count.Load() }

// Observe adds one sample.
func (s *Stage) Observe(d time.Duration) {
	if !Enabled() {
		return
	}
	ns := d.Nanoseconds()
	s.count.Add(1)
	s.total.Add(ns)
	for cur := s.max.Load(); ns > cur; cur = s.max.Load() {
		if s.max.CompareAndSwap(cur, ns) {
			break
		}
	}
	for cur := s.min.Load(); cur == 0 || ns < cur; cur = s.min.Load() {
		if s.min.CompareAndSwap(cur, ns) {
			break
		}
	}
}

// Reset drops every sample.
func (s *Stage) Reset() {
	s.count.Store(0)
	s.total.Store(0)
	s.max.Store(0)
	s.min.Store(0)
}

// Stats is a point-in-time summary of a stage.
type Stats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	MinMs   float64 `json:"min_ms,omitempty"`
}

// Stats summarises the stage.
func (s *Stage) Stats() Stats {
	count := s.count.Load()
	total := s.total.Load()
	st := Stats{
		Name:    s.name,
		Count:   count,
		TotalMs: ms(total),
		MaxMs:   ms(s.max.Load()),
		MinMs:   ms(s.min.Load()),
	}
	if count > 0 {
		st.AvgMs = ms(total / count)
	}
	return st
}

func ms(ns int64) float64 { return float64(ns) / 1e6 }

// Timer starts timing s and returns the function that stops it.
func Timer(s *Stage) func() {
	if s == nil || !Enabled() {
		return func() {}
	}
	start := time.Now()
	return func() { s.Observe(time.Since(start)) }
}

// ResetAll clears every stage.
func ResetAll() {
	for _, s := range Stages() {
		s.Reset()
	}
}

// AllStats summarises every stage that has samples.
func AllStats() []Stats {
	var out []Stats
	for _, s := range Stages() {
		if s.Count() > 0 {
			out = append(out, s.Stats())
		}
	}
	return out
}
