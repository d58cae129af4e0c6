// Package testutil provides record fixture generators and shared assertions.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// BaseTime is the fixed evaluation instant used by fixtures.
var BaseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// GeneratorConfig controls record generation.
type GeneratorConfig struct {
	Seed              int64     // Random seed for determinism (0 = use current time)
	Projects          int       // Number of projects (default 3)
	PhasesPerProject  int       // Max phases per project (default 3)
	TasksPerPhase     int       // Max tasks per phase (default 4)
	ConditionsPerTask int       // Max conditions per task (default 3)
	BaseTime          time.Time // Evaluation instant dates are generated around
	BehindRate        float64   // Share of tasks whose due date is in the past and still open
	CompleteRate      float64   // Share of conditions with a completion date
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:              42,
		Projects:          3,
		PhasesPerProject:  3,
		TasksPerPhase:     4,
		ConditionsPerTask: 3,
		BaseTime:          BaseTime,
		BehindRate:        0.2,
		CompleteRate:      0.5,
	}
}

// Generator creates record fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	d := DefaultConfig()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.BaseTime.IsZero() {
		cfg.BaseTime = d.BaseTime
	}
	if cfg.Projects <= 0 {
		cfg.Projects = d.Projects
	}
	if cfg.PhasesPerProject <= 0 {
		cfg.PhasesPerProject = d.PhasesPerProject
	}
	if cfg.TasksPerPhase <= 0 {
		cfg.TasksPerPhase = d.TasksPerPhase
	}
	if cfg.ConditionsPerTask <= 0 {
		cfg.ConditionsPerTask = d.ConditionsPerTask
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Records generates a shuffled list of records covering every generated
// (project, phase, task, condition) path once.
func (g *Generator) Records() []model.Record {
	var out []model.Record
	for p := 0; p < g.cfg.Projects; p++ {
		phases := 1 + g.rng.Intn(g.cfg.PhasesPerProject)
		for ph := 0; ph < phases; ph++ {
			tasks := 1 + g.rng.Intn(g.cfg.TasksPerPhase)
			for t := 0; t < tasks; t++ {
				behind := g.rng.Float64() < g.cfg.BehindRate
				conditions := 1 + g.rng.Intn(g.cfg.ConditionsPerTask)
				for c := 0; c < conditions; c++ {
					r := model.Record{
						PropertyName:  "Property",
						ProjectName:   fmt.Sprintf("Project %d", p),
						PhaseName:     fmt.Sprintf("Phase %d", ph),
						TaskName:      fmt.Sprintf("Task %d.%d", ph, t),
						ConditionName: fmt.Sprintf("Condition %d", c),
					}
					if behind {
						r.TaskFixedDueDate = g.cfg.BaseTime.AddDate(0, 0, -1-g.rng.Intn(30)).Format(time.RFC3339)
					} else {
						r.TaskProjectedDueDate = g.cfg.BaseTime.AddDate(0, 0, 1+g.rng.Intn(30)).Format(time.RFC3339)
					}
					if g.rng.Float64() < g.cfg.CompleteRate {
						r.ConditionCompletedDate = g.cfg.BaseTime.AddDate(0, 0, -g.rng.Intn(10)).Format("2006-01-02")
					}
					out = append(out, r)
				}
			}
		}
	}
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// dateGen draws an optional date string around BaseTime: empty, a past or
// future RFC3339 timestamp, a bare date, or garbage.
func dateGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		switch rapid.IntRange(0, 4).Draw(t, "dateKind") {
		case 0:
			return ""
		case 1:
			days := rapid.IntRange(-400, 400).Draw(t, "days")
			return BaseTime.AddDate(0, 0, days).Format(time.RFC3339)
		case 2:
			days := rapid.IntRange(-400, 400).Draw(t, "days")
			return BaseTime.AddDate(0, 0, days).Format("2006-01-02")
		case 3:
			return "not a date"
		default:
			return ""
		}
	})
}

// RecordGen draws well-formed records from a small name space so that
// project/phase/task prefixes repeat often.
func RecordGen() *rapid.Generator[model.Record] {
	return rapid.Custom(func(t *rapid.T) model.Record {
		return model.Record{
			ProjectName:            rapid.SampledFrom([]string{"P1", "P2", "P3"}).Draw(t, "project"),
			PhaseName:              rapid.SampledFrom([]string{"Ph1", "Ph2"}).Draw(t, "phase"),
			TaskName:               rapid.SampledFrom([]string{"T1", "T2", "T3"}).Draw(t, "task"),
			ConditionName:          rapid.SampledFrom([]string{"C1", "C2", "C3", "C4"}).Draw(t, "condition"),
			ConditionCompletedDate: dateGen().Draw(t, "completed"),
			DismissedAtDismissedDate: rapid.SampledFrom([]string{"", "", "", "2024-06-01"}).
				Draw(t, "dismissed"),
			TaskClosedDate:       rapid.SampledFrom([]string{"", "", "2024-05-01"}).Draw(t, "closed"),
			TaskProjectedDueDate: dateGen().Draw(t, "projected"),
			TaskFixedDueDate:     dateGen().Draw(t, "fixed"),
		}
	})
}

// RecordsGen draws a list of well-formed records.
func RecordsGen(maxLen int) *rapid.Generator[[]model.Record] {
	return rapid.SliceOfN(RecordGen(), 0, maxLen)
}
