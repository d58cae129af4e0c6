package status

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// Diff describes how the aggregated status changed between two payloads.
type Diff struct {
	// Added lists projects present only in the newer payload.
	Added []string `json:"added,omitempty"`
	// Removed lists projects present only in the older payload.
	Removed []string `json:"removed,omitempty"`
	// Changed lists entities whose schedule status flipped.
	Changed []Change `json:"changed,omitempty"`
	// CountA and CountB are the condition counts of the two payloads.
	CountA int `json:"count_a"`
	CountB int `json:"count_b"`
}

// Change is a status flip for one project, phase or task.
type Change struct {
	Level model.Level          `json:"level"`
	Path  []string             `json:"path"`
	From  model.ScheduleStatus `json:"from"`
	To    model.ScheduleStatus `json:"to"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s: %s -> %s", c.Level, strings.Join(c.Path, " / "), c.From, c.To)
}

// Compare diffs two aggregated payloads.
func Compare(a, b []model.SlimRecord) Diff {
	d := Diff{CountA: len(a), CountB: len(b)}
	sa, sb := statuses(a), statuses(b)

	for key, st := range sb {
		prev, ok := sa[key]
		switch {
		case !ok && key.level == model.LevelProject:
			d.Added = append(d.Added, key.path[0])
		case ok && prev != st:
			d.Changed = append(d.Changed, Change{Level: key.level, Path: key.names(), From: prev, To: st})
		}
	}
	for key := range sa {
		if _, ok := sb[key]; !ok && key.level == model.LevelProject {
			d.Removed = append(d.Removed, key.path[0])
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Slice(d.Changed, func(i, j int) bool {
		ci, cj := d.Changed[i], d.Changed[j]
		if ci.Level != cj.Level {
			return ci.Level < cj.Level
		}
		return strings.Join(ci.Path, "\x00") < strings.Join(cj.Path, "\x00")
	})
	return d
}

// Empty reports whether the payloads are status-equivalent.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0 && d.CountA == d.CountB
}

// Summary returns a human-readable summary of the differences
func (d Diff) Summary() string {
	if d.Empty() {
		return fmt.Sprintf("No status changes (%d conditions)", d.CountB)
	}

	var b strings.Builder
	if d.CountA != d.CountB {
		fmt.Fprintf(&b, "  - Conditions: %d -> %d\n", d.CountA, d.CountB)
	}
	list := func(label string, names []string) {
		if len(names) == 0 {
			return
		}
		fmt.Fprintf(&b, "  - %d projects %s\n", len(names), label)
		if len(names) <= 5 {
			for _, n := range names {
				fmt.Fprintf(&b, "    - %s\n", n)
			}
		}
	}
	list("added", d.Added)
	list("removed", d.Removed)
	if len(d.Changed) > 0 {
		fmt.Fprintf(&b, "  - %d status changes\n", len(d.Changed))
		if len(d.Changed) <= 5 {
			for _, c := range d.Changed {
				fmt.Fprintf(&b, "    - %s\n", c)
			}
		}
	}
	return b.String()
}

type entityKey struct {
	level model.Level
	path  [3]string
}

func (k entityKey) names() []string {
	return append([]string(nil), k.path[:int(k.level)]...)
}

// statuses indexes the schedule status of every project, phase and task.
// A task listed by several records is behind if any of them says so.
func statuses(slim []model.SlimRecord) map[entityKey]model.ScheduleStatus {
	out := make(map[entityKey]model.ScheduleStatus)
	set := func(k entityKey, st model.ScheduleStatus) {
		if prev, ok := out[k]; ok && prev.IsBehind() {
			return
		}
		out[k] = st
	}
	for _, r := range slim {
		set(entityKey{model.LevelProject, [3]string{r.ProjectName}}, r.ProjectStatus)
		set(entityKey{model.LevelPhase, [3]string{r.ProjectName, r.PhaseName}}, r.PhaseStatus)
		set(entityKey{model.LevelTask, [3]string{r.ProjectName, r.PhaseName, r.TaskName}}, r.TaskStatus)
	}
	return out
}
