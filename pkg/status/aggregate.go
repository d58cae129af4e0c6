// Package status derives condition, task, phase and project statuses from
// flat records.
//
// The pipeline runs in a fixed order because each stage consumes the field
// the previous one derived:
//
//  1. condition status, per record
//  2. task status, per record
//  3. phase status, OR over task status grouped by (project, phase)
//  4. project status, OR over task status grouped by project
//
// Parent statuses always reduce from task status directly rather than from
// the intermediate level, so a single behind task forces its phase and its
// project behind.
package status

import (
	"time"

	"github.com/vanderheijden86/sunburst/pkg/metrics"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// Aggregate derives every status for records as of now and returns the slim
// form consumed by the hierarchy builder. The input slice is not modified.
func Aggregate(records []model.Record, now time.Time) []model.SlimRecord {
	defer metrics.Timer(metrics.Aggregate)()

	slim := make([]model.SlimRecord, len(records))
	for i, r := range records {
		slim[i] = model.SlimRecord{
			ProjectName:     r.ProjectName,
			PhaseName:       r.PhaseName,
			TaskName:        r.TaskName,
			ConditionName:   r.ConditionName,
			ConditionStatus: ConditionOf(r),
			TaskStatus:      TaskOf(r, now),
		}
	}

	phases := rollup(slim, phaseKeyOf)
	for i := range slim {
		slim[i].PhaseStatus = phases[phaseKeyOf(slim[i])]
	}

	projects := rollup(slim, projectKeyOf)
	for i := range slim {
		slim[i].ProjectStatus = projects[projectKeyOf(slim[i])]
	}

	return slim
}

// ConditionOf returns complete when the record has a completion or a
// dismissal date, incomplete otherwise.
func ConditionOf(r model.Record) model.ConditionStatus {
	if present(r.ConditionCompletedDate) || present(r.DismissedAtDismissedDate) {
		return model.ConditionComplete
	}
	return model.ConditionIncomplete
}

// DueDate resolves the task due date: the fixed date when set, the projected
// date otherwise.
func DueDate(r model.Record) (time.Time, bool) {
	if present(r.TaskFixedDueDate) {
		return ParseDate(r.TaskFixedDueDate)
	}
	return ParseDate(r.TaskProjectedDueDate)
}

// TaskOf returns behind when the task is still open, has a resolvable due
// date, and that date is strictly before now.
func TaskOf(r model.Record, now time.Time) model.ScheduleStatus {
	if present(r.TaskClosedDate) {
		return model.StatusAhead
	}
	due, ok := DueDate(r)
	if !ok || !now.After(due) {
		return model.StatusAhead
	}
	return model.StatusBehind
}

type groupKey struct {
	project string
	phase   string
}

func phaseKeyOf(r model.SlimRecord) groupKey {
	return groupKey{project: r.ProjectName, phase: r.PhaseName}
}

func projectKeyOf(r model.SlimRecord) groupKey {
	return groupKey{project: r.ProjectName}
}

// rollup ORs task status over each group. The returned map is built fresh
// for one stage and is not shared with any other.
func rollup(slim []model.SlimRecord, keyOf func(model.SlimRecord) groupKey) map[groupKey]model.ScheduleStatus {
	groups := make(map[groupKey]model.ScheduleStatus)
	for _, r := range slim {
		k := keyOf(r)
		if r.TaskStatus.IsBehind() {
			groups[k] = model.StatusBehind
		} else if _, seen := groups[k]; !seen {
			groups[k] = model.StatusAhead
		}
	}
	return groups
}
