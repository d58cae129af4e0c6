// Package model defines the record, status and tree types shared by the
// aggregation, hierarchy, layout and rendering packages.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// ErrMalformedRecord is returned when a record lacks one of the level names
// the hierarchy is keyed by. Callers are expected to filter such rows before
// building a tree.
var ErrMalformedRecord = errors.New("malformed record")

// Record is one flat input row as delivered by the data backend. Every field
// is optional; dates are free-form strings.
type Record struct {
	PropertyName             string `json:"property_name,omitempty"`
	ProjectName              string `json:"project_name,omitempty"`
	PhaseName                string `json:"phase_name,omitempty"`
	TaskName                 string `json:"task_name,omitempty"`
	ConditionName            string `json:"condition_name,omitempty"`
	ConditionCompletedDate   string `json:"condition_completed_date,omitempty"`
	DismissedAtDismissedDate string `json:"dismissed_at_dismissed_date,omitempty"`
	TaskClosedDate           string `json:"task_closed_date,omitempty"`
	TaskProjectedDueDate     string `json:"task_projected_due_date,omitempty"`
	TaskFixedDueDate         string `json:"task_fixed_due_date,omitempty"`
	ProjectClosedAtDate      string `json:"project_closed_at_date,omitempty"`
}

// field is a record column as it appears on the wire. Backends send dates as
// strings, epoch numbers or null; all of them become text.
type field string

func (f *field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = field(s)
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("%w: expected string or number, got %s", ErrMalformedRecord, data)
		}
		*f = field(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return nil
}

// UnmarshalJSON decodes a record and accepts the legacy
// "dismissed_at_dimissed_date" key still emitted by older backends. Null
// values decode to the empty string and numbers to their decimal text.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		PropertyName             field `json:"property_name"`
		ProjectName              field `json:"project_name"`
		PhaseName                field `json:"phase_name"`
		TaskName                 field `json:"task_name"`
		ConditionName            field `json:"condition_name"`
		ConditionCompletedDate   field `json:"condition_completed_date"`
		DismissedAtDismissedDate field `json:"dismissed_at_dismissed_date"`
		LegacyDismissed          field `json:"dismissed_at_dimissed_date"`
		TaskClosedDate           field `json:"task_closed_date"`
		TaskProjectedDueDate     field `json:"task_projected_due_date"`
		TaskFixedDueDate         field `json:"task_fixed_due_date"`
		ProjectClosedAtDate      field `json:"project_closed_at_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{
		PropertyName:             string(raw.PropertyName),
		ProjectName:              string(raw.ProjectName),
		PhaseName:                string(raw.PhaseName),
		TaskName:                 string(raw.TaskName),
		ConditionName:            string(raw.ConditionName),
		ConditionCompletedDate:   string(raw.ConditionCompletedDate),
		DismissedAtDismissedDate: string(raw.DismissedAtDismissedDate),
		TaskClosedDate:           string(raw.TaskClosedDate),
		TaskProjectedDueDate:     string(raw.TaskProjectedDueDate),
		TaskFixedDueDate:         string(raw.TaskFixedDueDate),
		ProjectClosedAtDate:      string(raw.ProjectClosedAtDate),
	}
	if r.DismissedAtDismissedDate == "" {
		r.DismissedAtDismissedDate = string(raw.LegacyDismissed)
	}
	return nil
}

// Validate reports whether the record carries every level name required to
// place it in the hierarchy.
func (r Record) Validate() error {
	return validateNames(r.ProjectName, r.PhaseName, r.TaskName, r.ConditionName)
}

// RecordColumns lists the input columns in their canonical order. SQL sources
// select them in this order.
var RecordColumns = []string{
	"property_name",
	"project_name",
	"phase_name",
	"task_name",
	"condition_name",
	"condition_completed_date",
	"dismissed_at_dismissed_date",
	"task_closed_date",
	"task_projected_due_date",
	"task_fixed_due_date",
	"project_closed_at_date",
}

// Fields returns pointers to the record fields in RecordColumns order, for
// use as scan destinations.
func (r *Record) Fields() []*string {
	return []*string{
		&r.PropertyName,
		&r.ProjectName,
		&r.PhaseName,
		&r.TaskName,
		&r.ConditionName,
		&r.ConditionCompletedDate,
		&r.DismissedAtDismissedDate,
		&r.TaskClosedDate,
		&r.TaskProjectedDueDate,
		&r.TaskFixedDueDate,
		&r.ProjectClosedAtDate,
	}
}

// SlimRecord is a record reduced to the eight fields the hierarchy needs:
// the four level names and the four derived statuses.
type SlimRecord struct {
	ProjectName     string          `json:"project_name"`
	PhaseName       string          `json:"phase_name"`
	TaskName        string          `json:"task_name"`
	ConditionName   string          `json:"condition_name"`
	ConditionStatus ConditionStatus `json:"condition_status"`
	TaskStatus      ScheduleStatus  `json:"task_status"`
	PhaseStatus     ScheduleStatus  `json:"phase_status"`
	ProjectStatus   ScheduleStatus  `json:"project_status"`
}

// Validate reports whether the slim record carries every level name.
func (r SlimRecord) Validate() error {
	return validateNames(r.ProjectName, r.PhaseName, r.TaskName, r.ConditionName)
}

// Name returns the record's name at the given level.
func (r SlimRecord) Name(l Level) string {
	switch l {
	case LevelProject:
		return r.ProjectName
	case LevelPhase:
		return r.PhaseName
	case LevelTask:
		return r.TaskName
	case LevelCondition:
		return r.ConditionName
	default:
		return ""
	}
}

func validateNames(names ...string) error {
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("%w: missing %s", ErrMalformedRecord, LevelColumns[i])
		}
	}
	return nil
}
