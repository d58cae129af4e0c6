package status

import (
	"sort"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// Summary counts the distinct entities at each level and how many of them
// are behind or complete.
type Summary struct {
	Projects           int `json:"projects"`
	ProjectsBehind     int `json:"projects_behind"`
	Phases             int `json:"phases"`
	PhasesBehind       int `json:"phases_behind"`
	Tasks              int `json:"tasks"`
	TasksBehind        int `json:"tasks_behind"`
	Conditions         int `json:"conditions"`
	ConditionsComplete int `json:"conditions_complete"`

	// BehindProjects lists the names of behind projects, sorted.
	BehindProjects []string `json:"behind_projects,omitempty"`
}

// Summarize counts statuses over aggregated records. Phases and tasks are
// identified by their full name path, so equally named tasks in different
// phases count separately.
func Summarize(slim []model.SlimRecord) Summary {
	var s Summary
	projects := make(map[string]model.ScheduleStatus)
	phases := make(map[[2]string]model.ScheduleStatus)
	tasks := make(map[[3]string]model.ScheduleStatus)

	for _, r := range slim {
		projects[r.ProjectName] = r.ProjectStatus
		phases[[2]string{r.ProjectName, r.PhaseName}] = r.PhaseStatus
		key := [3]string{r.ProjectName, r.PhaseName, r.TaskName}
		if prev, ok := tasks[key]; !ok || !prev.IsBehind() {
			tasks[key] = r.TaskStatus
		}
		s.Conditions++
		if r.ConditionStatus == model.ConditionComplete {
			s.ConditionsComplete++
		}
	}

	s.Projects = len(projects)
	for name, st := range projects {
		if st.IsBehind() {
			s.ProjectsBehind++
			s.BehindProjects = append(s.BehindProjects, name)
		}
	}
	sort.Strings(s.BehindProjects)

	s.Phases = len(phases)
	for _, st := range phases {
		if st.IsBehind() {
			s.PhasesBehind++
		}
	}
	s.Tasks = len(tasks)
	for _, st := range tasks {
		if st.IsBehind() {
			s.TasksBehind++
		}
	}
	return s
}

// CompletionRatio returns the share of complete conditions, or 0 when there
// are none.
func (s Summary) CompletionRatio() float64 {
	if s.Conditions == 0 {
		return 0
	}
	return float64(s.ConditionsComplete) / float64(s.Conditions)
}
