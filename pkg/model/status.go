package model

// ConditionStatus is the completion state of a single condition.
type ConditionStatus string

const (
	ConditionComplete   ConditionStatus = "complete"
	ConditionIncomplete ConditionStatus = "incomplete"
)

// ScheduleStatus is the schedule adherence of a task, phase or project.
type ScheduleStatus string

const (
	StatusAhead  ScheduleStatus = "ahead"
	StatusBehind ScheduleStatus = "behind"
)

// IsBehind reports whether s is StatusBehind.
func (s ScheduleStatus) IsBehind() bool { return s == StatusBehind }

// Level identifies a depth in the four-level hierarchy.
type Level int

const (
	LevelRoot Level = iota
	LevelProject
	LevelPhase
	LevelTask
	LevelCondition
)

// Levels lists the data-bearing levels beneath the root, outermost last.
var Levels = []Level{LevelProject, LevelPhase, LevelTask, LevelCondition}

// LevelColumns maps Levels to the record column carrying the level name.
var LevelColumns = []string{"project_name", "phase_name", "task_name", "condition_name"}

func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelProject:
		return "project"
	case LevelPhase:
		return "phase"
	case LevelTask:
		return "task"
	case LevelCondition:
		return "condition"
	default:
		return "unknown"
	}
}

// Default colour tokens.
const (
	DefaultRootColor       = "#F5F7FA"
	DefaultAheadColor      = "#00af3d"
	DefaultBehindColor     = "#fc4036"
	DefaultCompleteColor   = "#fecbba"
	DefaultIncompleteColor = "#6c5efb"
)

// Palette maps each status to a colour token.
type Palette struct {
	Ahead      string `yaml:"ahead" json:"ahead"`
	Behind     string `yaml:"behind" json:"behind"`
	Complete   string `yaml:"complete" json:"complete"`
	Incomplete string `yaml:"incomplete" json:"incomplete"`
}

// DefaultPalette returns the stock status colours.
func DefaultPalette() Palette {
	return Palette{
		Ahead:      DefaultAheadColor,
		Behind:     DefaultBehindColor,
		Complete:   DefaultCompleteColor,
		Incomplete: DefaultIncompleteColor,
	}
}

// PaletteEntry is one key/colour pair of a palette.
type PaletteEntry struct {
	Key   string
	Color string
}

// Entries returns the palette in legend order.
func (p Palette) Entries() []PaletteEntry {
	return []PaletteEntry{
		{Key: string(StatusAhead), Color: p.Ahead},
		{Key: string(StatusBehind), Color: p.Behind},
		{Key: string(ConditionComplete), Color: p.Complete},
		{Key: string(ConditionIncomplete), Color: p.Incomplete},
	}
}

// Schedule returns the colour for a task, phase or project status.
func (p Palette) Schedule(s ScheduleStatus) string {
	if s == StatusAhead {
		return p.Ahead
	}
	return p.Behind
}

// Condition returns the colour for a condition status.
func (p Palette) Condition(s ConditionStatus) string {
	if s == ConditionComplete {
		return p.Complete
	}
	return p.Incomplete
}

// ColorAt resolves the colour a record contributes at the given level.
func (p Palette) ColorAt(r SlimRecord, l Level) string {
	switch l {
	case LevelProject:
		return p.Schedule(r.ProjectStatus)
	case LevelPhase:
		return p.Schedule(r.PhaseStatus)
	case LevelTask:
		return p.Schedule(r.TaskStatus)
	default:
		return p.Condition(r.ConditionStatus)
	}
}

// WithDefaults fills empty tokens from DefaultPalette.
func (p Palette) WithDefaults() Palette {
	d := DefaultPalette()
	if p.Ahead == "" {
		p.Ahead = d.Ahead
	}
	if p.Behind == "" {
		p.Behind = d.Behind
	}
	if p.Complete == "" {
		p.Complete = d.Complete
	}
	if p.Incomplete == "" {
		p.Incomplete = d.Incomplete
	}
	return p
}
