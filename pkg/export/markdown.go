package export

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/status"
)

// Package-level compiled regex for slug creation (avoids recompilation per call)
var slugNonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// sanitizeMermaidID ensures an ID is valid for Mermaid diagrams.
// Mermaid node IDs must be alphanumeric with hyphens/underscores.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "node"
	}
	return sb.String()
}

// sanitizeMermaidText prepares text for use in Mermaid node labels.
func sanitizeMermaidText(text string) string {
	replacer := strings.NewReplacer(
		"\"", "'",
		"[", " ",
		"]", " ",
		"{", " ",
		"}", " ",
		"(", " ",
		")", " ",
		"<", "&lt;",
		">", "&gt;",
		"|", "/",
		"`", "'",
		"\n", " ",
		"\r", "",
	)
	result := replacer.Replace(text)
	result = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, result)
	result = strings.TrimSpace(result)

	runes := []rune(result)
	if len(runes) > 40 {
		result = string(runes[:37]) + "..."
	}
	return result
}

// ReportConfig configures GenerateReport.
type ReportConfig struct {
	Title string
	// Now stamps the report. Defaults to the wall clock.
	Now func() time.Time
	// Mindmap includes a Mermaid mindmap of the tree when a root is given.
	Mindmap MindmapConfig
	// Conditions lists individual conditions under each task.
	Conditions bool
}

// DefaultReportConfig returns the stock report settings.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{Title: "Portfolio Status", Now: time.Now}
}

// GenerateReport creates a markdown status report from aggregated records.
// root is optional; when present a mindmap of the hierarchy is included.
func GenerateReport(slim []model.SlimRecord, root *model.Node, cfg ReportConfig) string {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Title == "" {
		cfg.Title = "Portfolio Status"
	}
	sum := status.Summarize(slim)
	projects := groupProjects(slim)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", cfg.Title)
	fmt.Fprintf(&sb, "*Generated: %s*\n\n", cfg.Now().Format(time.RFC1123))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Level | Total | Behind |\n|-------|-------|--------|\n")
	fmt.Fprintf(&sb, "| Projects | %d | %d |\n", sum.Projects, sum.ProjectsBehind)
	fmt.Fprintf(&sb, "| Phases | %d | %d |\n", sum.Phases, sum.PhasesBehind)
	fmt.Fprintf(&sb, "| Tasks | %d | %d |\n\n", sum.Tasks, sum.TasksBehind)
	fmt.Fprintf(&sb, "Conditions complete: **%d / %d** (%.0f%%) %s\n\n",
		sum.ConditionsComplete, sum.Conditions, 100*sum.CompletionRatio(), barChart(sum.CompletionRatio()))

	if len(sum.BehindProjects) > 0 {
		sb.WriteString("## Behind Schedule\n\n")
		for _, p := range projects {
			if p.status.IsBehind() {
				fmt.Fprintf(&sb, "- %s [%s](#%s)\n", statusEmoji(p.status), p.name, p.slug)
			}
		}
		sb.WriteString("\n")
	}

	if root != nil && len(root.Children) > 0 {
		sb.WriteString("## Hierarchy\n\n```mermaid\n")
		sb.WriteString(GenerateMindmap(root, cfg.Mindmap))
		sb.WriteString("```\n\n")
	}

	if len(projects) > 0 {
		sb.WriteString("## Projects\n\n")
	}
	for _, p := range projects {
		fmt.Fprintf(&sb, "<a id=\"%s\"></a>\n\n", p.slug)
		fmt.Fprintf(&sb, "### %s %s\n\n", statusEmoji(p.status), p.name)
		for _, ph := range p.phases {
			fmt.Fprintf(&sb, "- %s **%s**\n", statusEmoji(ph.status), ph.name)
			for _, t := range ph.tasks {
				fmt.Fprintf(&sb, "  - %s %s (%d/%d conditions complete)\n",
					statusEmoji(t.status), t.name, t.complete, len(t.conditions))
				if cfg.Conditions {
					for _, c := range t.conditions {
						mark := "[ ]"
						if c.ConditionStatus == model.ConditionComplete {
							mark = "[x]"
						}
						fmt.Fprintf(&sb, "    - %s %s\n", mark, c.ConditionName)
					}
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SaveReportToFile writes the generated report to a file.
func SaveReportToFile(slim []model.SlimRecord, root *model.Node, cfg ReportConfig, filename string) error {
	return os.WriteFile(filename, []byte(GenerateReport(slim, root, cfg)), 0644)
}

type taskGroup struct {
	name       string
	status     model.ScheduleStatus
	conditions []model.SlimRecord
	complete   int
}

type phaseGroup struct {
	name   string
	status model.ScheduleStatus
	tasks  []*taskGroup
}

type projectGroup struct {
	name   string
	slug   string
	status model.ScheduleStatus
	phases []*phaseGroup
}

// groupProjects nests records by project, phase and task. Behind projects
// come first, then names in order.
func groupProjects(slim []model.SlimRecord) []*projectGroup {
	var projects []*projectGroup
	byProject := map[string]*projectGroup{}
	byPhase := map[[2]string]*phaseGroup{}
	byTask := map[[3]string]*taskGroup{}

	for _, r := range slim {
		p, ok := byProject[r.ProjectName]
		if !ok {
			p = &projectGroup{name: r.ProjectName, status: r.ProjectStatus}
			byProject[r.ProjectName] = p
			projects = append(projects, p)
		}
		pk := [2]string{r.ProjectName, r.PhaseName}
		ph, ok := byPhase[pk]
		if !ok {
			ph = &phaseGroup{name: r.PhaseName, status: r.PhaseStatus}
			byPhase[pk] = ph
			p.phases = append(p.phases, ph)
		}
		tk := [3]string{r.ProjectName, r.PhaseName, r.TaskName}
		t, ok := byTask[tk]
		if !ok {
			t = &taskGroup{name: r.TaskName, status: r.TaskStatus}
			byTask[tk] = t
			ph.tasks = append(ph.tasks, t)
		}
		if r.TaskStatus.IsBehind() {
			t.status = model.StatusBehind
		}
		t.conditions = append(t.conditions, r)
		if r.ConditionStatus == model.ConditionComplete {
			t.complete++
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		bi, bj := projects[i].status.IsBehind(), projects[j].status.IsBehind()
		if bi != bj {
			return bi
		}
		return projects[i].name < projects[j].name
	})
	slugCounts := make(map[string]int, len(projects))
	for _, p := range projects {
		p.slug = uniqueSlug(createSlug(p.name), slugCounts)
	}
	return projects
}

func uniqueSlug(base string, counts map[string]int) string {
	if base == "" {
		base = "section"
	}
	if count, ok := counts[base]; ok {
		count++
		counts[base] = count
		return fmt.Sprintf("%s-%d", base, count)
	}
	counts[base] = 0
	return base
}

// createSlug creates a URL-friendly slug from heading text.
func createSlug(text string) string {
	slug := strings.ToLower(text)
	slug = slugNonAlphanumericRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func statusEmoji(s model.ScheduleStatus) string {
	if s.IsBehind() {
		return "🔴"
	}
	return "🟢"
}

// barChart draws a ten-cell progress bar for a ratio in [0, 1].
func barChart(value float64) string {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value*10 + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
