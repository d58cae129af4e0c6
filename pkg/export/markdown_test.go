package export

import (
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/testutil"
)

func TestGenerateReport(t *testing.T) {
	slim, root, _ := fixture(t)
	cfg := DefaultReportConfig()
	cfg.Now = func() time.Time { return testutil.BaseTime }
	cfg.Conditions = true

	md := GenerateReport(slim, root, cfg)

	for _, want := range []string{
		"# Portfolio Status",
		"| Projects | 2 | 1 |",
		"| Tasks | 2 | 1 |",
		"Conditions complete: **1 / 3** (33%)",
		"## Behind Schedule",
		"- 🔴 [Alpha](#alpha)",
		"```mermaid\nmindmap\n",
		"### 🔴 Alpha",
		"  - 🔴 Spec (1/2 conditions complete)",
		"    - [x] Draft",
		"    - [ ] Review",
		"### 🟢 Beta",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n%s", want, md)
		}
	}
	if strings.Index(md, "### 🔴 Alpha") > strings.Index(md, "### 🟢 Beta") {
		t.Error("behind projects should be listed first")
	}
}

func TestGenerateReport_Empty(t *testing.T) {
	md := GenerateReport(nil, nil, ReportConfig{})
	if !strings.Contains(md, "| Projects | 0 | 0 |") {
		t.Errorf("unexpected empty report:\n%s", md)
	}
	if strings.Contains(md, "mermaid") || strings.Contains(md, "## Projects") {
		t.Error("empty report should have no hierarchy or projects")
	}
}

func TestGenerateMindmap(t *testing.T) {
	_, root, _ := fixture(t)
	mm := GenerateMindmap(root, MindmapConfig{RootLabel: "Q4 (draft)"})

	lines := strings.Split(strings.TrimSpace(mm), "\n")
	if lines[0] != "mindmap" {
		t.Fatalf("expected mindmap header, got %q", lines[0])
	}
	if lines[1] != "  root((Q4  draft))" {
		t.Errorf("unexpected root line %q", lines[1])
	}
	if !strings.Contains(mm, `    Alpha["🔴 Alpha"]`) {
		t.Errorf("missing project node:\n%s", mm)
	}
	if !strings.Contains(mm, `        Spec["🟢 Spec"]`) {
		t.Errorf("missing task node:\n%s", mm)
	}
	if strings.Contains(mm, "Draft") {
		t.Error("conditions should be omitted by default")
	}

	withConditions := GenerateMindmap(root, MindmapConfig{MaxDepth: 4})
	if !strings.Contains(withConditions, `Draft["✅ Draft"]`) {
		t.Errorf("expected condition nodes at depth 4:\n%s", withConditions)
	}
}

func TestMindmapID_Collisions(t *testing.T) {
	root := &model.Node{Children: []*model.Node{
		{Name: "Build", Children: []*model.Node{{Name: "Build"}}},
	}}
	mm := GenerateMindmap(root, MindmapConfig{})
	if strings.Count(mm, "Build[") != 1 || !strings.Contains(mm, "Build_") {
		t.Errorf("duplicate names should get distinct IDs:\n%s", mm)
	}
}

func TestSanitizeMermaidText(t *testing.T) {
	tests := map[string]string{
		`say "hi"`:              "say 'hi'",
		"a|b":                   "a/b",
		"line\nbreak":           "line break",
		strings.Repeat("x", 50): strings.Repeat("x", 37) + "...",
	}
	for in, want := range tests {
		if got := sanitizeMermaidText(in); got != want {
			t.Errorf("sanitizeMermaidText(%q) = %q, want %q", in, got, want)
		}
	}
	if got := sanitizeMermaidID("a b/c"); got != "abc" {
		t.Errorf("sanitizeMermaidID = %q", got)
	}
	if got := sanitizeMermaidID("!!"); got != "node" {
		t.Errorf("sanitizeMermaidID(!!) = %q", got)
	}
}

func TestBarChart(t *testing.T) {
	if got := barChart(0.5); got != "█████░░░░░" {
		t.Errorf("barChart(0.5) = %q", got)
	}
	if got := barChart(2); got != "██████████" {
		t.Errorf("barChart(2) = %q", got)
	}
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal("# Title\n\nSome *text*.", 40)
	if err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "text") {
		t.Errorf("unexpected render %q", out)
	}
}
