package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/sunburst/pkg/config"
	"github.com/vanderheijden86/sunburst/pkg/interaction"
	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/testutil"
)

func fixedNow() time.Time { return testutil.BaseTime }

func sampleRecords() []model.Record {
	return []model.Record{
		{ProjectName: "P", PhaseName: "Ph", TaskName: "T", ConditionName: "C1", TaskFixedDueDate: "2024-06-01"},
		{ProjectName: "P", PhaseName: "Ph", TaskName: "T", ConditionName: "C2", ConditionCompletedDate: "2024-05-01"},
	}
}

func newChart(t *testing.T) *Chart {
	t.Helper()
	cfg := config.DefaultConfig().Chart
	cfg.Key = "chart-1"
	return New(cfg, WithNow(fixedNow))
}

func TestNew_RendersNothingWithoutData(t *testing.T) {
	c := New(config.Chart{})
	if !strings.HasPrefix(c.Key(), "sunburst-") {
		t.Errorf("expected generated key, got %q", c.Key())
	}
	if c.Loaded() {
		t.Error("new chart should not be loaded")
	}
	f := c.Frame()
	if len(f.Arcs) != 0 {
		t.Fatalf("expected no arcs, got %d", len(f.Arcs))
	}
	if f.Radius != 200 {
		t.Errorf("expected default radius 200, got %v", f.Radius)
	}
	if c.Config().Breadcrumb.Width != 300 || c.Config().Legend.CornerRadius != 3 {
		t.Errorf("expected default geometry, got %+v", c.Config())
	}
}

func TestSetData_Nil(t *testing.T) {
	c := newChart(t)
	changed, err := c.SetData(nil)
	if err != nil || changed {
		t.Fatalf("SetData(nil) on empty chart = %v, %v", changed, err)
	}

	if _, err := c.SetData(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	changed, err = c.SetData(nil)
	if err != nil || !changed {
		t.Fatalf("SetData(nil) after data = %v, %v", changed, err)
	}
	if len(c.Frame().Arcs) != 0 || c.Loaded() {
		t.Fatal("missing data should clear the chart")
	}
}

func TestSetData_BuildsFrame(t *testing.T) {
	c := newChart(t)
	changed, err := c.SetData(sampleRecords())
	if err != nil {
		t.Fatalf("SetData: %v", err)
	}
	if !changed {
		t.Fatal("first payload should rebuild")
	}

	f := c.Frame()
	if len(f.Arcs) != 6 {
		t.Fatalf("expected 6 arcs, got %d", len(f.Arcs))
	}
	fills := map[string]string{}
	for _, a := range f.Arcs {
		fills[a.Node.Name()] = a.Fill
	}
	if fills["T"] != model.DefaultBehindColor {
		t.Errorf("overdue task should be behind, fill %s", fills["T"])
	}
	if fills["C2"] != model.DefaultCompleteColor || fills["C1"] != model.DefaultIncompleteColor {
		t.Errorf("unexpected condition fills %v", fills)
	}
	if fills[""] != model.DefaultRootColor {
		t.Errorf("root fill = %s", fills[""])
	}

	s := c.Summary()
	if s.Projects != 1 || s.ProjectsBehind != 1 || s.ConditionsComplete != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestSetData_UnchangedPayloadSkipsRebuild(t *testing.T) {
	c := newChart(t)
	if _, err := c.SetData(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	before := c.Machine()

	changed, err := c.SetData(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("equal payload should not rebuild")
	}
	if c.Machine() != before {
		t.Error("machine replaced on equal payload")
	}

	next := sampleRecords()
	next[1].ConditionCompletedDate = ""
	changed, err = c.SetData(next)
	if err != nil || !changed {
		t.Fatalf("changed payload = %v, %v", changed, err)
	}
	if c.Machine() == before {
		t.Error("changed payload should build a new machine")
	}
}

func TestSetData_CopiesPayload(t *testing.T) {
	c := newChart(t)
	records := sampleRecords()
	if _, err := c.SetData(records); err != nil {
		t.Fatal(err)
	}
	records[0].ConditionName = "mutated"
	changed, err := c.SetData(records)
	if err != nil || !changed {
		t.Fatalf("mutated caller slice should count as new payload: %v, %v", changed, err)
	}
}

func TestSetData_MalformedKeepsPreviousState(t *testing.T) {
	c := newChart(t)
	if _, err := c.SetData(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	bad := append(sampleRecords(), model.Record{ProjectName: "P", PhaseName: "Ph"})
	_, err := c.SetData(bad)
	if !errors.Is(err, model.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if len(c.Frame().Arcs) != 6 {
		t.Error("failed rebuild should keep the previous chart")
	}
}

func TestSetData_EmptyPayload(t *testing.T) {
	c := newChart(t)
	changed, err := c.SetData([]model.Record{})
	if err != nil || !changed {
		t.Fatalf("SetData(empty) = %v, %v", changed, err)
	}
	if !c.Loaded() {
		t.Error("empty payload is still a payload")
	}
	if n := len(c.Frame().Arcs); n != 0 {
		t.Fatalf("empty tree should have no arcs, got %d", n)
	}
}

func TestPointerMove_HoversOuterRing(t *testing.T) {
	c := newChart(t)
	if _, err := c.SetData(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	// Straight up, inside the outermost band (radii 178.9 to 200).
	n := c.PointerMove(0, -190)
	if n == nil || n.Name() != "C1" {
		t.Fatalf("expected to hit C1, got %v", n)
	}

	s := c.Scene()
	if !s.Frame.TrailVisible || len(s.Frame.Trail) != 4 {
		t.Fatalf("expected visible 4-segment trail, got %+v", s.Frame.Trail)
	}
	if s.EndLabel != "50.0%" {
		t.Errorf("EndLabel = %q, want 50.0%%", s.EndLabel)
	}
	if s.Frame.Caption != "C1" {
		t.Errorf("Caption = %q", s.Frame.Caption)
	}

	if miss := c.PointerMove(500, 500); miss != nil {
		t.Errorf("point outside the chart hit %q", miss.Name())
	}
}

func TestPointerClick_ZoomsAndCompletes(t *testing.T) {
	start := testutil.BaseTime
	now := start
	cfg := config.DefaultConfig().Chart
	c := New(cfg, WithNow(fixedNow), WithMachineOptions(interaction.WithClock(func() time.Time { return now })))
	if _, err := c.SetData(sampleRecords()); err != nil {
		t.Fatal(err)
	}

	n := c.PointerClick(0, -190)
	if n == nil {
		t.Fatal("expected a hit")
	}
	now = start.Add(time.Second)
	if c.Advance(now) {
		t.Error("zoom should be finished after a second")
	}
	if c.Machine().ZoomTarget() != n {
		t.Error("zoom target not set")
	}
	if c.Frame().State != interaction.Zoomed {
		t.Errorf("state = %v", c.Frame().State)
	}

	c.Click(c.Layout().Root)
	c.Advance(start.Add(2 * time.Second))
	if c.Machine().ZoomTarget() != nil {
		t.Error("clicking the root should zoom back out")
	}
}

func TestLeave_HidesTrail(t *testing.T) {
	c := newChart(t)
	if _, err := c.SetData(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	c.PointerMove(0, -190)
	c.Leave()
	s := c.Scene()
	if s.Frame.TrailVisible || s.EndLabel != "" || s.Frame.CaptionVisible {
		t.Errorf("leave should hide the trail and caption: %+v", s)
	}
}

func TestWriters(t *testing.T) {
	c := newChart(t)
	if _, err := c.SetData(sampleRecords()); err != nil {
		t.Fatal(err)
	}

	var svgBuf, htmlBuf, pngBuf bytes.Buffer
	if err := c.WriteSVG(&svgBuf); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if !strings.Contains(svgBuf.String(), "chart-1") {
		t.Error("SVG should carry the instance key")
	}
	if got := strings.Count(svgBuf.String(), "<path"); got != 6 {
		t.Errorf("expected 6 paths, got %d", got)
	}
	if err := c.WriteHTML(&htmlBuf, "Status"); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if !strings.Contains(htmlBuf.String(), `id="chart-1"`) {
		t.Error("HTML container should be keyed by the instance key")
	}
	if err := c.WritePNG(&pngBuf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if !bytes.HasPrefix(pngBuf.Bytes(), []byte("\x89PNG")) {
		t.Error("WritePNG did not produce a PNG")
	}
}
