package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chart.Radius != 200 {
		t.Errorf("expected radius 200, got %g", cfg.Chart.Radius)
	}
	if cfg.Chart.RootStatus != "#F5F7FA" {
		t.Errorf("expected root status #F5F7FA, got %q", cfg.Chart.RootStatus)
	}
	if cfg.Chart.Colors != model.DefaultPalette() {
		t.Errorf("unexpected default colours %+v", cfg.Chart.Colors)
	}
	b := cfg.Chart.Breadcrumb
	if b.Width != 300 || b.Height != 30 || b.Spacing != 3 || b.TailWidth != 10 {
		t.Errorf("unexpected breadcrumb geometry %+v", b)
	}
	l := cfg.Chart.Legend
	if l.Width != 75 || l.Height != 30 || l.Spacing != 3 || l.CornerRadius != 3 {
		t.Errorf("unexpected legend geometry %+v", l)
	}
	if cfg.Animation.ZoomDuration().Milliseconds() != 20 || cfg.Animation.FadeDuration().Milliseconds() != 200 {
		t.Errorf("unexpected animation timings %+v", cfg.Animation)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	t.Setenv(EnvSource, "")
	t.Setenv(EnvToken, "")
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Chart.Radius != 200 {
		t.Errorf("expected default config, got radius %g", cfg.Chart.Radius)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	t.Setenv(EnvSource, "")
	t.Setenv(EnvToken, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
chart:
  radius: 150
  colors:
    behind: "#ff0000"
  breadcrumb:
    width: 120
  key: portfolio
source:
  location: ~/data/records.json
animation:
  fade_ms: 500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Chart.Radius != 150 {
		t.Errorf("expected radius 150, got %g", cfg.Chart.Radius)
	}
	if cfg.Chart.Colors.Behind != "#ff0000" {
		t.Errorf("expected behind override, got %q", cfg.Chart.Colors.Behind)
	}
	if cfg.Chart.Colors.Ahead != model.DefaultAheadColor {
		t.Errorf("unset colours should keep defaults, got %q", cfg.Chart.Colors.Ahead)
	}
	if cfg.Chart.Breadcrumb.Width != 120 || cfg.Chart.Breadcrumb.Height != 30 {
		t.Errorf("partial breadcrumb should merge with defaults: %+v", cfg.Chart.Breadcrumb)
	}
	if cfg.Chart.Key != "portfolio" {
		t.Errorf("expected key portfolio, got %q", cfg.Chart.Key)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "data/records.json"); cfg.Source.Location != want {
		t.Errorf("expected expanded location %q, got %q", want, cfg.Source.Location)
	}
	if cfg.Source.Table != DefaultTable {
		t.Errorf("expected default table, got %q", cfg.Source.Table)
	}
	if cfg.Animation.FadeMS != 500 || cfg.Animation.ZoomMS != 20 {
		t.Errorf("unexpected animation %+v", cfg.Animation)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv(EnvSource, "https://example.test/portfolios/sunburst")
	t.Setenv(EnvToken, "secret")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Source.Location != "https://example.test/portfolios/sunburst" {
		t.Errorf("source override ignored: %q", cfg.Source.Location)
	}
	if cfg.Source.Token != "secret" {
		t.Errorf("token override ignored: %q", cfg.Source.Token)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	t.Setenv(EnvSource, "")
	t.Setenv(EnvToken, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Chart.Radius = 320
	cfg.Chart.Key = "ops"
	cfg.Source.Location = "/tmp/records.db"
	cfg.Source.Token = "do-not-write"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "do-not-write") {
		t.Error("token must not be persisted")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Chart.Radius != 320 || loaded.Chart.Key != "ops" || loaded.Source.Location != "/tmp/records.db" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Source.Token != "" {
		t.Errorf("token should be empty after reload, got %q", loaded.Source.Token)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero radius", func(c *Config) { c.Chart.Radius = 0 }},
		{"negative breadcrumb width", func(c *Config) { c.Chart.Breadcrumb.Width = -1 }},
		{"negative tail", func(c *Config) { c.Chart.Breadcrumb.TailWidth = -1 }},
		{"zero legend height", func(c *Config) { c.Chart.Legend.Height = 0 }},
		{"negative fade", func(c *Config) { c.Animation.FadeMS = -5 }},
		{"offset beyond radius", func(c *Config) { c.Animation.InnerRingOffset = 500 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	if got := ConfigDir(); got != "/custom/config/sunburst" {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := ConfigPath(); got != "/custom/config/sunburst/config.yaml" {
		t.Errorf("ConfigPath = %q", got)
	}
	if got := DataDir(); got != "/custom/data/sunburst" {
		t.Errorf("DataDir = %q", got)
	}
}

func TestWizardValues_Apply(t *testing.T) {
	v := valuesFrom(DefaultConfig())
	v.Radius = " 250 "
	v.Location = "records.jsonl"
	v.Kind = "jsonl"
	v.Table = ""
	v.Behind = ""

	cfg, err := v.apply(DefaultConfig())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Chart.Radius != 250 {
		t.Errorf("radius = %g", cfg.Chart.Radius)
	}
	if cfg.Source.Kind != "jsonl" || cfg.Source.Location != "records.jsonl" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Source.Table != DefaultTable {
		t.Errorf("empty table should fall back to default, got %q", cfg.Source.Table)
	}
	if cfg.Chart.Colors.Behind != model.DefaultBehindColor {
		t.Errorf("empty colour should fall back to default, got %q", cfg.Chart.Colors.Behind)
	}

	v.Radius = "wide"
	if _, err := v.apply(DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for bad radius, got %v", err)
	}
}

func TestWizardValidators(t *testing.T) {
	if validateRadius("12.5") != nil || validateRadius("-1") == nil || validateRadius("x") == nil {
		t.Error("validateRadius misbehaves")
	}
	if validateColor("#00af3d") != nil || validateColor("") != nil || validateColor("green!") == nil {
		t.Error("validateColor misbehaves")
	}
}
