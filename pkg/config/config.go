// Package config handles loading and saving sunburst configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/sunburst/config.yaml
//   - Data:    ~/.local/share/sunburst/ (exports)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/render"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Environment overrides.
const (
	EnvSource = "SUNBURST_SOURCE"
	EnvToken  = "SUNBURST_TOKEN"
)

// Chart holds the visual configuration of one chart instance.
type Chart struct {
	Radius     float64           `yaml:"radius"`
	RootStatus string            `yaml:"root_status"`
	Colors     model.Palette     `yaml:"colors"`
	Breadcrumb render.Breadcrumb `yaml:"breadcrumb"`
	Legend     render.Legend     `yaml:"legend"`
	// Key identifies the instance when several charts share a page. A
	// random key is generated when empty.
	Key string `yaml:"key,omitempty"`
}

// Source tells the loader where records come from.
type Source struct {
	Location string `yaml:"location,omitempty"` // file path, DSN or URL
	Kind     string `yaml:"kind,omitempty"`     // json, jsonl, sqlite, postgres, http; detected when empty
	Table    string `yaml:"table,omitempty"`    // SQL table holding records
	Name     string `yaml:"name,omitempty"`     // portfolio name sent to HTTP sources
	Token    string `yaml:"token,omitempty"`    // x-auth-token for HTTP sources
}

// Animation holds transition timings.
type Animation struct {
	ZoomMS          int     `yaml:"zoom_ms"`
	FadeMS          int     `yaml:"fade_ms"`
	InnerRingOffset float64 `yaml:"inner_ring_offset"`
}

// ZoomDuration returns the click-to-zoom transition length.
func (a Animation) ZoomDuration() time.Duration {
	return time.Duration(a.ZoomMS) * time.Millisecond
}

// FadeDuration returns the pointer-leave fade length.
func (a Animation) FadeDuration() time.Duration {
	return time.Duration(a.FadeMS) * time.Millisecond
}

// Config is the top-level configuration.
type Config struct {
	Chart     Chart     `yaml:"chart"`
	Source    Source    `yaml:"source,omitempty"`
	Animation Animation `yaml:"animation"`
}

// DefaultTable is the SQL table records are read from.
const DefaultTable = "sunburst_records"

// DefaultConfig returns a Config with the stock chart geometry and colours.
func DefaultConfig() Config {
	return Config{
		Chart: Chart{
			Radius:     200,
			RootStatus: model.DefaultRootColor,
			Colors:     model.DefaultPalette(),
			Breadcrumb: render.DefaultBreadcrumb(),
			Legend:     render.DefaultLegend(),
		},
		Source: Source{
			Table: DefaultTable,
		},
		Animation: Animation{
			ZoomMS:          20,
			FadeMS:          200,
			InnerRingOffset: 20,
		},
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Chart.Radius <= 0:
		return fmt.Errorf("%w: chart.radius must be positive, got %g", ErrInvalidConfig, c.Chart.Radius)
	case c.Chart.Breadcrumb.Width <= 0 || c.Chart.Breadcrumb.Height <= 0:
		return fmt.Errorf("%w: breadcrumb width and height must be positive", ErrInvalidConfig)
	case c.Chart.Breadcrumb.Spacing < 0 || c.Chart.Breadcrumb.TailWidth < 0:
		return fmt.Errorf("%w: breadcrumb spacing and tail width must not be negative", ErrInvalidConfig)
	case c.Chart.Legend.Width <= 0 || c.Chart.Legend.Height <= 0:
		return fmt.Errorf("%w: legend width and height must be positive", ErrInvalidConfig)
	case c.Chart.Legend.Spacing < 0 || c.Chart.Legend.CornerRadius < 0:
		return fmt.Errorf("%w: legend spacing and corner radius must not be negative", ErrInvalidConfig)
	case c.Animation.ZoomMS < 0 || c.Animation.FadeMS < 0:
		return fmt.Errorf("%w: animation durations must not be negative", ErrInvalidConfig)
	case c.Animation.InnerRingOffset < 0 || c.Animation.InnerRingOffset >= c.Chart.Radius:
		return fmt.Errorf("%w: inner_ring_offset must be in [0, radius)", ErrInvalidConfig)
	}
	return nil
}

// ConfigDir returns the XDG config directory for sunburst.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sunburst")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sunburst")
}

// DataDir returns the XDG data directory for sunburst.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "sunburst")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "sunburst")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		applyEnv(&cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Missing keys keep their
// defaults; a missing file yields DefaultConfig. Environment overrides are
// applied last.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	cfg.Chart.Colors = cfg.Chart.Colors.WithDefaults()
	if cfg.Chart.RootStatus == "" {
		cfg.Chart.RootStatus = model.DefaultRootColor
	}
	if cfg.Source.Table == "" {
		cfg.Source.Table = DefaultTable
	}
	cfg.Source.Location = expandHome(cfg.Source.Location)
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvSource); v != "" {
		cfg.Source.Location = expandHome(v)
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Source.Token = v
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path. The token is never
// persisted; supply it through SUNBURST_TOKEN.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	cfg.Source.Token = ""
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
