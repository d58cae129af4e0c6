package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"
)

// wizardValues mirrors the wizard form fields as strings, the way huh
// inputs bind them.
type wizardValues struct {
	Location   string
	Kind       string
	Table      string
	Name       string
	Radius     string
	Key        string
	Ahead      string
	Behind     string
	Complete   string
	Incomplete string
	Save       bool
}

func valuesFrom(cfg Config) wizardValues {
	return wizardValues{
		Location:   cfg.Source.Location,
		Kind:       cfg.Source.Kind,
		Table:      cfg.Source.Table,
		Name:       cfg.Source.Name,
		Radius:     strconv.FormatFloat(cfg.Chart.Radius, 'f', -1, 64),
		Key:        cfg.Chart.Key,
		Ahead:      cfg.Chart.Colors.Ahead,
		Behind:     cfg.Chart.Colors.Behind,
		Complete:   cfg.Chart.Colors.Complete,
		Incomplete: cfg.Chart.Colors.Incomplete,
		Save:       true,
	}
}

// apply folds the wizard answers into cfg.
func (v wizardValues) apply(cfg Config) (Config, error) {
	radius, err := strconv.ParseFloat(strings.TrimSpace(v.Radius), 64)
	if err != nil {
		return cfg, fmt.Errorf("%w: radius %q: %v", ErrInvalidConfig, v.Radius, err)
	}
	cfg.Chart.Radius = radius
	cfg.Chart.Key = strings.TrimSpace(v.Key)
	cfg.Chart.Colors.Ahead = v.Ahead
	cfg.Chart.Colors.Behind = v.Behind
	cfg.Chart.Colors.Complete = v.Complete
	cfg.Chart.Colors.Incomplete = v.Incomplete
	cfg.Chart.Colors = cfg.Chart.Colors.WithDefaults()

	cfg.Source.Location = expandHome(strings.TrimSpace(v.Location))
	cfg.Source.Kind = v.Kind
	cfg.Source.Table = strings.TrimSpace(v.Table)
	if cfg.Source.Table == "" {
		cfg.Source.Table = DefaultTable
	}
	cfg.Source.Name = strings.TrimSpace(v.Name)
	return cfg, cfg.Validate()
}

func validateRadius(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("radius must be a positive number")
	}
	return nil
}

func validateColor(s string) error {
	if s == "" {
		return nil
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("colour must look like #rrggbb")
	}
	return nil
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func wizardForm(v *wizardValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Record source").
				Description("JSON/JSONL file, SQLite file, postgres:// DSN or http(s) URL").
				Value(&v.Location),
			huh.NewSelect[string]().
				Title("Source kind").
				Options(
					huh.NewOption("Detect from location", ""),
					huh.NewOption("JSON array", "json"),
					huh.NewOption("JSON lines", "jsonl"),
					huh.NewOption("SQLite", "sqlite"),
					huh.NewOption("PostgreSQL", "postgres"),
					huh.NewOption("HTTP", "http"),
				).
				Value(&v.Kind),
			huh.NewInput().Title("SQL table").Value(&v.Table),
			huh.NewInput().Title("Portfolio name (HTTP sources)").Value(&v.Name),
		),
		huh.NewGroup(
			huh.NewInput().Title("Chart radius").Value(&v.Radius).Validate(validateRadius),
			huh.NewInput().Title("Instance key").Description("Leave empty to generate one").Value(&v.Key),
			huh.NewInput().Title("Ahead colour").Value(&v.Ahead).Validate(validateColor),
			huh.NewInput().Title("Behind colour").Value(&v.Behind).Validate(validateColor),
			huh.NewInput().Title("Complete colour").Value(&v.Complete).Validate(validateColor),
			huh.NewInput().Title("Incomplete colour").Value(&v.Incomplete).Validate(validateColor),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save configuration?").
				Value(&v.Save).
				Affirmative("Save").
				Negative("Discard"),
		),
	)
}

// RunWizard walks the user through the source and chart settings, starting
// from the config at path, and saves the result there when confirmed.
func RunWizard(path string) (Config, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	v := valuesFrom(cfg)
	if err := wizardForm(&v).Run(); err != nil {
		return cfg, err
	}
	out, err := v.apply(cfg)
	if err != nil {
		return cfg, err
	}
	if !v.Save {
		return out, nil
	}
	if err := SaveTo(out, path); err != nil {
		return out, err
	}
	fmt.Printf("Configuration written to %s\n", path)
	return out, nil
}
