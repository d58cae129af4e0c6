// Command sunburst aggregates project status records and renders them as a
// zoomable sunburst chart.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vanderheijden86/sunburst/pkg/config"
	"github.com/vanderheijden86/sunburst/pkg/debug"
	"github.com/vanderheijden86/sunburst/pkg/metrics"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	timings    bool
	now        string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "sunburst",
		Short: "Project status sunburst renderer",
		Long: `sunburst turns flat project → phase → task → condition records into a
zoomable sunburst chart. Tasks are behind when they are open past their due
date; phases and projects are behind when any task below them is.

Records are read from JSON or JSONL files, SQLite databases, Postgres or an
HTTP endpoint.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/sunburst/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().BoolVar(&a.timings, "timings", false, "Log pipeline timings on exit")
	root.PersistentFlags().StringVar(&a.now, "now", "", "Evaluate due dates against this date instead of today")

	root.AddCommand(
		newRenderCmd(a),
		newExploreCmd(a),
		newWatchCmd(a),
		newReportCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup builds the logger and loads the configuration.
func (a *app) setup() error {
	zc := zap.NewProductionConfig()
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	if a.verbose {
		debug.SetLogger(logger)
		debug.SetEnabled(true)
	}

	if a.timings {
		metrics.SetEnabled(true)
	}

	if a.configPath == "" {
		a.configPath = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", zap.String("path", a.configPath))
	return nil
}

func (a *app) teardown() {
	if a.timings {
		for _, s := range metrics.AllStats() {
			a.logger.Info("timing",
				zap.String("stage", s.Name),
				zap.Int64("count", s.Count),
				zap.Float64("total_ms", s.TotalMs),
				zap.Float64("max_ms", s.MaxMs))
		}
	}
	_ = a.logger.Sync()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
