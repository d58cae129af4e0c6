package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/sunburst/internal/datasource"
	"github.com/vanderheijden86/sunburst/pkg/debug"
	"github.com/vanderheijden86/sunburst/pkg/status"
	"github.com/vanderheijden86/sunburst/pkg/view"
	"github.com/vanderheijden86/sunburst/pkg/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var sf sourceFlags
	var rf renderFlags
	var debounce, interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [source...]",
		Short: "Re-render outputs whenever the data changes",
		Long: `Watch renders like "render" and then keeps running. Local sources are
watched for changes; remote sources (Postgres, HTTP) are polled every
--interval. Each change that alters the data rebuilds the chart, logs the
status transitions and rewrites every output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.sources(args, sf)
			if err != nil {
				return err
			}
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := a.loadChart(ctx, srcs)
			if err != nil {
				return err
			}
			if err := a.rerender(c, rf); err != nil {
				return err
			}

			w, err := a.startWatcher(ctx, srcs, watcher.WithDebounceDuration(debounce))
			if err != nil {
				return err
			}
			var changed <-chan []string
			if w != nil {
				defer w.Stop()
				changed = w.Changed()
			}
			var tick <-chan time.Time
			if hasRemote(srcs) && interval > 0 {
				t := time.NewTicker(interval)
				defer t.Stop()
				tick = t.C
			}
			if changed == nil && tick == nil {
				a.logger.Info("nothing to watch")
				return nil
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case paths := <-changed:
					a.logger.Debug("change detected", zap.Strings("paths", paths))
				case <-tick:
				}
				a.refresh(ctx, c, srcs, rf)
			}
		},
	}

	addSourceFlags(cmd, &sf)
	addRenderFlags(cmd, &rf)
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounceDuration, "Quiet period before a file change is handled")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "Poll interval for remote sources")
	return cmd
}

// refresh reloads the sources and re-renders when the data changed. Errors
// are logged and the previous chart is kept.
func (a *app) refresh(ctx context.Context, c *view.Chart, srcs []datasource.Source, rf renderFlags) {
	records, err := a.load(ctx, srcs)
	if err != nil {
		a.logger.Warn("reload failed", zap.Error(err))
		return
	}
	before := c.Records()
	changed, err := c.SetData(records)
	if err != nil {
		a.logger.Warn("rebuild failed", zap.Error(err))
		return
	}
	if !changed {
		a.logger.Debug("data unchanged")
		return
	}
	d := status.Compare(before, c.Records())
	debug.Dump("watch: diff", d)
	a.logger.Info("data changed",
		zap.Int("records", len(records)),
		zap.String("summary", d.Summary()))
	for _, ch := range d.Changed {
		a.logger.Info("status changed", zap.String("change", ch.String()))
	}
	if err := a.rerender(c, rf); err != nil {
		a.logger.Warn("render failed", zap.Error(err))
	}
}

func (a *app) rerender(c *view.Chart, rf renderFlags) error {
	if err := applyInteraction(c, rf); err != nil {
		return err
	}
	return a.writeOutputs(c, rf, os.Stdout)
}

func hasRemote(srcs []datasource.Source) bool {
	for _, s := range srcs {
		if !s.Local() {
			return true
		}
	}
	return false
}
