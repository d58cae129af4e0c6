package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/sunburst/internal/datasource"
	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/ui"
	"github.com/vanderheijden86/sunburst/pkg/watcher"
)

func newExploreCmd(a *app) *cobra.Command {
	var sf sourceFlags
	var title string
	var live bool

	cmd := &cobra.Command{
		Use:   "explore [source...]",
		Short: "Explore the chart in the terminal",
		Long: `Explore opens an interactive view of the chart. Arrow keys move the
highlight, enter zooms, backspace zooms out and esc clears the highlight.
The mouse works too.

With --live, local sources are watched and the chart rebuilds when they
change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.sources(args, sf)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c, err := a.loadChart(ctx, srcs)
			if err != nil {
				return err
			}

			opts := []ui.Option{ui.WithTitle(title)}
			if live {
				w, err := a.startWatcher(ctx, srcs)
				if err != nil {
					return err
				}
				if w != nil {
					defer w.Stop()
					opts = append(opts, ui.WithWatcher(w, func(ctx context.Context) ([]model.Record, error) {
						return a.load(ctx, srcs)
					}))
				}
			}

			p := tea.NewProgram(ui.New(c, opts...), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	addSourceFlags(cmd, &sf)
	cmd.Flags().StringVar(&title, "title", "sunburst", "Header title")
	cmd.Flags().BoolVar(&live, "live", true, "Rebuild when local sources change")
	return cmd
}

// startWatcher watches the local sources among srcs. It returns a nil
// watcher when none of them is local.
func (a *app) startWatcher(ctx context.Context, srcs []datasource.Source, opts ...watcher.Option) (*watcher.Watcher, error) {
	var paths []string
	for _, s := range srcs {
		if s.Local() {
			paths = append(paths, s.Location)
		}
	}
	if len(paths) == 0 {
		return nil, nil
	}
	opts = append(opts, watcher.WithOnError(func(err error) {
		a.logger.Warn("watch error", zap.Error(err))
	}))
	w, err := watcher.New(paths, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	a.logger.Debug("watching",
		zap.Strings("paths", w.Paths()),
		zap.Bool("polling", w.IsPolling()),
		zap.Stringer("filesystem", w.FilesystemType()))
	return w, nil
}
