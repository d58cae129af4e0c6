package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/sunburst/pkg/export"
)

func newExportCmd(a *app) *cobra.Command {
	var sf sourceFlags
	var out, title string
	var summary bool

	cmd := &cobra.Command{
		Use:   "export [source...]",
		Short: "Export statuses and layout to a SQLite database",
		Long: `Export writes the aggregated records, the laid-out arcs and a small
overview view to a SQLite database for offline querying. A JSON summary is
written next to it unless --summary=false.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.sources(args, sf)
			if err != nil {
				return err
			}
			c, err := a.loadChart(cmd.Context(), srcs)
			if err != nil {
				return err
			}
			exp := export.NewSQLiteExporter(c.Records(), c.Layout())
			exp.Config.Title = title
			exp.Config.WriteSummaryJSON = summary
			if err := exp.Export(out); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.logger.Info("exported", zap.String("path", out), zap.Int("records", len(exp.Records)))
			return nil
		},
	}

	addSourceFlags(cmd, &sf)
	cmd.Flags().StringVarP(&out, "output", "o", "sunburst.db", "Database file to write")
	cmd.Flags().StringVar(&title, "title", "", "Title stored in the export metadata")
	cmd.Flags().BoolVar(&summary, "summary", true, "Also write <name>.summary.json")
	return cmd
}
