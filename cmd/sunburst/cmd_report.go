package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/sunburst/pkg/export"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

func newReportCmd(a *app) *cobra.Command {
	var sf sourceFlags
	var out, title string
	var conditions, raw bool
	var depth int

	cmd := &cobra.Command{
		Use:   "report [source...]",
		Short: "Write a markdown status report",
		Long: `Report summarises the portfolio: counts, completion, the projects that
are behind and a per-project breakdown with a mindmap of the hierarchy.
On a terminal the markdown is rendered; use --raw or --output for the
source text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.sources(args, sf)
			if err != nil {
				return err
			}
			c, err := a.loadChart(cmd.Context(), srcs)
			if err != nil {
				return err
			}
			now, err := a.clock()
			if err != nil {
				return err
			}

			rc := export.DefaultReportConfig()
			rc.Now = now
			rc.Title = title
			rc.Conditions = conditions
			rc.Mindmap = export.MindmapConfig{
				RootLabel: title,
				MaxDepth:  depth,
				Palette:   a.cfg.Chart.Colors,
			}
			var root *model.Node
			if r := c.Layout().Root; r != nil {
				root = r.Data
			}
			if out != "" {
				return export.SaveReportToFile(c.Records(), root, rc, out)
			}

			md := export.GenerateReport(c.Records(), root, rc)
			w := cmd.OutOrStdout()
			fd := int(os.Stdout.Fd())
			if raw || w != os.Stdout || !term.IsTerminal(fd) {
				_, err = fmt.Fprint(w, md)
				return err
			}
			width, _, err := term.GetSize(fd)
			if err != nil || width <= 0 {
				width = 100
			}
			rendered, err := export.RenderTerminal(md, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, rendered)
			return err
		},
	}

	addSourceFlags(cmd, &sf)
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write the markdown to this file")
	cmd.Flags().StringVar(&title, "title", "Portfolio Status", "Report title")
	cmd.Flags().BoolVar(&conditions, "conditions", false, "List conditions under each task")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without terminal rendering")
	cmd.Flags().IntVar(&depth, "mindmap-depth", 3, "Levels drawn in the mindmap (4 includes conditions)")
	return cmd
}
