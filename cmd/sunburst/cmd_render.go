package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/sunburst/pkg/view"
)

// renderFlags select the outputs and the interaction state to draw.
type renderFlags struct {
	outputs []string
	title   string
	hover   string
	zoom    string
}

func newRenderCmd(a *app) *cobra.Command {
	var sf sourceFlags
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "render [source...]",
		Short: "Render the chart to SVG, PNG or HTML",
		Long: `Render loads records from every source and writes the chart to each
output. The format follows the output extension: .svg, .png or .html. An
output of "-" writes SVG to stdout.

--zoom and --hover take a slash separated name path, e.g. "Alpha/Design".`,
		Example: `  sunburst render records.json -o chart.svg
  sunburst render status.db -o chart.png -o chart.html --zoom Alpha`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.sources(args, sf)
			if err != nil {
				return err
			}
			c, err := a.loadChart(cmd.Context(), srcs)
			if err != nil {
				return err
			}
			if err := applyInteraction(c, rf); err != nil {
				return err
			}
			return a.writeOutputs(c, rf, cmd.OutOrStdout())
		},
	}

	addSourceFlags(cmd, &sf)
	addRenderFlags(cmd, &rf)
	return cmd
}

func addSourceFlags(cmd *cobra.Command, sf *sourceFlags) {
	cmd.Flags().StringVar(&sf.table, "table", "", "SQL table holding records")
	cmd.Flags().StringVar(&sf.name, "name", "", "Portfolio name sent to HTTP sources")
	cmd.Flags().StringVar(&sf.kind, "kind", "", "Source kind (json, jsonl, sqlite, postgres, http); detected when empty")
}

func addRenderFlags(cmd *cobra.Command, rf *renderFlags) {
	cmd.Flags().StringArrayVarP(&rf.outputs, "output", "o", nil, "Output file (.svg, .png, .html, or - for SVG on stdout)")
	cmd.Flags().StringVar(&rf.title, "title", "Portfolio status", "HTML page title")
	cmd.Flags().StringVar(&rf.hover, "hover", "", "Draw the chart with this node hovered")
	cmd.Flags().StringVar(&rf.zoom, "zoom", "", "Draw the chart zoomed onto this node")
	_ = cmd.MarkFlagRequired("output")
}

// applyInteraction zooms and hovers as requested, settling every
// transition before returning.
func applyInteraction(c *view.Chart, rf renderFlags) error {
	if rf.zoom != "" {
		n, err := findPath(c, rf.zoom)
		if err != nil {
			return err
		}
		c.Click(n)
	}
	if rf.hover != "" {
		n, err := findPath(c, rf.hover)
		if err != nil {
			return err
		}
		c.Hover(n)
	}
	c.Advance(time.Now().Add(time.Hour))
	return nil
}

// writeOutputs writes every output concurrently.
func (a *app) writeOutputs(c *view.Chart, rf renderFlags, stdout io.Writer) error {
	var g errgroup.Group
	for _, out := range rf.outputs {
		g.Go(func() error {
			if err := writeOutput(c, out, rf.title, stdout); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			a.logger.Debug("output written", zap.String("path", out))
			return nil
		})
	}
	return g.Wait()
}

func writeOutput(c *view.Chart, path, title string, stdout io.Writer) error {
	if path == "-" {
		return c.WriteSVG(stdout)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return c.SavePNG(path)
	case ".svg", ".html", ".htm":
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if ext == ".svg" {
		err = c.WriteSVG(f)
	} else {
		err = c.WriteHTML(f, title)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
