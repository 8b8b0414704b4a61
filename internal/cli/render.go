package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/simplecharts/simplecharts/pkg/pipeline"
)

// renderOpts holds the command-line flags shared by render and layout.
type renderOpts struct {
	output     string // output file path (or base path for multiple outputs)
	formats    string // comma-separated output formats
	configPath string // TOML or YAML config file
	noCache    bool
	opts       pipeline.Options
}

// addChartFlags registers the flags that shape the chart itself.
func addChartFlags(cmd *cobra.Command, ro *renderOpts) {
	f := cmd.Flags()
	f.StringVar(&ro.configPath, "config", "", "config file (.toml, .yaml)")
	f.Float64Var(&ro.opts.Width, "width", 0, "canvas width (default from config: 800)")
	f.Float64Var(&ro.opts.Height, "height", 0, "canvas height (default from config: 600)")
	f.StringVar(&ro.opts.Title, "title", "", "chart title")
	f.StringVar(&ro.opts.DomainLabel, "x-label", "", "domain axis label")
	f.StringVar(&ro.opts.RangeLabel, "y-label", "", "range axis label")
	f.BoolVar(&ro.opts.DateDomain, "date", false, "treat X values as epoch milliseconds and use calendar ticks")
	f.StringVar(&ro.opts.Legend, "legend", pipeline.DefaultLegend, "legend placement: auto, none, top, bottom, left, right")
	f.StringVar(&ro.opts.Sheet, "sheet", "", "worksheet to read from .xlsx input (default: first)")
	f.BoolVar(&ro.noCache, "no-cache", false, "disable caching")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	ro := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [data file]",
		Short: "Render a line chart from a data file",
		Long: `Render a line chart from a CSV, JSON or XLSX data file.

The first CSV/XLSX column holds X values (numbers or timestamps); every
further column is one series. Without a data file the built-in demo series
are drawn.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				ro.opts.Input = args[0]
			}
			return c.runRender(cmd.Context(), ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg, json, pdf, png (comma-separated; default from config: svg)")
	cmd.Flags().Float64Var(&ro.opts.Scale, "scale", 0, "PNG scale factor (default from config: 2)")
	cmd.Flags().BoolVar(&ro.opts.ShowPoints, "points", false, "mark each data point")
	cmd.Flags().BoolVar(&ro.opts.Grid, "grid", false, "draw grid lines at ticks")
	cmd.Flags().BoolVar(&ro.opts.Refresh, "refresh", false, "recompute even if cached")
	addChartFlags(cmd, ro)

	return cmd
}

// prepareOptions loads the config and fills in runtime fields.
func (c *CLI) prepareOptions(ctx context.Context, ro *renderOpts) (pipeline.Options, error) {
	opts := ro.opts
	cfg, err := loadConfig(ctx, ro.configPath)
	if err != nil {
		return opts, err
	}
	opts.Config = cfg
	opts.Formats = parseFormats(ro.formats)
	opts.Logger = loggerFromContext(ctx)
	return opts, nil
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, ro *renderOpts) error {
	opts, err := c.prepareOptions(ctx, ro)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st := startStage(opts.Logger, "render")
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	formats := make([]string, 0, len(result.Artifacts))
	for format := range result.Artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	var written []string
	for _, format := range formats {
		path := outputPath(ro.output, opts.Input, format, len(formats) == 1)
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}
	st.done("wrote charts", "files", len(written), "cached", result.CacheInfo.RenderHit)

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.SeriesCount, result.Stats.PointCount, result.Stats.Iterations,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	for _, w := range result.Geometry.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// writeOutput writes data to path, creating or truncating the file.
func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
