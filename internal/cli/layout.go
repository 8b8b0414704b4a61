package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/render/sink"
)

// layoutCommand creates the layout command for inspecting chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	ro := &renderOpts{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layout [data file]",
		Short: "Resolve chart geometry and print it",
		Long: `Resolve the chart layout for a data file without rendering it.

The table shows the bounds of every component (title, legend, plot, axes)
and, for each axis, its range, tick step and tick count. With --json the
full geometry document is printed instead (the same document 'render -f json'
writes).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				ro.opts.Input = args[0]
			}
			return c.runLayout(cmd.Context(), ro, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the geometry as JSON")
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "write JSON to a file instead of stdout (implies --json)")
	addChartFlags(cmd, ro)

	return cmd
}

// runLayout loads the data and resolves the geometry.
func (c *CLI) runLayout(ctx context.Context, ro *renderOpts, asJSON bool) error {
	opts, err := c.prepareOptions(ctx, ro)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	series, hash, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	g, cacheHit, err := runner.LayoutWithCacheInfo(ctx, series, hash, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if asJSON || ro.output != "" {
		data, err := sink.RenderJSON(g)
		if err != nil {
			return err
		}
		if ro.output == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := writeOutput(ro.output, data); err != nil {
			return err
		}
		printSuccess("Layout complete")
		printFile(ro.output)
		return nil
	}

	fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("Chart %gx%g", g.Width, g.Height)))
	printTable([]string{"Component", "X", "Y", "Width", "Height"}, componentRows(g), 1, 2, 3, 4)
	printTable([]string{"Axis", "Kind", "Range", "Step", "Ticks", "Labels"}, axisRows(g), 3, 4)
	printStats(len(series.Series), 0, g.Iterations, cacheHit)
	for _, w := range g.Warnings {
		printWarning("%s", w)
	}
	printNewline()
	printNextStep("Render", appName+" render "+ro.opts.Input)
	return nil
}

// componentRows lists the bounds of every laid-out component.
func componentRows(g chart.Geometry) [][]string {
	var rows [][]string
	add := func(name string, r geom.Rect) {
		rows = append(rows, []string{name, num(r.X), num(r.Y), num(r.W), num(r.H)})
	}
	if g.Title != nil {
		add("title", g.Title.Bounds)
	}
	if g.Legend != nil {
		add("legend", g.Legend.Bounds)
	}
	add("plot", g.Plot)
	add("plot area", g.PlotArea)
	for _, a := range g.Axes {
		add(a.Position.String()+" axis", a.Bounds)
	}
	return rows
}

// axisRows summarises each axis's range and ticks.
func axisRows(g chart.Geometry) [][]string {
	rows := make([][]string, 0, len(g.Axes))
	for _, a := range g.Axes {
		labels := make([]string, len(a.Ticks))
		for i, t := range a.Ticks {
			labels[i] = t.Label
		}
		rows = append(rows, []string{
			a.Position.String(),
			a.Kind,
			a.Transform.Range.String(),
			num(a.Step),
			strconv.Itoa(len(a.Ticks)),
			truncate(strings.Join(labels, " "), 48),
		})
	}
	return rows
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
