package pipeline

import (
	"io"

	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
)

// ComputeLayout builds a chart over c and resolves its geometry for the
// canvas size in opts. Text is measured with the measurer named in the
// configuration.
func ComputeLayout(c *data.Collection, opts Options) (chart.Geometry, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Geometry{}, err
	}

	m, err := fonts.New(opts.Config.Render.Measurer)
	if err != nil {
		return chart.Geometry{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "text measurer")
	}
	if closer, ok := m.(io.Closer); ok {
		defer closer.Close()
	}

	ch, err := BuildChart(c, m, opts)
	if err != nil {
		return chart.Geometry{}, err
	}
	defer ch.Plot().Close()

	g, err := ch.Layout(opts.Width, opts.Height)
	if err != nil {
		return chart.Geometry{}, err
	}
	if !g.Converged {
		opts.Logger.Warn("chart layout did not converge", "iterations", g.Iterations, "warnings", g.Warnings)
	}
	opts.Logger.Debug("resolved chart geometry",
		"plot", g.PlotArea,
		"axes", len(g.Axes),
		"iterations", g.Iterations)
	return g, nil
}

// BuildChart assembles the chart for c: a line plot auto-ranged to the
// data, plus a title and legend when opts ask for them.
func BuildChart(c *data.Collection, m fonts.Measurer, opts Options) (*chart.Chart, error) {
	opts.SetLayoutDefaults()
	cfg := opts.Config

	plot, err := chart.NewLinePlot(m, chart.PlotOptions{
		DomainLabel: opts.DomainLabel,
		RangeLabel:  opts.RangeLabel,
		Time:        opts.DateDomain || c.Time,
		Location:    opts.Location,
		Axis:        cfg.Axis,
		Layout:      cfg.LayoutConfig(),
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	plot.SetData(c)

	chartOpts := []chart.Option{
		chart.WithContainerInsets(cfg.Layout.ContainerInsets),
		chart.WithLayoutConfig(cfg.ChartLayoutConfig()),
		chart.WithLogger(opts.Logger),
	}

	if opts.Title != "" {
		title, err := chart.NewLabel(opts.Title, geom.Top, cfg.Render.TitleFont, m)
		if err != nil {
			plot.Close()
			return nil, err
		}
		chartOpts = append(chartOpts, chart.WithTitle(title))
	}

	pos, auto, err := legendPosition(opts.Legend)
	if err != nil {
		plot.Close()
		return nil, err
	}
	if opts.Legend != LegendNone && (!auto || len(c.Series) > 1) {
		entries := make([]chart.LegendEntry, len(c.Series))
		for i, s := range c.Series {
			entries[i] = chart.LegendEntry{Name: s.Name, Color: cfg.Color(i)}
		}
		legend, err := chart.NewLegend(entries, pos, cfg.Render.LegendFont, m)
		if err != nil {
			plot.Close()
			return nil, err
		}
		chartOpts = append(chartOpts, chart.WithLegend(legend))
	}

	return chart.NewChart(plot, chartOpts...)
}
