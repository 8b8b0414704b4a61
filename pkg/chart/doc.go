// Package chart assembles axes, a title and a legend around a line plot and
// produces a settled [Geometry] snapshot for rendering.
//
// Layout happens at two levels. A [Chart] places its title and legend
// around the plot with a chart-flavor resolver; the [LinePlot] then places
// its two axes inside the rectangle it was given with a plot-flavor
// resolver. Both levels iterate to a fixed point before any bounds are
// published, so the returned Geometry never reflects an intermediate pass.
//
//	m := fonts.NewOpenType()
//	plot, _ := chart.NewLinePlot(m, chart.PlotOptions{RangeLabel: "load"})
//	plot.SetData(collection)
//	c, _ := chart.NewChart(plot, chart.WithTitle(title))
//	g, _ := c.Layout(800, 600)
//
// Axes are owned by exactly one plot. The plot subscribes to their change
// notifications and marks itself dirty, so callers can tell when a new
// layout is needed after zooming or panning.
package chart
