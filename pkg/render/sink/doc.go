// Package sink writes a settled chart geometry to output formats.
//
//   - SVG: [RenderSVG] draws the axes, ticks, labels, title, legend and the
//     data series with github.com/ajstarks/svgo.
//   - JSON: [RenderJSON] serialises the geometry itself, for clients that
//     draw the chart on their own.
//   - PNG and PDF: [RenderPNG] and [RenderPDF] convert the SVG with
//     rsvg-convert.
//
// Sinks never run layout. They read positions from [chart.Geometry] and map
// data points through its axis transforms.
//
// [chart.Geometry]: github.com/simplecharts/simplecharts/pkg/chart#Geometry
package sink
