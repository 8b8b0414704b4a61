// Package render converts SVG charts to other formats.
//
// The [ToPDF] and [ToPNG] functions shell out to rsvg-convert (from
// librsvg), so PNG and PDF output is only available where it is installed.
// [Available] reports whether it is.
//
//	svg := sink.RenderSVG(geometry, sink.WithSeries(series...))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// Chart drawing itself lives in the [sink] subpackage.
//
// [sink]: github.com/simplecharts/simplecharts/pkg/render/sink
package render
