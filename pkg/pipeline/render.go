package pipeline

import (
	"context"
	"fmt"

	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/render/sink"
)

// Render generates artifacts for every format in opts from resolved
// geometry and the series it was computed for.
func Render(ctx context.Context, g chart.Geometry, c *data.Collection, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(c, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		out, err := renderFormat(ctx, g, format, opts, svgOpts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = out
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, g chart.Geometry, format string, opts Options, svgOpts []sink.SVGOption) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(g, svgOpts...), nil
	case FormatJSON:
		return sink.RenderJSON(g)
	case FormatPNG:
		return sink.RenderPNG(ctx, g, opts.Scale, svgOpts...)
	case FormatPDF:
		return sink.RenderPDF(ctx, g, svgOpts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}

// buildSVGOptions maps configuration and options onto sink options.
func buildSVGOptions(c *data.Collection, opts Options) []sink.SVGOption {
	r := opts.Config.Render
	result := []sink.SVGOption{
		sink.WithPalette(r.Palette),
		sink.WithBackground(r.Background),
	}
	if c != nil {
		result = append(result, sink.WithSeries(c.Series...))
	}
	if r.LineWidth > 0 {
		result = append(result, sink.WithLineWidth(r.LineWidth))
	}
	if opts.ShowPoints {
		result = append(result, sink.WithPoints())
	}
	if opts.Grid {
		result = append(result, sink.WithGrid())
	}
	return result
}
