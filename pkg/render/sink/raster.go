package sink

import (
	"context"

	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/render"
)

// RenderPNG renders g as PNG via SVG conversion at the given scale.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, g chart.Geometry, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(ctx, RenderSVG(g, opts...), scale)
}

// RenderPDF renders g as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, g chart.Geometry, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(g, opts...))
}
