package sink

import (
	"context"

	"github.com/matzehuels/genogram/pkg/render"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// RasterOption configures [RenderPDF] and [RenderPNG].
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPDF converts an SVG document produced by [RenderSVG] to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return render.ToPDF(ctx, svg)
}

// RenderPNG converts an SVG document produced by [RenderSVG] to PNG.
func RenderPNG(ctx context.Context, svg []byte, opts ...RasterOption) ([]byte, error) {
	r := rasterRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(ctx, svg, r.scale)
}
