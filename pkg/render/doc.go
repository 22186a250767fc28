// Package render holds the output stages shared by every genogram view.
//
// # Views
//
// Two views exist:
//
//   - [genogram]: the clinical drawing, with symbols, couple bars and
//     descent lines placed by [genogram/layout]
//   - [nodelink]: a Graphviz rendering of the same family, useful for
//     checking relationships at a glance
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG produced by either view with the
// external rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// When rsvg-convert is missing both return an UNSUPPORTED error; [Available]
// reports it up front.
//
// [genogram]: github.com/matzehuels/genogram/pkg/render/genogram
// [genogram/layout]: github.com/matzehuels/genogram/pkg/render/genogram/layout
// [nodelink]: github.com/matzehuels/genogram/pkg/render/nodelink
package render
