// Package nodelink renders a family as a plain Graphviz node-link diagram.
//
// # Overview
//
// The node-link view complements the clinical genogram: it shows every
// relationship the normalized input contains without the genogram's
// notation, which makes it handy for checking what an extractor produced.
// Males are boxes, females ellipses, placeholders dashed, and the
// identified patient gets a double outline.
//
// # Usage
//
//	dot := nodelink.ToDOT(fam, idx, gen, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Generations
//
// [ToDOT] pins each generation computed by the generation package to one
// rank, so the diagram's rows match the genogram's rows.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
