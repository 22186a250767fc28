// Package pkg provides the core libraries for genogram rendering.
//
// # Overview
//
// A genogram is a family diagram: squares for men, circles for women,
// horizontal bars joining couples, and descent lines dropping from each
// couple to its children, one generation per row. The pkg directory turns
// a structured family description into such a diagram:
//
//	family JSON (English or Spanish vocabulary, possibly malformed)
//	         ↓
//	    [io] (repair and decode)
//	         ↓
//	    [family] (normalize, heal dangling references, index)
//	         ↓
//	    [family/generation] (assign generations)
//	         ↓
//	    [render/genogram/layout] (position icons)
//	         ↓
//	    [render/genogram/sink] (connectors, symbols, SVG/HTML/JSON)
//	         ↓
//	    HTML/SVG/JSON/DOT/PDF/PNG output
//
// # Quick Start
//
//	fam, _ := io.ImportFamily("family.json")
//	path, err := pipeline.Render(ctx, fam, "out/garcia")
//
// # Main Packages
//
// [family] - Persons and relationships, normalization (canonical ids,
// placeholder persons for unknown references, removal of invalid and
// duplicate relationships) and the relationship [family.Index].
//
// [family/generation] - Generation assignment, either around the
// identified patient or breadth first from the persons without parents.
//
// [render/genogram/layout] - Icon positions: the compact layout for a
// single couple with children, the general layout otherwise.
//
// [render/genogram/sink] - Relationship connectors, person symbols and the
// document assemblers (SVG, interactive HTML, layout JSON, PDF/PNG).
//
// [render/genogram/styles] - Visual styles that draw the primitives.
//
// [render/nodelink] - Graphviz view of the family graph for debugging.
//
// [render] - SVG to PDF/PNG conversion.
//
// [io] - Lenient JSON import and export of families.
//
// [cache] - The per-renderer icon cache and content hashing.
//
// [pipeline] - The complete flow used by the CLI and the HTTP server.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for metrics.
//
// [buildinfo] - Version information.
//
// [family]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/family
// [family/generation]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/family/generation
// [render/genogram/layout]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/render/genogram/layout
// [render/genogram/sink]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/render/genogram/sink
// [render/genogram/styles]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/render/genogram/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/buildinfo
package pkg
