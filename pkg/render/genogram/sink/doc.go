// Package sink turns a positioned family into output documents.
//
// # Overview
//
// A sink consumes a [layout.Layout] together with the normalized family and
// its [family.Index]. This package provides:
//
//   - SVG: the genogram itself ([RenderSVG], [Assemble])
//   - HTML: the SVG inside a pan and zoom page ([RenderHTML])
//   - JSON: positions, generations, couples and edges ([RenderJSON])
//   - PDF and PNG: conversions of the SVG ([RenderPDF], [RenderPNG])
//
// # Drawing Order
//
// [Assemble] writes the background first, then every connector built by
// [BuildRelations], then the person symbols so that lines never cover a
// symbol. Each person is one <g class="person"> element.
//
// # Icons
//
// Badges and relationship decorations are SVG files looked up by relative
// path through an [IconSource] and embedded as data URIs:
//
//	svg := sink.RenderSVG(f, idx, l,
//	    sink.WithStyle(styles.NewClassic()),
//	    sink.WithIcons(cache.NewIconsDir("icons")),
//	)
//
// Paths use English names (female/treatment.svg, relationships/distant.svg,
// marital/divorced.svg, kinship/twins.svg). When a path is absent its
// equivalents in the Spanish icons_genograms tree are tried ([IconAliases]),
// so that tree works as an icon directory unchanged.
//
// An icon that cannot be found is skipped and reported in
// [Document.Missing]; the rest of the drawing is unaffected.
//
// [layout.Layout]: github.com/matzehuels/genogram/pkg/render/genogram/layout.Layout
// [family.Index]: github.com/matzehuels/genogram/pkg/family.Index
package sink
