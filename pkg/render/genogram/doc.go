// Package genogram groups the clinical genogram view: [layout] positions
// persons generation by generation, [styles] draws the symbols, and [sink]
// assembles SVG, HTML, JSON, PDF and PNG documents.
//
// [layout]: github.com/matzehuels/genogram/pkg/render/genogram/layout
// [styles]: github.com/matzehuels/genogram/pkg/render/genogram/styles
// [sink]: github.com/matzehuels/genogram/pkg/render/genogram/sink
package genogram
