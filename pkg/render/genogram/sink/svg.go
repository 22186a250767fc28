package sink

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
	"github.com/matzehuels/genogram/pkg/render/genogram/styles"
)

// SVGOption configures SVG rendering via [RenderSVG] and [Assemble].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
	icons IconSource
}

// WithStyle selects the visual style. The default is [styles.NewClassic].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithIcons sets the source of badge and relationship icons. Without it no
// icons are drawn.
func WithIcons(src IconSource) SVGOption { return func(r *svgRenderer) { r.icons = src } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.NewClassic(), icons: noIcons{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.icons == nil {
		r.icons = noIcons{}
	}
	return r
}

// Document is an assembled genogram together with what went into it.
type Document struct {
	SVG       []byte
	Width     float64
	Height    float64
	Relations Relations
	Persons   []styles.Person

	// Missing lists icon paths that were wanted but not available; the
	// document was rendered without them.
	Missing []string
}

// RenderSVG renders a positioned family as a standalone SVG document.
func RenderSVG(f family.Family, idx *family.Index, l layout.Layout, opts ...SVGOption) []byte {
	return Assemble(f, idx, l, opts...).SVG
}

// Assemble builds every primitive and concatenates them into one
// <svg id="genogram-svg"> element: background, connectors, decorations, and
// finally the person symbols so they are drawn on top.
func Assemble(f family.Family, idx *family.Index, l layout.Layout, opts ...SVGOption) Document {
	r := newSVGRenderer(opts...)

	rel := BuildRelations(idx, l, r.icons)
	persons, missing := buildPersons(f, l, r.icons)
	w, h := l.Extent()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg id="genogram-svg" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		styles.Num(w), styles.Num(h), styles.Num(w), styles.Num(h))
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		styles.Num(w), styles.Num(h), r.style.Background())

	for _, ln := range rel.Lines {
		r.style.RenderLine(&buf, ln)
	}
	for _, p := range rel.Paths {
		r.style.RenderPath(&buf, p)
	}
	for _, lb := range rel.Labels {
		r.style.RenderLabel(&buf, lb)
	}
	for _, ic := range rel.Icons {
		r.style.RenderIcon(&buf, ic)
	}
	for _, p := range persons {
		r.style.RenderPerson(&buf, p)
	}
	buf.WriteString("</svg>\n")

	return Document{
		SVG:       buf.Bytes(),
		Width:     w,
		Height:    h,
		Relations: rel,
		Persons:   persons,
		Missing:   append(slices.Clone(rel.Missing), missing...),
	}
}
