package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
	"github.com/matzehuels/genogram/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds age, conditions and couple status to the labels.
	// When false, only the name is shown.
	Detailed bool
}

// ToDOT converts a normalized family to Graphviz DOT source.
//
// Every generation of gen becomes one rank=same subgraph so Graphviz keeps
// the rows of the genogram. Couples and twins are undirected edges that do
// not constrain ranking; parent-child links are arrows. Placeholder persons
// are drawn with dashed outlines.
func ToDOT(f family.Family, idx *family.Index, gen generation.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=16, fontname=\"Arial\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, p := range f.Persons {
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(personAttrs(p, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for i, lvl := range gen.Levels {
		ids := make([]string, 0, len(lvl)*2)
		for _, g := range lvl {
			for _, id := range g {
				ids = append(ids, strconv.Quote(id))
			}
		}
		fmt.Fprintf(&buf, "  { rank=same; /* generation %d */ %s; }\n", i, strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	for _, c := range idx.Couples() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.A, c.B, strings.Join(coupleAttrs(c, opts.Detailed), ", "))
	}
	for _, e := range idx.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Parent, e.Child)
	}
	for _, t := range idx.Twins() {
		fmt.Fprintf(&buf, "  %q -> %q [dir=none, constraint=false, color=\"#1f77b4\", label=\"twins\"];\n", t[0], t[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func personAttrs(p family.Person, detailed bool) []string {
	shape := "box"
	if p.IsFemale() {
		shape = "ellipse"
	}
	attrs := []string{fmt.Sprintf("label=%q", personLabel(p, detailed)), "shape=" + shape}

	var style []string
	if p.Placeholder {
		style = append(style, "dashed")
	}
	if p.IsIdentifiedPatient() {
		attrs = append(attrs, "peripheries=2")
	}
	if p.IsDeceased() {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	if len(style) > 0 {
		attrs = append(attrs, fmt.Sprintf("style=%q", "filled,"+strings.Join(style, ",")))
	}
	return attrs
}

func personLabel(p family.Person, detailed bool) string {
	if !detailed {
		return p.Name
	}
	parts := []string{p.Name}
	if p.Age != nil {
		parts = append(parts, fmt.Sprintf("age: %d", *p.Age))
	}
	if p.IsDeceased() {
		parts = append(parts, "deceased")
	}
	for _, c := range p.Conditions {
		if c != family.ConditionIdentifiedPatient && c != family.ConditionDeceasedMarker {
			parts = append(parts, string(c))
		}
	}
	return strings.Join(parts, "\n")
}

func coupleAttrs(c family.Couple, detailed bool) []string {
	attrs := []string{"dir=none", "constraint=false", "penwidth=2"}
	if c.Implicit || c.Status == family.StatusDating {
		attrs = append(attrs, "style=dashed")
	}
	if detailed {
		label := string(c.Status)
		if c.Year != "" {
			label += " " + c.Year
		}
		if label = strings.TrimSpace(label); label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", label))
		}
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based root element with one
// whose viewBox starts at the origin and whose size is in user units, so the
// diagram scales like the genogram view.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg id="genogram-svg" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}

// RenderPDF renders DOT source as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
