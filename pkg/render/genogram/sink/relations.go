package sink

import (
	"fmt"
	"math"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
	"github.com/matzehuels/genogram/pkg/render/genogram/styles"
)

// Primitive classes. Tests and stylesheets select on them.
const (
	ClassCoupleDrop    = "couple-drop"
	ClassCoupleBar     = "couple-bar"
	ClassDescent       = "descent"
	ClassDistribution  = "distribution"
	ClassChildDrop     = "child-drop"
	ClassSingleDescent = "single-descent"
	ClassTwinBar       = "twin-bar"
	ClassTwinLink      = "twin-link"
	ClassStatusMark    = "status-mark"
	ClassMarriageYear  = "marriage-year"
	ClassRelationIcon  = "relation-icon"
)

const (
	relationIconRatio = 0.4
	yearLabelLift     = 8.0
	slashHalfHeight   = 8.0
	slashHalfWidth    = 4.0
	slashOffset       = 14.0
	slashGap          = 7.0
)

// Relations is every connector of a genogram, ready to be styled.
type Relations struct {
	Lines  []styles.Line
	Paths  []styles.Path
	Labels []styles.Label
	Icons  []styles.Icon

	// Missing lists icon paths that were wanted but unavailable.
	Missing []string
}

// Count returns how many primitives carry class.
func (r Relations) Count(class string) int {
	n := 0
	for _, l := range r.Lines {
		if l.Class == class {
			n++
		}
	}
	for _, p := range r.Paths {
		if p.Class == class {
			n++
		}
	}
	for _, l := range r.Labels {
		if l.Class == class {
			n++
		}
	}
	return n
}

// LinesOf returns the lines carrying class, in drawing order.
func (r Relations) LinesOf(class string) []styles.Line {
	var out []styles.Line
	for _, l := range r.Lines {
		if l.Class == class {
			out = append(out, l)
		}
	}
	return out
}

type relationBuilder struct {
	idx   *family.Index
	pos   map[string]layout.Point
	m     layout.Metrics
	icons IconSource
	out   Relations
}

// BuildRelations draws the couple units, descent lines and twin connectors
// of a positioned family.
//
// A child hangs from a couple's bar only when both partners are recorded
// parents and the child sits below the bar; each child joins at most one
// couple unit. Every other parent-child link is drawn as a single descent
// line from the parent. Persons without a position are skipped.
func BuildRelations(idx *family.Index, l layout.Layout, icons IconSource) Relations {
	b := &relationBuilder{idx: idx, pos: l.Positions, m: l.Metrics, icons: withAliases(icons)}

	claimed := make(map[string]bool)
	drawn := make(map[family.Edge]bool)
	for _, c := range idx.Couples() {
		pa, okA := b.pos[c.A]
		pb, okB := b.pos[c.B]
		if !okA || !okB {
			continue
		}
		var kids []string
		for _, child := range idx.Children(c.A) {
			if claimed[child] || !idx.IsParent(c.B, child) {
				continue
			}
			if _, ok := b.pos[child]; !ok {
				continue
			}
			claimed[child] = true
			kids = append(kids, child)
		}
		for _, child := range b.couple(c, pa, pb, kids) {
			drawn[family.Edge{Parent: c.A, Child: child}] = true
			drawn[family.Edge{Parent: c.B, Child: child}] = true
		}
	}

	for _, e := range idx.Edges() {
		if drawn[e] {
			continue
		}
		pp, okP := b.pos[e.Parent]
		pc, okC := b.pos[e.Child]
		if okP && okC {
			b.single(pp, pc)
		}
	}

	for _, t := range idx.Twins() {
		pa, okA := b.pos[t[0]]
		pb, okB := b.pos[t[1]]
		if okA && okB {
			b.twins(pa, pb)
		}
	}
	return b.out
}

// couple draws one couple unit and returns the children hung from its bar.
func (b *relationBuilder) couple(c family.Couple, pa, pb layout.Point, kids []string) []string {
	m := b.m
	half := m.IconSize / 2
	x1, x2 := pa.X+half, pb.X+half
	unionY := max(pa.Y, pb.Y) + m.IconSize + m.UnionOffset
	dashed := c.Implicit || c.Status == family.StatusDating

	b.line(ClassCoupleDrop, x1, pa.Y+m.IconSize, x1, unionY, dashed)
	b.line(ClassCoupleDrop, x2, pb.Y+m.IconSize, x2, unionY, dashed)
	b.line(ClassCoupleBar, x1, unionY, x2, unionY, dashed)

	mid := (x1 + x2) / 2
	b.statusMarks(c.Status, mid, unionY)
	if c.Year != "" {
		b.out.Labels = append(b.out.Labels, styles.Label{
			Class: ClassMarriageYear, X: mid, Y: unionY - yearLabelLift, Text: "m. " + c.Year,
		})
	}
	size := m.IconSize * relationIconRatio
	if path := QualityIconPath(c.Quality); path != "" {
		b.icon(path, x1+(x2-x1)/4-size/2, unionY-size/2, size)
	}
	if path := StatusIconPath(c.Status); path != "" && !c.Implicit {
		b.icon(path, x1+(x2-x1)*3/4-size/2, unionY-size/2, size)
	}

	var below []string
	minY := math.Inf(1)
	for _, k := range kids {
		if p := b.pos[k]; p.Y > unionY {
			below = append(below, k)
			minY = min(minY, p.Y)
		}
	}
	if len(below) == 0 {
		return nil
	}

	distY := minY - m.DistributionOffset
	if distY <= unionY {
		distY = (unionY + minY) / 2
	}
	b.line(ClassDescent, mid, unionY, mid, distY, false)

	left, right := mid, mid
	for _, k := range below {
		cx := b.pos[k].X + half
		left, right = min(left, cx), max(right, cx)
	}
	if len(below) >= 2 || left != right {
		b.line(ClassDistribution, left, distY, right, distY, false)
	}
	for _, k := range below {
		p := b.pos[k]
		b.line(ClassChildDrop, p.X+half, distY, p.X+half, p.Y, false)
	}
	return below
}

// single connects one parent to one child: a straight line when they are
// vertically aligned, an elbow through the midpoint height otherwise.
func (b *relationBuilder) single(pp, pc layout.Point) {
	half := b.m.IconSize / 2
	px, py := pp.X+half, pp.Y+b.m.IconSize
	cx, cy := pc.X+half, pc.Y
	if px == cx {
		b.line(ClassSingleDescent, px, py, cx, cy, false)
		return
	}
	midY := (py + cy) / 2
	b.out.Paths = append(b.out.Paths, styles.Path{
		Class: ClassSingleDescent,
		D: fmt.Sprintf("M %s %s V %s H %s V %s",
			styles.Num(px), styles.Num(py), styles.Num(midY), styles.Num(cx), styles.Num(cy)),
	})
}

func (b *relationBuilder) twins(pa, pb layout.Point) {
	half := b.m.IconSize / 2
	xa, xb := pa.X+half, pb.X+half
	y := min(pa.Y, pb.Y) - b.m.DistributionOffset/2
	b.line(ClassTwinLink, xa, pa.Y, xa, y, false)
	b.line(ClassTwinLink, xb, pb.Y, xb, y, false)
	b.line(ClassTwinBar, xa, y, xb, y, false)
	size := b.m.IconSize * relationIconRatio
	b.icon(TwinsIconPath, (xa+xb)/2-size/2, y-size, size)
}

func (b *relationBuilder) statusMarks(s family.MaritalStatus, mid, y float64) {
	n := 0
	switch s {
	case family.StatusSeparated:
		n = 1
	case family.StatusDivorced:
		n = 2
	}
	for i := range n {
		x := mid - slashOffset + float64(i)*slashGap
		b.line(ClassStatusMark, x-slashHalfWidth, y+slashHalfHeight, x+slashHalfWidth, y-slashHalfHeight, false)
	}
}

func (b *relationBuilder) line(class string, x1, y1, x2, y2 float64, dashed bool) {
	b.out.Lines = append(b.out.Lines, styles.Line{Class: class, X1: x1, Y1: y1, X2: x2, Y2: y2, Dashed: dashed})
}

func (b *relationBuilder) icon(path string, x, y, size float64) {
	svg, ok := b.icons.Icon(path)
	if !ok {
		b.out.Missing = append(b.out.Missing, path)
		return
	}
	b.out.Icons = append(b.out.Icons, styles.Icon{
		Class: ClassRelationIcon, X: x, Y: y, Size: size, Href: DataURI(svg), Comment: path,
	})
}
