// Package layout computes 2D positions for the generations of a genogram.
//
// # Strategies
//
// [General] places every generation on its own row, SpacingY apart, and
// centers each row against the widest one. A couple occupies CoupleSpan
// horizontally with the second partner right-aligned inside it; a single
// person occupies IconSize.
//
// [Compact] handles the common "one parent unit plus children" family. The
// parents sit CompactGap apart and the children are centered beneath their
// midpoint, closer than a full row.
//
// [Build] picks Compact when [CanCompact] holds and General otherwise. Both
// are pure functions of the ordered generations, so identical input always
// yields identical coordinates.
package layout

import (
	"github.com/matzehuels/genogram/pkg/family/generation"
)

// Strategy names a positioning algorithm.
type Strategy string

const (
	StrategyAuto    Strategy = ""
	StrategyGeneral Strategy = "general"
	StrategyCompact Strategy = "compact"
)

// Default metrics, in SVG user units.
const (
	DefaultIconSize           = 50.0
	DefaultSpacingX           = 180.0
	DefaultSpacingY           = 180.0
	DefaultCoupleSpan         = 170.0
	DefaultStartX             = 100.0
	DefaultStartY             = 100.0
	DefaultUnionOffset        = 30.0
	DefaultChildOffset        = 40.0
	DefaultDistributionOffset = 20.0
	DefaultCompactGap         = 40.0
	DefaultMargin             = 200.0
)

// Metrics holds every distance the layout and renderer use.
type Metrics struct {
	IconSize   float64 `json:"icon_size" toml:"icon_size" validate:"gt=0"`
	SpacingX   float64 `json:"spacing_x" toml:"spacing_x" validate:"gte=0"`
	SpacingY   float64 `json:"spacing_y" toml:"spacing_y" validate:"gt=0"`
	CoupleSpan float64 `json:"couple_span" toml:"couple_span" validate:"gt=0"`
	StartX     float64 `json:"start_x" toml:"start_x" validate:"gte=0"`
	StartY     float64 `json:"start_y" toml:"start_y" validate:"gte=0"`

	// UnionOffset is the distance from the bottom of the lower partner to
	// the couple bar.
	UnionOffset float64 `json:"union_offset" toml:"union_offset" validate:"gt=0"`
	// ChildOffset is the extra drop from the couple bar to the children in
	// the compact layout.
	ChildOffset float64 `json:"child_offset" toml:"child_offset" validate:"gte=0"`
	// DistributionOffset is the height of the child distribution bar above
	// the topmost child.
	DistributionOffset float64 `json:"distribution_offset" toml:"distribution_offset" validate:"gte=0"`
	// CompactGap is the gap between the two parents in the compact layout.
	CompactGap float64 `json:"compact_gap" toml:"compact_gap" validate:"gte=0"`
	// Margin is added right and below the last used coordinate.
	Margin float64 `json:"margin" toml:"margin" validate:"gte=0"`
}

// DefaultMetrics returns the standard genogram metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		IconSize:           DefaultIconSize,
		SpacingX:           DefaultSpacingX,
		SpacingY:           DefaultSpacingY,
		CoupleSpan:         DefaultCoupleSpan,
		StartX:             DefaultStartX,
		StartY:             DefaultStartY,
		UnionOffset:        DefaultUnionOffset,
		ChildOffset:        DefaultChildOffset,
		DistributionOffset: DefaultDistributionOffset,
		CompactGap:         DefaultCompactGap,
		Margin:             DefaultMargin,
	}
}

// Layout is the positioned result of [Build].
type Layout struct {
	Positions map[string]Point
	Levels    [][]generation.Group
	Metrics   Metrics
	Strategy  Strategy
}

// Box returns the icon box of id.
func (l Layout) Box(id string) (Box, bool) {
	p, ok := l.Positions[id]
	if !ok {
		return Box{}, false
	}
	return BoxAt(id, p, l.Metrics.IconSize), true
}

// Extent returns the document width and height: the largest used
// coordinate plus one icon and the margin.
func (l Layout) Extent() (width, height float64) {
	var maxX, maxY float64
	for _, p := range l.Positions {
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	pad := l.Metrics.IconSize + l.Metrics.Margin
	return maxX + pad, maxY + pad
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	metrics  Metrics
	strategy Strategy
}

// WithMetrics overrides the default metrics.
func WithMetrics(m Metrics) Option { return func(b *builder) { b.metrics = m } }

// WithStrategy forces a strategy. Forcing [StrategyCompact] on generations
// that do not satisfy [CanCompact] falls back to General.
func WithStrategy(s Strategy) Option { return func(b *builder) { b.strategy = s } }

// Build positions every person of levels.
func Build(levels [][]generation.Group, opts ...Option) Layout {
	b := builder{metrics: DefaultMetrics()}
	for _, opt := range opts {
		opt(&b)
	}

	l := Layout{Levels: levels, Metrics: b.metrics}
	useCompact := CanCompact(levels) && b.strategy != StrategyGeneral
	if useCompact {
		l.Strategy = StrategyCompact
		l.Positions = Compact(levels, b.metrics)
	} else {
		l.Strategy = StrategyGeneral
		l.Positions = General(levels, b.metrics)
	}
	return l
}

// CanCompact reports whether levels is exactly one parent unit above one
// generation of children.
func CanCompact(levels [][]generation.Group) bool {
	return len(levels) == 2 && len(levels[0]) == 1 && len(levels[1]) > 0
}

func groupWidth(g generation.Group, m Metrics) float64 {
	if g.IsCouple() {
		return m.CoupleSpan
	}
	return m.IconSize
}

// General places each generation on its own row and centers every row
// against the widest.
func General(levels [][]generation.Group, m Metrics) map[string]Point {
	pos := make(map[string]Point)

	widths := make([]float64, len(levels))
	var canvas float64
	for i, lvl := range levels {
		var w float64
		for j, g := range lvl {
			if j > 0 {
				w += m.SpacingX
			}
			w += groupWidth(g, m)
		}
		widths[i] = w
		canvas = max(canvas, w)
	}

	for i, lvl := range levels {
		y := m.StartY + float64(i)*m.SpacingY
		x := m.StartX + (canvas-widths[i])/2
		for _, g := range lvl {
			pos[g[0]] = Point{X: x, Y: y}
			if g.IsCouple() {
				pos[g[1]] = Point{X: x + m.CoupleSpan - m.IconSize, Y: y}
			}
			x += groupWidth(g, m) + m.SpacingX
		}
	}
	return pos
}

// Compact places one parent unit with its children directly beneath. It
// returns nil when [CanCompact] does not hold.
func Compact(levels [][]generation.Group, m Metrics) map[string]Point {
	if !CanCompact(levels) {
		return nil
	}
	pos := make(map[string]Point)

	parents := levels[0][0]
	x1 := m.StartX
	pos[parents[0]] = Point{X: x1, Y: m.StartY}
	center := x1 + m.IconSize/2
	if parents.IsCouple() {
		x2 := x1 + m.IconSize + m.CompactGap
		pos[parents[1]] = Point{X: x2, Y: m.StartY}
		center = (x1+x2)/2 + m.IconSize/2
	}

	var children []string
	for _, g := range levels[1] {
		children = append(children, g...)
	}
	step := m.IconSize + m.SpacingX
	total := float64(len(children))*step - m.SpacingX
	left := center - total/2
	y := m.StartY + m.IconSize + m.UnionOffset + m.ChildOffset
	for i, id := range children {
		pos[id] = Point{X: left + float64(i)*step, Y: y}
	}

	if left < m.StartX {
		shift := m.StartX - left
		for id, p := range pos {
			pos[id] = Point{X: p.X + shift, Y: p.Y}
		}
	}
	return pos
}
