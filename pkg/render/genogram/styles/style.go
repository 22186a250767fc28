// Package styles defines the drawing primitives of a genogram and the
// visual themes that turn them into SVG.
//
// The sink package decides what to draw and where: couple bars, descent
// lines, labels, person symbols. A [Style] decides how each primitive looks.
// Swapping the style never moves anything.
package styles

import (
	"bytes"
	"slices"
)

// Style defines the visual appearance of a genogram.
type Style interface {
	// Name returns the identifier used to select the style.
	Name() string
	// Background returns the page fill color.
	Background() string
	// RenderDefs writes document-level definitions (CSS, markers).
	RenderDefs(buf *bytes.Buffer)
	// RenderLine writes one straight connector.
	RenderLine(buf *bytes.Buffer, l Line)
	// RenderPath writes one polyline connector.
	RenderPath(buf *bytes.Buffer, p Path)
	// RenderLabel writes free-standing text such as a marriage year.
	RenderLabel(buf *bytes.Buffer, l Label)
	// RenderIcon writes a decorative image.
	RenderIcon(buf *bytes.Buffer, i Icon)
	// RenderPerson writes the complete symbol group of one person.
	RenderPerson(buf *bytes.Buffer, p Person)
}

// Line is a straight connector segment.
type Line struct {
	Class          string
	X1, Y1, X2, Y2 float64
	Dashed         bool
}

// Path is an SVG path connector, used for elbow descent lines.
type Path struct {
	Class  string
	D      string
	Dashed bool
}

// Label is a text element positioned by its anchor point.
type Label struct {
	Class string
	X, Y  float64
	Text  string
}

// Icon is an embedded image. Href is usually a data URI.
type Icon struct {
	Class   string
	X, Y    float64
	Size    float64
	Href    string
	Comment string
}

// Person carries everything a style needs to draw one person symbol.
// Coordinates are the top-left corner of the icon box.
type Person struct {
	ID      string
	X, Y    float64
	Size    float64
	Female  bool
	Dead    bool
	Patient bool
	Ghost   bool

	NameLines []string
	Age       string
	Caption   string

	// Badge is drawn in the upper right corner; nil when there is none.
	Badge *Icon
}

var registry = map[string]func() Style{
	"classic":    func() Style { return NewClassic() },
	"monochrome": func() Style { return NewMonochrome() },
}

// ByName returns a fresh style for name.
func ByName(name string) (Style, bool) {
	mk, ok := registry[name]
	if !ok {
		return nil, false
	}
	return mk(), true
}

// Names returns the registered style names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
