package layout

// Point is the top-left corner of a person's icon box.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is the square a person symbol occupies. SVG coordinates grow
// downwards, so Top < Bottom.
type Box struct {
	ID          string
	Left, Right float64
	Top, Bottom float64
}

// BoxAt returns the square of side size anchored at p.
func BoxAt(id string, p Point, size float64) Box {
	return Box{ID: id, Left: p.X, Right: p.X + size, Top: p.Y, Bottom: p.Y + size}
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Overlaps reports whether b and o share any interior area.
func (b Box) Overlaps(o Box) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Top < o.Bottom && o.Top < b.Bottom
}
