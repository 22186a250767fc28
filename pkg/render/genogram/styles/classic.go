package styles

import (
	"bytes"
	"fmt"
)

const (
	symbolStroke  = 2.5
	lineStroke    = 2.0
	patientOffset = 5.0
	dashPattern   = "6 4"
	nameLineStep  = 15.0
	nameBaseline  = -10.0
	ageFontSize   = 18
	nameFontSize  = 13
	labelFontSize = 12
	smallFontSize = 11
	captionOffset = 18.0
	badgeRatio    = 0.45
)

type palette struct {
	ink        string
	background string
	female     string
	male       string
	caption    string
	ghost      string
}

// Classic is the default genogram style: white symbols with black outlines
// on a white page and grey captions.
type Classic struct {
	name string
	p    palette
}

// NewClassic returns the default style.
func NewClassic() Classic {
	return Classic{name: "classic", p: palette{
		ink:        "#000000",
		background: "#ffffff",
		female:     "#fff5f8",
		male:       "#f3f8ff",
		caption:    "#666666",
		ghost:      "#999999",
	}}
}

// NewMonochrome returns a pure black-and-white variant of [Classic] suited
// for printing.
func NewMonochrome() Classic {
	return Classic{name: "monochrome", p: palette{
		ink:        "#000000",
		background: "#ffffff",
		female:     "#ffffff",
		male:       "#ffffff",
		caption:    "#000000",
		ghost:      "#000000",
	}}
}

func (c Classic) Name() string       { return c.name }
func (c Classic) Background() string { return c.p.background }

func (c Classic) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <style>
      text { font-family: Arial, Helvetica, sans-serif; fill: %s; }
      .person-name { font-size: %dpx; font-weight: bold; }
      .person-age { font-size: %dpx; font-weight: bold; }
      .person-caption { font-size: %dpx; fill: %s; }
      .marriage-year { font-size: %dpx; }
    </style>
  </defs>
`, c.p.ink, nameFontSize, ageFontSize, smallFontSize, c.p.caption, labelFontSize)
}

func (c Classic) RenderLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, `  <line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
		l.Class, Num(l.X1), Num(l.Y1), Num(l.X2), Num(l.Y2), c.p.ink, Num(lineStroke), dash(l.Dashed))
}

func (c Classic) RenderPath(buf *bytes.Buffer, p Path) {
	fmt.Fprintf(buf, `  <path class="%s" d="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`+"\n",
		p.Class, p.D, c.p.ink, Num(lineStroke), dash(p.Dashed))
}

func (c Classic) RenderLabel(buf *bytes.Buffer, l Label) {
	fmt.Fprintf(buf, `  <text class="%s" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
		l.Class, Num(l.X), Num(l.Y), EscapeXML(l.Text))
}

func (c Classic) RenderIcon(buf *bytes.Buffer, i Icon) {
	if i.Comment != "" {
		fmt.Fprintf(buf, "  <!-- %s -->\n", EscapeXML(i.Comment))
	}
	fmt.Fprintf(buf, `  <image class="%s" x="%s" y="%s" width="%s" height="%s" href="%s"/>`+"\n",
		i.Class, Num(i.X), Num(i.Y), Num(i.Size), Num(i.Size), i.Href)
}

// RenderPerson draws shape, death cross, patient border, badge and text, in
// that order, inside one translated group.
func (c Classic) RenderPerson(buf *bytes.Buffer, p Person) {
	s := p.Size
	half := s / 2
	fmt.Fprintf(buf, `  <g class="person" id="person-%s" transform="translate(%s,%s)">`+"\n",
		EscapeXML(p.ID), Num(p.X), Num(p.Y))

	stroke, fill := c.p.ink, c.p.male
	if p.Female {
		fill = c.p.female
	}
	if p.Ghost {
		stroke = c.p.ghost
	}
	if p.Female {
		fmt.Fprintf(buf, `    <circle class="symbol" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
			Num(half), Num(half), Num(half), fill, stroke, Num(symbolStroke), dash(p.Ghost))
	} else {
		fmt.Fprintf(buf, `    <rect class="symbol" x="0" y="0" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
			Num(s), Num(s), fill, stroke, Num(symbolStroke), dash(p.Ghost))
	}

	if p.Dead {
		lo, hi := s/4, s*3/4
		fmt.Fprintf(buf, `    <line class="deceased" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			Num(lo), Num(lo), Num(hi), Num(hi), c.p.ink, Num(symbolStroke))
		fmt.Fprintf(buf, `    <line class="deceased" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			Num(hi), Num(lo), Num(lo), Num(hi), c.p.ink, Num(symbolStroke))
	}

	if p.Patient {
		if p.Female {
			fmt.Fprintf(buf, `    <circle class="patient" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
				Num(half), Num(half), Num(half+patientOffset), c.p.ink, Num(symbolStroke))
		} else {
			fmt.Fprintf(buf, `    <rect class="patient" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
				Num(-patientOffset), Num(-patientOffset), Num(s+2*patientOffset), Num(s+2*patientOffset), c.p.ink, Num(symbolStroke))
		}
	}

	if p.Badge != nil {
		b := *p.Badge
		size := s * badgeRatio
		fmt.Fprintf(buf, `    <image class="badge" x="%s" y="%s" width="%s" height="%s" href="%s"/>`+"\n",
			Num(s-size/2), Num(-size/2), Num(size), Num(size), b.Href)
	}

	for i, line := range p.NameLines {
		y := nameBaseline - float64(len(p.NameLines)-1-i)*nameLineStep
		fmt.Fprintf(buf, `    <text class="person-name" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
			Num(half), Num(y), EscapeXML(line))
	}
	if p.Age != "" {
		fmt.Fprintf(buf, `    <text class="person-age" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
			Num(half), Num(half+7), EscapeXML(p.Age))
	}
	if p.Caption != "" {
		fmt.Fprintf(buf, `    <text class="person-caption" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
			Num(half), Num(s+captionOffset), EscapeXML(p.Caption))
	}
	buf.WriteString("  </g>\n")
}

func dash(on bool) string {
	if !on {
		return ""
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, dashPattern)
}
