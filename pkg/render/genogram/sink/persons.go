package sink

import (
	"strconv"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
	"github.com/matzehuels/genogram/pkg/render/genogram/styles"
)

// BuildPerson derives the symbol of p at pos: shape from gender, marks from
// life status and conditions, and the wrapped name, age and caption labels.
func BuildPerson(p family.Person, pos layout.Point, size float64) styles.Person {
	sp := styles.Person{
		ID:        p.ID,
		X:         pos.X,
		Y:         pos.Y,
		Size:      size,
		Female:    p.IsFemale(),
		Dead:      p.IsDeceased(),
		Patient:   p.IsIdentifiedPatient(),
		Ghost:     p.Placeholder,
		NameLines: styles.WrapName(p.Name),
		Caption:   styles.Caption(p.Occupation, p.Notes),
	}
	if p.Age != nil {
		sp.Age = strconv.Itoa(*p.Age)
	}
	return sp
}

// buildPersons returns one symbol per positioned person in input order,
// with badges resolved through icons.
func buildPersons(f family.Family, l layout.Layout, icons IconSource) (persons []styles.Person, missing []string) {
	icons = withAliases(icons)
	persons = make([]styles.Person, 0, len(f.Persons))
	for _, p := range f.Persons {
		pos, ok := l.Positions[p.ID]
		if !ok {
			continue
		}
		sp := BuildPerson(p, pos, l.Metrics.IconSize)
		if path := BadgePath(p); path != "" {
			if svg, ok := icons.Icon(path); ok {
				sp.Badge = &styles.Icon{Class: "badge", Href: DataURI(svg), Comment: path}
			} else {
				missing = append(missing, path)
			}
		}
		persons = append(persons, sp)
	}
	return persons, missing
}
