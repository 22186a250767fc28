package sink

import (
	"encoding/json"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	gen   *generation.Result
	style string
}

// WithJSONGeneration records how generations were assigned (strategy and
// focal person).
func WithJSONGeneration(r generation.Result) JSONOption {
	return func(j *jsonRenderer) { j.gen = &r }
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(j *jsonRenderer) { j.style = s } }

type jsonOutput struct {
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Layout      string         `json:"layout"`
	Strategy    string         `json:"generation_strategy,omitempty"`
	Focal       string         `json:"focal,omitempty"`
	Style       string         `json:"style,omitempty"`
	Metrics     layout.Metrics `json:"metrics"`
	Generations [][][]string   `json:"generations"`
	Persons     []jsonPerson   `json:"persons"`
	Couples     []jsonCouple   `json:"couples,omitempty"`
	Edges       []jsonEdge     `json:"edges,omitempty"`
}

type jsonPerson struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Gender      string  `json:"gender"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Generation  int     `json:"generation"`
	Placeholder bool    `json:"placeholder,omitempty"`
}

type jsonCouple struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Status   string `json:"status,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Year     string `json:"year,omitempty"`
	Implicit bool   `json:"implicit,omitempty"`
}

type jsonEdge struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

// RenderJSON exports the computed layout: every person's position and
// generation, the generation groups, and the couples and edges drawn.
func RenderJSON(f family.Family, idx *family.Index, l layout.Layout, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	w, h := l.Extent()
	out := jsonOutput{
		Width:       w,
		Height:      h,
		Layout:      string(l.Strategy),
		Style:       r.style,
		Metrics:     l.Metrics,
		Generations: make([][][]string, len(l.Levels)),
		Persons:     make([]jsonPerson, 0, len(f.Persons)),
	}
	if r.gen != nil {
		out.Strategy = string(r.gen.Strategy)
		out.Focal = r.gen.Focal
	}

	level := make(map[string]int)
	for i, lvl := range l.Levels {
		groups := make([][]string, len(lvl))
		for j, g := range lvl {
			groups[j] = []string(g)
			for _, id := range g {
				level[id] = i
			}
		}
		out.Generations[i] = groups
	}

	for _, p := range f.Persons {
		pos, ok := l.Positions[p.ID]
		if !ok {
			continue
		}
		out.Persons = append(out.Persons, jsonPerson{
			ID:          p.ID,
			Name:        p.Name,
			Gender:      string(p.Gender),
			X:           pos.X,
			Y:           pos.Y,
			Generation:  level[p.ID],
			Placeholder: p.Placeholder,
		})
	}
	for _, c := range idx.Couples() {
		out.Couples = append(out.Couples, jsonCouple{
			A: c.A, B: c.B, Status: string(c.Status), Quality: string(c.Quality), Year: c.Year, Implicit: c.Implicit,
		})
	}
	for _, e := range idx.Edges() {
		out.Edges = append(out.Edges, jsonEdge{Parent: e.Parent, Child: e.Child})
	}

	return json.MarshalIndent(out, "", "  ")
}
