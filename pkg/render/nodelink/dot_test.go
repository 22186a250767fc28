package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
)

func fixture() (family.Family, *family.Index, generation.Result) {
	age := 40
	f := family.Family{
		Persons: []family.Person{
			{ID: "pedro", Name: "Pedro", Gender: family.GenderMale, Age: &age},
			{ID: "rosa", Name: "Rosa", Gender: family.GenderFemale, Deceased: true},
			{ID: "eva", Name: "Eva", Gender: family.GenderFemale, Conditions: []family.Condition{family.ConditionIdentifiedPatient}},
			family.Placeholder("ghost1"),
		},
		Relationships: []family.Relationship{
			{Kind: family.KindCouple, Participant1: "pedro", Participant2: "rosa", MaritalStatus: family.StatusMarried, Year: "1980"},
			{Kind: family.KindParentChild, Participant1: "pedro", Participant2: "eva"},
			{Kind: family.KindParentChild, Participant1: "rosa", Participant2: "eva"},
			{Kind: family.KindTwins, Participant1: "eva", Participant2: "ghost1"},
		},
	}
	idx := family.BuildIndex(f)
	return f, idx, generation.Assign(idx, f.Persons)
}

func TestToDOT(t *testing.T) {
	f, idx, gen := fixture()
	dot := ToDOT(f, idx, gen, Options{})

	for _, want := range []string{
		"digraph G",
		`"pedro" [label="Pedro", shape=box]`,
		`"rosa" [label="Rosa", shape=ellipse, fillcolor=lightgrey]`,
		`"eva" [label="Eva", shape=ellipse, peripheries=2]`,
		`style="filled,dashed"`,
		`"pedro" -> "eva";`,
		`"pedro" -> "rosa" [dir=none, constraint=false, penwidth=2]`,
		`label="twins"`,
		"rank=same",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "rank=same"); got != len(gen.Levels) {
		t.Errorf("rank groups = %d, want %d", got, len(gen.Levels))
	}
}

func TestToDOT_Detailed(t *testing.T) {
	f, idx, gen := fixture()
	dot := ToDOT(f, idx, gen, Options{Detailed: true})

	for _, want := range []string{
		`Pedro\nage: 40`,
		`Rosa\ndeceased`,
		`label="married 1980"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q", want)
		}
	}
}

func TestToDOT_ImplicitCouple(t *testing.T) {
	f := family.Family{
		Persons: []family.Person{{ID: "a", Name: "A"}, {ID: "b", Name: "B", Gender: family.GenderFemale}, {ID: "c", Name: "C"}},
		Relationships: []family.Relationship{
			{Kind: family.KindParentChild, Participant1: "a", Participant2: "c"},
			{Kind: family.KindParentChild, Participant1: "b", Participant2: "c"},
		},
	}
	idx := family.BuildIndex(f)
	dot := ToDOT(f, idx, generation.Assign(idx, f.Persons), Options{})
	if !strings.Contains(dot, `"a" -> "b" [dir=none, constraint=false, penwidth=2, style=dashed]`) {
		t.Errorf("implicit couple not dashed:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "graphviz root",
			in:   `<?xml version="1.0"?><svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<?xml version="1.0"?><svg id="genogram-svg" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}
