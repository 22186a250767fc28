package generation

import (
	"reflect"
	"testing"

	"github.com/matzehuels/genogram/pkg/family"
)

func assign(t *testing.T, f family.Family) Result {
	t.Helper()
	fam, _ := family.Normalize(f)
	return Assign(family.BuildIndex(fam), fam.Persons)
}

func person(id string, cs ...family.Condition) family.Person {
	return family.Person{ID: id, Name: id, Conditions: cs}
}

func parentChild(parent, child string) family.Relationship {
	return family.Relationship{Kind: family.KindParentChild, Participant1: parent, Participant2: child}
}

func couple(a, b string) family.Relationship {
	return family.Relationship{Kind: family.KindCouple, Participant1: a, Participant2: b}
}

func levelIDs(r Result) [][]string {
	out := make([][]string, len(r.Levels))
	for i := range r.Levels {
		out[i] = r.IDs(i)
	}
	return out
}

func TestAssign_Empty(t *testing.T) {
	r := Assign(family.BuildIndex(family.Family{}), nil)
	if len(r.Levels) != 0 {
		t.Errorf("Levels = %v, want none", r.Levels)
	}
}

func TestAssign_CoupleOnly(t *testing.T) {
	r := assign(t, family.Family{
		Persons:       []family.Person{person("a"), person("b")},
		Relationships: []family.Relationship{couple("a", "b")},
	})
	want := [][]Group{{{"a", "b"}}}
	if !reflect.DeepEqual(r.Levels, want) {
		t.Errorf("Levels = %v, want %v", r.Levels, want)
	}
	if r.Strategy != StrategyRoots {
		t.Errorf("Strategy = %q, want roots", r.Strategy)
	}
}

func TestAssign_ThreeGenerationChain(t *testing.T) {
	r := assign(t, family.Family{
		Persons: []family.Person{person("child"), person("grandparent"), person("parent")},
		Relationships: []family.Relationship{
			parentChild("grandparent", "parent"),
			parentChild("parent", "child"),
		},
	})
	want := [][]string{{"grandparent"}, {"parent"}, {"child"}}
	if got := levelIDs(r); !reflect.DeepEqual(got, want) {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

func TestAssign_Focal(t *testing.T) {
	r := assign(t, family.Family{
		Persons: []family.Person{
			person("gp"), person("dad"), person("mom"),
			person("ip", family.ConditionIdentifiedPatient),
			person("partner"), person("kid"), person("aunt"),
		},
		Relationships: []family.Relationship{
			parentChild("gp", "dad"),
			parentChild("gp", "aunt"),
			parentChild("dad", "ip"),
			parentChild("mom", "ip"),
			couple("ip", "partner"),
			parentChild("ip", "kid"),
		},
	})

	if r.Strategy != StrategyFocal || r.Focal != "ip" {
		t.Fatalf("Strategy = %q, Focal = %q", r.Strategy, r.Focal)
	}
	want := [][]Group{
		{{"gp"}, {"dad", "mom"}},
		{{"ip", "partner"}},
		{{"kid"}},
		{{"aunt"}},
	}
	if !reflect.DeepEqual(r.Levels, want) {
		t.Errorf("Levels = %v, want %v", r.Levels, want)
	}
}

func TestAssign_ChildlessFocalRendersLast(t *testing.T) {
	r := assign(t, family.Family{
		Persons: []family.Person{
			person("mom"), person("ip", family.ConditionIdentifiedPatient), person("sib"),
		},
		Relationships: []family.Relationship{
			parentChild("mom", "ip"),
			parentChild("mom", "sib"),
		},
	})
	want := [][]string{{"mom"}, {"sib"}, {"ip"}}
	if got := levelIDs(r); !reflect.DeepEqual(got, want) {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

func TestAssign_KeywordBackfill(t *testing.T) {
	r := assign(t, family.Family{
		Persons: []family.Person{
			{ID: "rosa", Name: "Abuela Rosa", Gender: family.GenderFemale},
			person("mom"),
			person("kid", family.ConditionIdentifiedPatient),
		},
		Relationships: []family.Relationship{parentChild("mom", "kid")},
	})
	want := [][]string{{"rosa", "mom"}, {"kid"}}
	if got := levelIDs(r); !reflect.DeepEqual(got, want) {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

func TestAssign_ParentCycleTerminates(t *testing.T) {
	r := assign(t, family.Family{
		Persons: []family.Person{person("a"), person("b")},
		Relationships: []family.Relationship{
			parentChild("a", "b"),
			parentChild("b", "a"),
		},
	})
	assertOnePlacement(t, r, "a", "b")
}

func TestAssign_EveryPersonOnce(t *testing.T) {
	tests := []struct {
		name string
		fam  family.Family
	}{
		{"disconnected", family.Family{
			Persons:       []family.Person{person("a"), person("b"), person("c"), person("d")},
			Relationships: []family.Relationship{parentChild("a", "b")},
		}},
		{"three cycle", family.Family{
			Persons: []family.Person{person("a"), person("b"), person("c")},
			Relationships: []family.Relationship{
				parentChild("a", "b"), parentChild("b", "c"), parentChild("c", "a"),
			},
		}},
		{"focal in cycle", family.Family{
			Persons: []family.Person{person("a", family.ConditionIdentifiedPatient), person("b"), person("c")},
			Relationships: []family.Relationship{
				parentChild("a", "b"), parentChild("b", "a"), couple("a", "c"),
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := assign(t, tt.fam)
			ids := make([]string, len(tt.fam.Persons))
			for i, p := range tt.fam.Persons {
				ids[i] = p.ID
			}
			assertOnePlacement(t, r, ids...)
		})
	}
}

func TestGroupLevels_PartnerMustShareGeneration(t *testing.T) {
	fam := family.Family{
		Persons: []family.Person{person("a"), person("b"), person("c")},
		Relationships: []family.Relationship{
			couple("a", "c"),
			parentChild("a", "b"),
		},
	}
	idx := family.BuildIndex(fam)
	got := groupLevels(idx, [][]string{{"a", "b"}, {"c"}})
	want := [][]Group{{{"a"}, {"b"}}, {{"c"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groupLevels() = %v, want %v", got, want)
	}
}

func assertOnePlacement(t *testing.T, r Result, ids ...string) {
	t.Helper()
	seen := make(map[string]int)
	for i := range r.Levels {
		for _, id := range r.IDs(i) {
			seen[id]++
		}
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Errorf("%s placed %d times, want 1", id, seen[id])
		}
	}
	if r.Count() != len(ids) {
		t.Errorf("Count() = %d, want %d", r.Count(), len(ids))
	}
	for i, lvl := range r.Levels {
		if len(lvl) == 0 {
			t.Errorf("level %d is empty", i)
		}
	}
}
