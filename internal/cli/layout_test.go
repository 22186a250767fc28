package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
)

func TestLayoutCommand(t *testing.T) {
	dir := isolate(t)
	input := writeInput(t, dir, "fam.json", householdJSON)

	out, err := execute(t, "", "layout", input)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, want := range []string{"Gen", "Jorge + Lucía", "Tomás", "roots", "compact", "genogram render " + input} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutCommand_Output(t *testing.T) {
	dir := isolate(t)
	input := writeInput(t, dir, "fam.json", householdJSON)
	output := filepath.Join(dir, "fam.layout.json")

	out, err := execute(t, "", "layout", input, "--focal", "kid", "-o", output)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(out, "identified patient Tomás (kid)") {
		t.Errorf("output should name the identified patient:\n%s", out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("layout JSON not written: %v", err)
	}
}

func TestGenerationTable(t *testing.T) {
	f := family.Family{Persons: []family.Person{
		{ID: "a", Name: "Abuelo"},
		{ID: "b", Name: "Abuela"},
		{ID: "c", Name: ""},
	}}
	gen := generation.Result{
		Strategy: generation.StrategyRoots,
		Levels: [][]generation.Group{
			{{"a", "b"}},
			{{"c"}},
		},
	}

	table := generationTable(f, gen)
	for _, want := range []string{"Abuelo + Abuela", "c", "Persons"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
	if got := strings.Count(table, "\n"); got < 4 {
		t.Errorf("table has %d lines, want header, separator and two rows", got+1)
	}
}

func TestAssignmentLabel(t *testing.T) {
	f := family.Family{Persons: []family.Person{{ID: "ana", Name: "Ana"}}}
	if got := assignmentLabel(f, generation.Result{Strategy: generation.StrategyRoots}); got != "roots" {
		t.Errorf("roots label = %q", got)
	}
	got := assignmentLabel(f, generation.Result{Strategy: generation.StrategyFocal, Focal: "ana"})
	if got != "focal, identified patient Ana (ana)" {
		t.Errorf("focal label = %q", got)
	}
}
