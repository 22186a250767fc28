package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/genogram/pkg/errors"
)

func TestRenderCommand_SVG(t *testing.T) {
	dir := isolate(t)
	input := writeInput(t, dir, "fam.json", householdJSON)

	out, err := execute(t, "", "render", input, "-f", "svg", "-o", filepath.Join(dir, "out", "garcia"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := filepath.Join(dir, "out", "garcia.svg")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), `<svg id="genogram-svg"`) {
		t.Errorf("output is not a genogram SVG: %.60s", data)
	}
	for _, s := range []string{"Rendered genogram", want, "4 persons", "2 generations", "compact"} {
		if !strings.Contains(out, s) {
			t.Errorf("stdout missing %q:\n%s", s, out)
		}
	}
	if !strings.Contains(out, "input was repaired") {
		t.Errorf("stdout should report the healed ghost1 reference:\n%s", out)
	}
}

func TestRenderCommand_DefaultOutput(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "fam.html"},
		{"html", "fam.html"},
		{"json", "fam.layout.json"},
		{"dot", "fam.dot"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			dir := isolate(t)
			input := writeInput(t, dir, "fam.json", householdJSON)

			args := []string{"render", input}
			if tt.format != "" {
				args = append(args, "--format", tt.format)
			}
			if _, err := execute(t, "", args...); err != nil {
				t.Fatalf("render: %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, tt.want)); err != nil {
				t.Errorf("expected %s: %v", tt.want, err)
			}
		})
	}
}

func TestRenderCommand_JSONFocal(t *testing.T) {
	dir := isolate(t)
	input := writeInput(t, dir, "fam.json", householdJSON)
	output := filepath.Join(dir, "layout.json")

	if _, err := execute(t, "", "render", input, "-f", "json", "-o", output, "--focal", "kid"); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Strategy string `json:"generation_strategy"`
		Focal    string `json:"focal"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("layout JSON: %v", err)
	}
	if doc.Strategy != "focal" || doc.Focal != "kid" {
		t.Errorf("generation = %s/%s, want focal/kid", doc.Strategy, doc.Focal)
	}
}

func TestRenderCommand_Stdin(t *testing.T) {
	dir := isolate(t)
	output := filepath.Join(dir, "stdin.svg")

	if _, err := execute(t, householdJSON, "render", "-", "-f", "svg", "-o", output); err != nil {
		t.Fatalf("render from stdin: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRenderCommand_SpanishRepaired(t *testing.T) {
	dir := isolate(t)
	input := writeInput(t, dir, "familia.json", `{
	  "personas": [
	    {"id": "1", "nombre": "Ana", "genero": "femenino", "condiciones": ["consultante"],},
	    {"id": "2", "nombre": "Luis", "genero": "masculino"}
	  ],
	  "relaciones": [
	    {"tipo": "pareja", "persona1_id": "1", "persona2_id": "2", "estado_civil": "casados"}
	  ]`)

	if _, err := execute(t, "", "render", input, "-f", "svg"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "familia.svg")); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  errors.Code
	}{
		{"missing input", "", []string{"render", "does-not-exist.json"}, errors.ErrCodeFileNotFound},
		{"invalid format", householdJSON, []string{"--format", "gif"}, errors.ErrCodeInvalidFormat},
		{"invalid style", householdJSON, []string{"--style", "neon"}, errors.ErrCodeInvalidStyle},
		{"unknown focal", householdJSON, []string{"--focal", "nobody"}, errors.ErrCodeInvalidInput},
		{"no persons", `{"persons": [], "relationships": []}`, nil, errors.ErrCodeInvalidInput},
		{"output directory", householdJSON, []string{"-o", "out/"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			args := tt.args
			if tt.input != "" {
				input := writeInput(t, dir, "fam.json", tt.input)
				args = append([]string{"render", input}, tt.args...)
			}
			_, err := execute(t, "", args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestRenderCommand_PickFocalNeedsFile(t *testing.T) {
	isolate(t)
	_, err := execute(t, householdJSON, "render", "-", "--pick-focal")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
