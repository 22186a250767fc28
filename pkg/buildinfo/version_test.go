package buildinfo

import (
	"strings"
	"testing"
)

func TestResolveKeepsStampedValues(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	got := Resolve()
	want := Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02T03:04:05Z"}
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestString(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v9.9.9"

	s := String()
	for _, want := range []string{"version: v9.9.9", "commit: ", "built: "} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v0.1.0"

	if tpl := Template(); !strings.HasPrefix(tpl, "{{.Name}} version v0.1.0\n") {
		t.Errorf("Template() = %q", tpl)
	}
}
