package family

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_]+`)

// CanonicalID lowercases and trims raw and replaces every run of non-word
// characters with a single underscore. The result may be empty.
func CanonicalID(raw string) string {
	return nonWord.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "_")
}

// NormalizeResult reports the repairs made by [Normalize].
type NormalizeResult struct {
	// Renamed counts persons whose canonical id collided with an earlier one
	// and received a numeric suffix.
	Renamed int
	// Healed lists the ids of placeholder persons created for dangling
	// relationship endpoints, in creation order.
	Healed []string
	// Dropped counts relationships removed because an endpoint was empty,
	// the kind was unknown, or both endpoints were the same person.
	Dropped int
	// Duplicates counts relationships removed because an identical one was
	// already kept.
	Duplicates int
}

// Repaired reports whether Normalize changed anything beyond id spelling.
func (r NormalizeResult) Repaired() bool {
	return r.Renamed > 0 || len(r.Healed) > 0 || r.Dropped > 0 || r.Duplicates > 0
}

type relKey struct {
	kind Kind
	a, b string
}

// Normalize returns a working copy of f with canonical, unique person ids and
// with every relationship endpoint rewritten to one of them.
//
// Persons keep their input order. A raw id shared by several persons maps to
// the first of them. Endpoints that match no raw id are canonicalized on their
// own; if the result still names nobody a placeholder person is appended.
// Unknown genders default to male, negative ages are cleared and unknown
// conditions are discarded. The caller's slices are never modified.
func Normalize(f Family) (Family, NormalizeResult) {
	var res NormalizeResult
	out := Family{Persons: make([]Person, 0, len(f.Persons))}

	idMap := make(map[string]string, len(f.Persons))
	used := make(map[string]bool, len(f.Persons))

	for i, src := range f.Persons {
		raw := src.ID
		if strings.TrimSpace(raw) == "" {
			raw = src.Name
		}
		base := CanonicalID(raw)
		if base == "" {
			base = fmt.Sprintf("person%d", i+1)
		}
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		if id != base {
			res.Renamed++
		}
		used[id] = true
		if raw != "" {
			if _, seen := idMap[raw]; !seen {
				idMap[raw] = id
			}
		}

		p := cleanPerson(src.Clone())
		p.ID = id
		out.Persons = append(out.Persons, p)
	}

	resolve := func(raw string) string {
		if id, ok := idMap[raw]; ok {
			return id
		}
		return CanonicalID(raw)
	}

	seen := make(map[relKey]bool, len(f.Relationships))
	for _, src := range f.Relationships {
		r := src
		r.Participant1 = resolve(src.Participant1)
		r.Participant2 = resolve(src.Participant2)
		if !r.Kind.Valid() || r.Participant1 == "" || r.Participant2 == "" || r.Participant1 == r.Participant2 {
			res.Dropped++
			continue
		}

		key := relKey{kind: r.Kind, a: r.Participant1, b: r.Participant2}
		if r.Kind.Symmetric() && key.a > key.b {
			key.a, key.b = key.b, key.a
		}
		if seen[key] {
			res.Duplicates++
			continue
		}
		seen[key] = true

		for _, id := range [2]string{r.Participant1, r.Participant2} {
			if used[id] {
				continue
			}
			used[id] = true
			out.Persons = append(out.Persons, Placeholder(id))
			res.Healed = append(res.Healed, id)
		}
		if r.Kind != KindCouple {
			r.MaritalStatus, r.Quality, r.Year = "", "", ""
		}
		out.Relationships = append(out.Relationships, r)
	}

	return out, res
}

func cleanPerson(p Person) Person {
	if !p.Gender.Valid() {
		p.Gender = GenderMale
	}
	if p.Age != nil && *p.Age < 0 {
		p.Age = nil
	}
	if p.Orientation != "" && !p.Orientation.Valid() {
		p.Orientation = ""
	}
	kept := p.Conditions[:0]
	for _, c := range p.Conditions {
		if c.Valid() && !slices.Contains(kept, c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	p.Conditions = kept
	return p
}
