package io

import (
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
)

// Repair returns data as valid JSON. Markdown code fences around the
// payload are stripped, and malformed JSON (trailing commas, single quotes,
// unquoted keys, truncated objects) is repaired. repaired reports whether
// the input needed repair.
func Repair(data []byte) (out string, repaired bool, err error) {
	s := stripFence(strings.TrimSpace(string(data)))
	if s == "" {
		return "", false, errors.New(errors.ErrCodeInvalidInput, "empty input")
	}
	if gjson.Valid(s) {
		return s, false, nil
	}
	fixed, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed JSON could not be repaired")
	}
	return fixed, true, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeFamily decodes a family from JSON in the English vocabulary
// ("persons", "relationships", "participant1", ...) or the Spanish one
// ("personas", "relaciones", "persona1_id", ...).
//
// Decoding is lenient. Malformed JSON is repaired first, enumeration values
// are mapped from either vocabulary, and unknown person attributes are
// dropped. Unknown relationship kinds are kept verbatim so that
// [family.Normalize] can count them as dropped. The result still needs
// normalization before layout.
//
// DecodeFamily fails only when the input is not a JSON object after repair.
func DecodeFamily(data []byte) (family.Family, error) {
	f, _, err := DecodeFamilyRepaired(data)
	return f, err
}

// DecodeFamilyRepaired is DecodeFamily that also reports whether the input
// had to be repaired.
func DecodeFamilyRepaired(data []byte) (f family.Family, repaired bool, err error) {
	s, repaired, err := Repair(data)
	if err != nil {
		return family.Family{}, false, err
	}
	root := gjson.Parse(s)
	if !root.IsObject() {
		return family.Family{}, false, errors.New(errors.ErrCodeInvalidInput, "expected a JSON object with persons and relationships")
	}

	first(root, personsKeys).ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() {
			f.Persons = append(f.Persons, decodePerson(v))
		}
		return true
	})
	first(root, relationshipsKeys).ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() {
			f.Relationships = append(f.Relationships, decodeRelationship(v))
		}
		return true
	})
	return f, repaired, nil
}

// ReadFamily decodes a family from r. It does not close r.
func ReadFamily(r io.Reader) (family.Family, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return family.Family{}, errors.Wrap(errors.ErrCodeIO, err, "read input")
	}
	return DecodeFamily(data)
}

// ImportFamily reads and decodes the family file at path.
func ImportFamily(path string) (family.Family, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return family.Family{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", path)
		}
		return family.Family{}, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadFamily(f)
}

func decodePerson(v gjson.Result) family.Person {
	p := family.Person{
		ID:         text(first(v, idKeys)),
		Name:       strings.TrimSpace(text(first(v, nameKeys))),
		Occupation: strings.TrimSpace(text(first(v, occupationKeys))),
		Notes:      strings.TrimSpace(text(first(v, notesKeys))),
		Age:        age(first(v, ageKeys)),

		Placeholder: first(v, placeholderKeys).Bool(),
	}
	if g, ok := lookup(genders, text(first(v, genderKeys))); ok {
		p.Gender = g
	}
	if o, ok := lookup(orientations, text(first(v, orientationKeys))); ok {
		p.Orientation = o
		if o == family.OrientationGay && p.Gender == family.GenderFemale {
			p.Orientation = family.OrientationLesbian
		}
	}

	if d := first(v, deceasedKeys); d.Exists() {
		p.Deceased = d.Bool()
	} else if a := first(v, aliveKeys); a.Exists() && a.Type != gjson.Null {
		p.Deceased = !a.Bool()
	}

	conds := first(v, conditionsKeys)
	if conds.Type == gjson.String {
		for _, c := range strings.Split(conds.Str, ",") {
			p.Conditions = appendCondition(p.Conditions, c)
		}
		return p
	}
	conds.ForEach(func(_, c gjson.Result) bool {
		p.Conditions = appendCondition(p.Conditions, c.String())
		return true
	})
	return p
}

func appendCondition(list []family.Condition, raw string) []family.Condition {
	c, ok := lookup(conditions, raw)
	if !ok {
		return list
	}
	if slices.Contains(list, c) {
		return list
	}
	return append(list, c)
}

func decodeRelationship(v gjson.Result) family.Relationship {
	r := family.Relationship{
		Participant1: text(first(v, firstKeys)),
		Participant2: text(first(v, secondKeys)),
		Year:         strings.TrimSpace(text(first(v, yearKeys))),
	}
	raw := text(first(v, kindKeys))
	if k, ok := lookup(kinds, raw); ok {
		r.Kind = k
	} else {
		r.Kind = family.Kind(term(raw))
	}
	if s, ok := lookup(statuses, text(first(v, statusKeys))); ok {
		r.MaritalStatus = s
	}
	if q, ok := lookup(qualities, text(first(v, qualityKeys))); ok {
		r.Quality = q
	}
	return r
}

// first returns the value of the first key present in obj.
func first(obj gjson.Result, keys []string) gjson.Result {
	for _, k := range keys {
		if r := obj.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// text renders strings and numbers as text; null, objects and arrays are
// empty.
func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number:
		return r.String()
	default:
		return ""
	}
}

func age(r gjson.Result) *int {
	var n int
	switch r.Type {
	case gjson.Number:
		n = int(r.Int())
	case gjson.String:
		v, err := strconv.Atoi(strings.TrimSpace(r.Str))
		if err != nil {
			return nil
		}
		n = v
	default:
		return nil
	}
	if n < 0 {
		return nil
	}
	return &n
}
