// Package generation assigns the persons of a normalized family to ordered
// generations and groups partners within each generation.
//
// Generation membership depends only on parent-child links; couples influence
// grouping, never leveling. Two strategies exist:
//
//   - [StrategyFocal]: used when some person carries the identified-patient
//     condition. Up to two ancestor levels are placed above the focal person,
//     the focal person's children below, and everyone else in between.
//   - [StrategyRoots]: a breadth-first walk down from every person without
//     parents.
//
// Both strategies finish with a grandparent backfill that lifts grandparents
// into the first generation. Every step skips persons that were already
// placed, so cyclic parent data terminates and each person lands in exactly
// one generation.
package generation

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matzehuels/genogram/pkg/family"
)

// Strategy names the leveling algorithm that produced a [Result].
type Strategy string

const (
	StrategyFocal Strategy = "focal"
	StrategyRoots Strategy = "roots"
)

// maxAncestorDepth bounds how far above the focal person ancestors are walked.
const maxAncestorDepth = 2

var grandparentKeywords = []string{
	"abuelo", "abuela", "abuelos", "abuelas", "bisabuelo", "bisabuela",
	"grandfather", "grandmother", "grandparent", "grandpa", "grandma",
}

// Group is one layout unit: a single person or a couple.
type Group []string

// IsCouple reports whether the group holds two partners.
func (g Group) IsCouple() bool { return len(g) == 2 }

// Result is the ordered list of generations, top to bottom.
type Result struct {
	Strategy Strategy
	// Focal is the identified patient when Strategy is StrategyFocal.
	Focal  string
	Levels [][]Group
}

// Level returns the generation index of id.
func (r Result) Level(id string) (int, bool) {
	for i, lvl := range r.Levels {
		for _, g := range lvl {
			if slices.Contains(g, id) {
				return i, true
			}
		}
	}
	return 0, false
}

// IDs returns the ids of generation i in group order.
func (r Result) IDs(i int) []string {
	var ids []string
	for _, g := range r.Levels[i] {
		ids = append(ids, g...)
	}
	return ids
}

// Count returns the number of placed persons.
func (r Result) Count() int {
	n := 0
	for i := range r.Levels {
		n += len(r.IDs(i))
	}
	return n
}

// Assign levels persons into generations using idx for adjacency.
// The persons slice fixes the deterministic iteration order.
func Assign(idx *family.Index, persons []family.Person) Result {
	if len(persons) == 0 {
		return Result{Strategy: StrategyRoots}
	}
	ids := make([]string, len(persons))
	for i, p := range persons {
		ids[i] = p.ID
	}

	var res Result
	var levels [][]string
	if focal := slices.IndexFunc(persons, family.Person.IsIdentifiedPatient); focal >= 0 {
		res.Strategy, res.Focal = StrategyFocal, ids[focal]
		levels = focalLevels(idx, ids, ids[focal])
	} else {
		res.Strategy = StrategyRoots
		levels = rootLevels(idx, ids)
	}

	levels = backfillGrandparents(idx, persons, levels)
	res.Levels = groupLevels(idx, levels)
	return res
}

func focalLevels(idx *family.Index, ids []string, focal string) [][]string {
	placed := mapset.NewThreadUnsafeSet(focal)

	var ancestors [][]string
	current := []string{focal}
	for range maxAncestorDepth {
		var next []string
		for _, id := range current {
			for _, parent := range idx.Parents(id) {
				if placed.Add(parent) {
					next = append(next, parent)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		ancestors = slices.Insert(ancestors, 0, next)
		current = next
	}

	group := []string{focal}
	if partner, ok := idx.Partner(focal); ok && placed.Add(partner) {
		group = append(group, partner)
	}

	var children []string
	for _, id := range group {
		for _, child := range idx.Children(id) {
			if placed.Add(child) {
				children = append(children, child)
			}
		}
	}

	rest := unplaced(ids, placed)
	levels := ancestors
	if len(children) > 0 {
		levels = append(levels, group, children)
		if len(rest) > 0 {
			levels = append(levels, rest)
		}
		return levels
	}
	if len(rest) > 0 {
		levels = append(levels, rest)
	}
	return append(levels, group)
}

func rootLevels(idx *family.Index, ids []string) [][]string {
	placed := mapset.NewThreadUnsafeSet[string]()

	var current []string
	for _, id := range ids {
		if !idx.HasParents(id) {
			current = append(current, id)
		}
	}
	if len(current) == 0 {
		current = ids[:1]
	}
	placed.Append(current...)

	var levels [][]string
	for len(current) > 0 {
		levels = append(levels, current)
		var next []string
		for _, id := range current {
			for _, child := range idx.Children(id) {
				if placed.Add(child) {
					next = append(next, child)
				}
			}
		}
		current = next
	}

	if rest := unplaced(ids, placed); len(rest) > 0 {
		levels = append(levels, rest)
	}
	return levels
}

func unplaced(ids []string, placed mapset.Set[string]) []string {
	var rest []string
	for _, id := range ids {
		if placed.Add(id) {
			rest = append(rest, id)
		}
	}
	return rest
}

// backfillGrandparents moves every grandparent into generation 0, prepending
// them in person order, and drops generations left empty.
func backfillGrandparents(idx *family.Index, persons []family.Person, levels [][]string) [][]string {
	grand := mapset.NewThreadUnsafeSet[string]()
	for _, p := range persons {
		for _, parent := range idx.Parents(p.ID) {
			grand.Append(idx.Parents(parent)...)
		}
		if mentionsGrandparent(p) {
			grand.Add(p.ID)
		}
	}
	if grand.Cardinality() == 0 {
		return levels
	}

	var front []string
	for _, p := range persons {
		if grand.Contains(p.ID) && !slices.Contains(front, p.ID) {
			front = append(front, p.ID)
		}
	}

	out := make([][]string, 0, len(levels))
	for i, lvl := range levels {
		kept := slices.DeleteFunc(slices.Clone(lvl), func(id string) bool {
			return grand.Contains(id)
		})
		if i == 0 {
			kept = append(front, kept...)
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	return out
}

func mentionsGrandparent(p family.Person) bool {
	text := strings.ToLower(p.Name + " " + p.Notes)
	for _, kw := range grandparentKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// groupLevels pairs each person with their partner when the partner is still
// unclaimed in the same generation.
func groupLevels(idx *family.Index, levels [][]string) [][]Group {
	out := make([][]Group, 0, len(levels))
	for _, lvl := range levels {
		pool := slices.Clone(lvl)
		groups := make([]Group, 0, len(pool))
		for len(pool) > 0 {
			id := pool[0]
			pool = pool[1:]
			if partner, ok := idx.Partner(id); ok {
				if i := slices.Index(pool, partner); i >= 0 {
					pool = slices.Delete(pool, i, i+1)
					groups = append(groups, Group{id, partner})
					continue
				}
			}
			groups = append(groups, Group{id})
		}
		out = append(out, groups)
	}
	return out
}
