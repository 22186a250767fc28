package family

import "slices"

// Couple is a pair of partners drawn with a shared couple bar.
type Couple struct {
	A, B    string
	Status  MaritalStatus
	Quality Quality
	Year    string

	// Implicit marks couples synthesized from two parents of the same child
	// that were never recorded as partners.
	Implicit bool
}

// Edge is a directed parent-child link.
type Edge struct {
	Parent, Child string
}

type pair struct{ a, b string }

func newPair(a, b string) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Index holds the adjacency of a normalized family. Build it with
// [BuildIndex]; it is read-only afterwards.
type Index struct {
	partner  map[string]string
	children map[string][]string
	parents  map[string][]string
	couples  []Couple
	coupled  map[pair]bool
	edges    []Edge
	twins    []pair
}

// BuildIndex indexes the relationships of a normalized family.
//
// Couples are recorded in relationship order; a person's partner is the first
// one recorded. After all explicit relationships are read, every child whose
// first two recorded parents are not a couple yields an implicit cohabiting
// couple between them. Further parents are never paired.
func BuildIndex(f Family) *Index {
	x := &Index{
		partner:  make(map[string]string),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
		coupled:  make(map[pair]bool),
	}

	var childOrder []string
	for _, r := range f.Relationships {
		a, b := r.Participant1, r.Participant2
		switch r.Kind {
		case KindCouple:
			x.addCouple(Couple{A: a, B: b, Status: r.MaritalStatus, Quality: r.Quality, Year: r.Year})
		case KindParentChild:
			if !slices.Contains(x.children[a], b) {
				x.children[a] = append(x.children[a], b)
			}
			if _, ok := x.parents[b]; !ok {
				childOrder = append(childOrder, b)
			}
			if !slices.Contains(x.parents[b], a) {
				x.parents[b] = append(x.parents[b], a)
				x.edges = append(x.edges, Edge{Parent: a, Child: b})
			}
		case KindTwins:
			if !slices.Contains(x.twins, pair{a, b}) && !slices.Contains(x.twins, pair{b, a}) {
				x.twins = append(x.twins, pair{a, b})
			}
		}
	}

	for _, child := range childOrder {
		ps := x.parents[child]
		if len(ps) < 2 {
			continue
		}
		x.addCouple(Couple{A: ps[0], B: ps[1], Status: StatusCohabiting, Implicit: true})
	}
	return x
}

func (x *Index) addCouple(c Couple) {
	if c.A == c.B {
		return
	}
	key := newPair(c.A, c.B)
	if x.coupled[key] {
		return
	}
	x.coupled[key] = true
	x.couples = append(x.couples, c)
	if _, ok := x.partner[c.A]; !ok {
		x.partner[c.A] = c.B
	}
	if _, ok := x.partner[c.B]; !ok {
		x.partner[c.B] = c.A
	}
}

// Partner returns the first recorded partner of id.
func (x *Index) Partner(id string) (string, bool) {
	p, ok := x.partner[id]
	return p, ok
}

// Children returns the children of id in record order.
func (x *Index) Children(id string) []string { return x.children[id] }

// Parents returns the parents of id in record order.
func (x *Index) Parents(id string) []string { return x.parents[id] }

// HasParents reports whether id has at least one recorded parent.
func (x *Index) HasParents(id string) bool { return len(x.parents[id]) > 0 }

// IsParent reports whether parent is a recorded parent of child.
func (x *Index) IsParent(parent, child string) bool {
	return slices.Contains(x.parents[child], parent)
}

// AreCouple reports whether a and b are partners, explicitly or implicitly.
func (x *Index) AreCouple(a, b string) bool { return x.coupled[newPair(a, b)] }

// Couples returns every couple, explicit ones first in record order followed
// by implicit ones.
func (x *Index) Couples() []Couple { return x.couples }

// Edges returns every distinct parent-child link in record order.
func (x *Index) Edges() []Edge { return x.edges }

// Twins returns every twin pair in record order.
func (x *Index) Twins() [][2]string {
	out := make([][2]string, len(x.twins))
	for i, t := range x.twins {
		out[i] = [2]string{t.a, t.b}
	}
	return out
}
