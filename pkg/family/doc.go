// Package family provides the person/relationship model behind a genogram and
// the two preprocessing stages every render starts with: identity
// normalization and relationship indexing.
//
// # Overview
//
// A genogram is drawn from records produced by an upstream extractor that is
// not trusted to be consistent. Ids may be missing, reused, written with
// spaces or accents, and relationship endpoints may point at people that were
// never listed. This package turns such input into a clean working copy:
//
//	fam, res := family.Normalize(raw)
//	idx := family.BuildIndex(fam)
//
// [Normalize] never mutates its argument. It returns fresh slices in which
// every id is canonical and unique, every relationship endpoint resolves to a
// person, and invalid or duplicate relationships have been removed. The
// [NormalizeResult] reports what had to be repaired so callers can log it.
//
// # Canonical Ids
//
// [CanonicalID] lowercases and trims a raw id and collapses every run of
// non-word characters (anything other than Unicode letters, marks, digits and
// underscore) into a single underscore:
//
//	"Ana María"  -> "ana_maría"
//	"Dad (late)" -> "dad_late_"
//
// A person without an id falls back to its name; a person whose canonical id
// is still empty becomes "person<N>" with N its 1-based position. Collisions
// are resolved by suffixing "_2", "_3", and so on.
//
// # Healing
//
// A relationship endpoint that does not resolve to any person is healed with
// a placeholder ([Person.Placeholder]) named after the id. Placeholders are
// appended in first-reference order, so the same input always heals the same
// way.
//
// # Index
//
// [Index] answers the structural questions the layout stages ask: who is a
// person's partner, who are their children and parents, and which couples
// exist. When a child has two recorded parents that were never declared a
// couple, the index synthesizes an implicit couple between them so the
// renderer can draw a shared descent line.
//
// # Concurrency
//
// A [Family] is a plain value. An [Index] is immutable after [BuildIndex]
// returns and may be shared between goroutines.
package family
