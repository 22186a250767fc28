package family

import (
	"errors"
	"slices"
)

// ErrNoPersons is returned when a family has no persons to draw.
var ErrNoPersons = errors.New("family has no persons")

// Gender selects the base shape of a person symbol.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Orientation is the optional sexual orientation / identity of a person.
// It only affects which badge icon is drawn.
type Orientation string

const (
	OrientationHeterosexual Orientation = "heterosexual"
	OrientationGay          Orientation = "gay"
	OrientationLesbian      Orientation = "lesbian"
	OrientationBisexual     Orientation = "bisexual"
	OrientationTrans        Orientation = "trans"
	OrientationOther        Orientation = "other"
)

var orientations = []Orientation{
	OrientationHeterosexual, OrientationGay, OrientationLesbian,
	OrientationBisexual, OrientationTrans, OrientationOther,
}

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool { return slices.Contains(orientations, o) }

// Condition is a clinical tag attached to a person.
type Condition string

const (
	ConditionIdentifiedPatient    Condition = "identified-patient"
	ConditionTreatment            Condition = "treatment"
	ConditionDeceasedMarker       Condition = "deceased-marker"
	ConditionIllness              Condition = "illness"
	ConditionSubstanceUse         Condition = "substance-use"
	ConditionFixedDiagnosis       Condition = "fixed-diagnosis"
	ConditionPresumptiveDiagnosis Condition = "presumptive-diagnosis"
	ConditionSingleParent         Condition = "single-parent"
	ConditionPregnant             Condition = "pregnant"
)

var conditions = []Condition{
	ConditionIdentifiedPatient, ConditionTreatment, ConditionDeceasedMarker,
	ConditionIllness, ConditionSubstanceUse, ConditionFixedDiagnosis,
	ConditionPresumptiveDiagnosis, ConditionSingleParent, ConditionPregnant,
}

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool { return slices.Contains(conditions, c) }

// Kind is the type of a relationship.
type Kind string

const (
	// KindCouple joins two partners. Participant order is irrelevant.
	KindCouple Kind = "couple"
	// KindParentChild is directed: Participant1 is the parent, Participant2 the child.
	KindParentChild Kind = "parent-child"
	// KindTwins joins two siblings born together. Participant order is irrelevant.
	KindTwins Kind = "twins"
)

// Valid reports whether k is a known relationship kind.
func (k Kind) Valid() bool {
	return k == KindCouple || k == KindParentChild || k == KindTwins
}

// Symmetric reports whether participant order carries no meaning for k.
func (k Kind) Symmetric() bool { return k != KindParentChild }

// MaritalStatus qualifies a couple relationship.
type MaritalStatus string

const (
	StatusMarried    MaritalStatus = "married"
	StatusCohabiting MaritalStatus = "cohabiting"
	StatusDating     MaritalStatus = "dating"
	StatusLegalUnion MaritalStatus = "legal-union"
	StatusDivorced   MaritalStatus = "divorced"
	StatusSeparated  MaritalStatus = "separated"
)

var statuses = []MaritalStatus{
	StatusMarried, StatusCohabiting, StatusDating,
	StatusLegalUnion, StatusDivorced, StatusSeparated,
}

// Valid reports whether s is a known marital status.
func (s MaritalStatus) Valid() bool { return slices.Contains(statuses, s) }

// Quality describes the emotional quality of a couple relationship.
type Quality string

const (
	QualityGoodAlliance Quality = "good-alliance"
	QualityConflictive  Quality = "conflictive"
	QualityDistant      Quality = "distant"
	QualityNeutral      Quality = "neutral"
	QualityToxic        Quality = "toxic"
	QualityAbuse        Quality = "abuse"
)

var qualities = []Quality{
	QualityGoodAlliance, QualityConflictive, QualityDistant,
	QualityNeutral, QualityToxic, QualityAbuse,
}

// Valid reports whether q is a known relationship quality.
func (q Quality) Valid() bool { return slices.Contains(qualities, q) }

// Person is one individual in the diagram.
//
// The zero value describes a living male with no id; [Normalize] assigns the
// id. Alive is the default, so only Deceased needs to be set.
type Person struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Gender      Gender      `json:"gender"`
	Age         *int        `json:"age,omitempty"`
	Deceased    bool        `json:"deceased,omitempty"`
	Occupation  string      `json:"occupation,omitempty"`
	Orientation Orientation `json:"orientation,omitempty"`
	Conditions  []Condition `json:"conditions,omitempty"`
	Notes       string      `json:"notes,omitempty"`

	// Placeholder marks persons synthesized for dangling relationship endpoints.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Has reports whether the person carries condition c.
func (p Person) Has(c Condition) bool { return slices.Contains(p.Conditions, c) }

// IsFemale reports whether the person is drawn as a circle.
func (p Person) IsFemale() bool { return p.Gender == GenderFemale }

// IsDeceased reports whether the person is marked dead, either directly or
// through the deceased-marker condition.
func (p Person) IsDeceased() bool {
	return p.Deceased || p.Has(ConditionDeceasedMarker)
}

// IsIdentifiedPatient reports whether the person is the focus of the session.
func (p Person) IsIdentifiedPatient() bool { return p.Has(ConditionIdentifiedPatient) }

// Clone returns a deep copy of p.
func (p Person) Clone() Person {
	if p.Age != nil {
		age := *p.Age
		p.Age = &age
	}
	p.Conditions = slices.Clone(p.Conditions)
	return p
}

// Placeholder returns the person synthesized for an unknown id.
func Placeholder(id string) Person {
	return Person{ID: id, Name: id, Gender: GenderMale, Placeholder: true}
}

// Relationship links two persons.
type Relationship struct {
	Kind         Kind   `json:"kind"`
	Participant1 string `json:"participant1"`
	Participant2 string `json:"participant2"`

	// Couple-only attributes.
	MaritalStatus MaritalStatus `json:"maritalStatus,omitempty"`
	Quality       Quality       `json:"relationshipQuality,omitempty"`
	Year          string        `json:"year,omitempty"`
}

// Parent returns the parent of a parent-child relationship.
func (r Relationship) Parent() string { return r.Participant1 }

// Child returns the child of a parent-child relationship.
func (r Relationship) Child() string { return r.Participant2 }

// Family is the complete input of a render: persons and the relationships
// between them.
type Family struct {
	Persons       []Person       `json:"persons"`
	Relationships []Relationship `json:"relationships"`
}

// Clone returns a deep copy of f.
func (f Family) Clone() Family {
	out := Family{
		Persons:       make([]Person, len(f.Persons)),
		Relationships: slices.Clone(f.Relationships),
	}
	for i, p := range f.Persons {
		out.Persons[i] = p.Clone()
	}
	return out
}

// Person returns the person with the given id.
func (f Family) Person(id string) (Person, bool) {
	i := slices.IndexFunc(f.Persons, func(p Person) bool { return p.ID == id })
	if i < 0 {
		return Person{}, false
	}
	return f.Persons[i], true
}

// Focal returns the first person carrying the identified-patient condition.
func (f Family) Focal() (Person, bool) {
	i := slices.IndexFunc(f.Persons, Person.IsIdentifiedPatient)
	if i < 0 {
		return Person{}, false
	}
	return f.Persons[i], true
}

// SetFocal returns a copy of f in which only the person with the given id
// carries the identified-patient condition. It reports false when no such
// person exists.
func (f Family) SetFocal(id string) (Family, bool) {
	if _, ok := f.Person(id); !ok {
		return f, false
	}
	out := f.Clone()
	for i := range out.Persons {
		p := &out.Persons[i]
		p.Conditions = slices.DeleteFunc(p.Conditions, func(c Condition) bool {
			return c == ConditionIdentifiedPatient
		})
		if p.ID == id {
			p.Conditions = append([]Condition{ConditionIdentifiedPatient}, p.Conditions...)
		}
	}
	return out, true
}
