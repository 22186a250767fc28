package sink

import (
	"encoding/base64"

	"github.com/matzehuels/genogram/pkg/family"
)

// IconSource resolves relative icon paths to SVG content. *cache.Icons
// satisfies it.
type IconSource interface {
	Icon(path string) (string, bool)
}

type noIcons struct{}

func (noIcons) Icon(string) (string, bool) { return "", false }

// DataURI embeds SVG content as a base64 data URI.
func DataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// BadgePath returns the icon path for a person's most significant
// condition or orientation, or "" when nothing warrants a badge.
func BadgePath(p family.Person) string {
	name := badgeName(p)
	if name == "" {
		return ""
	}
	dir := "male"
	if p.IsFemale() {
		dir = "female"
	}
	return dir + "/" + name + ".svg"
}

func badgeName(p family.Person) string {
	substance := p.Has(family.ConditionSubstanceUse)
	switch {
	case p.Has(family.ConditionFixedDiagnosis):
		return "fixed-diagnosis"
	case p.Has(family.ConditionPresumptiveDiagnosis):
		return "presumptive-diagnosis"
	case p.Has(family.ConditionTreatment) && substance:
		return "treatment-substance-use"
	case p.Has(family.ConditionIllness) && substance:
		return "illness-substance-use"
	}

	switch p.Orientation {
	case family.OrientationGay, family.OrientationLesbian, family.OrientationBisexual, family.OrientationTrans:
		if substance {
			return string(p.Orientation) + "-substance-use"
		}
		return string(p.Orientation)
	}

	for _, c := range []family.Condition{
		family.ConditionSingleParent,
		family.ConditionPregnant,
		family.ConditionTreatment,
		family.ConditionSubstanceUse,
		family.ConditionIllness,
	} {
		if p.Has(c) {
			return string(c)
		}
	}
	return ""
}

// QualityIconPath returns the decoration for a relationship quality.
func QualityIconPath(q family.Quality) string {
	if q == "" {
		return ""
	}
	return "relationships/" + string(q) + ".svg"
}

// StatusIconPath returns the decoration for a marital status.
func StatusIconPath(s family.MaritalStatus) string {
	if s == "" {
		return ""
	}
	return "marital/" + string(s) + ".svg"
}

// TwinsIconPath is the decoration drawn above a twin bar.
const TwinsIconPath = "kinship/twins.svg"
