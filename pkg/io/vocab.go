package io

import (
	"strings"

	"github.com/matzehuels/genogram/pkg/family"
)

// Field aliases, English first. The first alias present in an object wins.
var (
	personsKeys       = []string{"persons", "personas", "people"}
	relationshipsKeys = []string{"relationships", "relaciones", "relations"}

	idKeys          = []string{"id"}
	nameKeys        = []string{"name", "nombre"}
	genderKeys      = []string{"gender", "genero", "sexo"}
	ageKeys         = []string{"age", "edad"}
	deceasedKeys    = []string{"deceased"}
	aliveKeys       = []string{"alive", "vivo"}
	occupationKeys  = []string{"occupation", "ocupacion"}
	orientationKeys = []string{"orientation", "orientacion"}
	conditionsKeys  = []string{"conditions", "condiciones"}
	notesKeys       = []string{"notes", "notas"}
	placeholderKeys = []string{"placeholder"}

	kindKeys    = []string{"kind", "type", "tipo"}
	firstKeys   = []string{"participant1", "persona1_id", "person1_id", "from"}
	secondKeys  = []string{"participant2", "persona2_id", "person2_id", "to"}
	statusKeys  = []string{"maritalStatus", "marital_status", "estado_civil"}
	qualityKeys = []string{"relationshipQuality", "quality", "relationship_quality", "calidad_relacion"}
	yearKeys    = []string{"year", "fecha"}
)

var genders = map[string]family.Gender{
	"male":      family.GenderMale,
	"m":         family.GenderMale,
	"man":       family.GenderMale,
	"masculino": family.GenderMale,
	"hombre":    family.GenderMale,
	"female":    family.GenderFemale,
	"f":         family.GenderFemale,
	"woman":     family.GenderFemale,
	"femenino":  family.GenderFemale,
	"mujer":     family.GenderFemale,
}

var orientations = map[string]family.Orientation{
	"heterosexual": family.OrientationHeterosexual,
	"gay":          family.OrientationGay,
	"homosexual":   family.OrientationGay,
	"lesbian":      family.OrientationLesbian,
	"lesbiana":     family.OrientationLesbian,
	"bisexual":     family.OrientationBisexual,
	"trans":        family.OrientationTrans,
	"other":        family.OrientationOther,
	"otro":         family.OrientationOther,
}

var conditions = map[string]family.Condition{
	"identified_patient":     family.ConditionIdentifiedPatient,
	"consultante":            family.ConditionIdentifiedPatient,
	"paciente_identificado":  family.ConditionIdentifiedPatient,
	"treatment":              family.ConditionTreatment,
	"tratamiento":            family.ConditionTreatment,
	"deceased_marker":        family.ConditionDeceasedMarker,
	"muerte":                 family.ConditionDeceasedMarker,
	"fallecido":              family.ConditionDeceasedMarker,
	"illness":                family.ConditionIllness,
	"enfermedad":             family.ConditionIllness,
	"substance_use":          family.ConditionSubstanceUse,
	"consumo":                family.ConditionSubstanceUse,
	"fixed_diagnosis":        family.ConditionFixedDiagnosis,
	"diagnostico_fijo":       family.ConditionFixedDiagnosis,
	"diagnostico_definitivo": family.ConditionFixedDiagnosis,
	"presumptive_diagnosis":  family.ConditionPresumptiveDiagnosis,
	"diagnostico_presuntivo": family.ConditionPresumptiveDiagnosis,
	"single_parent":          family.ConditionSingleParent,
	"padre_soltero":          family.ConditionSingleParent,
	"madre_soltera":          family.ConditionSingleParent,
	"pregnant":               family.ConditionPregnant,
	"embarazada":             family.ConditionPregnant,
}

var kinds = map[string]family.Kind{
	"couple":       family.KindCouple,
	"pareja":       family.KindCouple,
	"parent_child": family.KindParentChild,
	"padre_hijo":   family.KindParentChild,
	"twins":        family.KindTwins,
	"gemelos":      family.KindTwins,
}

var statuses = map[string]family.MaritalStatus{
	"married":                family.StatusMarried,
	"casados":                family.StatusMarried,
	"casado":                 family.StatusMarried,
	"cohabiting":             family.StatusCohabiting,
	"union_libre":            family.StatusCohabiting,
	"dating":                 family.StatusDating,
	"novios":                 family.StatusDating,
	"union_libre_novios":     family.StatusDating,
	"legal_union":            family.StatusLegalUnion,
	"union_libre_legalizado": family.StatusLegalUnion,
	"divorced":               family.StatusDivorced,
	"divorciado":             family.StatusDivorced,
	"divorciados":            family.StatusDivorced,
	"separated":              family.StatusSeparated,
	"separado":               family.StatusSeparated,
	"separados":              family.StatusSeparated,
}

var qualities = map[string]family.Quality{
	"good_alliance":          family.QualityGoodAlliance,
	"alianza_buena":          family.QualityGoodAlliance,
	"conflictive":            family.QualityConflictive,
	"conflictiva":            family.QualityConflictive,
	"conflictiva_violenta":   family.QualityConflictive,
	"distant":                family.QualityDistant,
	"distante":               family.QualityDistant,
	"neutral":                family.QualityNeutral,
	"nibuena_nimala":         family.QualityNeutral,
	"toxic":                  family.QualityToxic,
	"toxica":                 family.QualityToxic,
	"toxica_simbiotica":      family.QualityToxic,
	"abuse":                  family.QualityAbuse,
	"abuso":                  family.QualityAbuse,
	"abuso_sexual_violacion": family.QualityAbuse,
}

var vocabKey = strings.NewReplacer(" ", "_", "-", "_")

// term folds an enumeration value to its lookup form: lower case with
// spaces and hyphens as underscores.
func term(s string) string {
	return vocabKey.Replace(strings.ToLower(strings.TrimSpace(s)))
}

func lookup[T any](table map[string]T, s string) (T, bool) {
	v, ok := table[term(s)]
	return v, ok
}
