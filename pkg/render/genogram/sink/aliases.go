package sink

import "github.com/matzehuels/genogram/pkg/family"

// Icon directories are laid out by English names:
//
//	male/<badge>.svg, female/<badge>.svg    person badges ([BadgePath])
//	relationships/<quality>.svg              relationship quality ([QualityIconPath])
//	marital/<status>.svg                     marital status ([StatusIconPath])
//	kinship/twins.svg                        twin bar ([TwinsIconPath])
//
// The clinic's existing icons_genograms asset tree uses Spanish names
// (hombre_nino/hombre_tratamiento.svg, estado_civil/..., relaciones/...).
// When an English path is absent, its Spanish equivalents are tried in
// order, so either tree can be passed as the icon directory.
var iconAliases = map[string][]string{
	StatusIconPath(family.StatusMarried):    {"estado_civil/casados/casados_horizontal.svg", "estado_civil/casados/casados.svg"},
	StatusIconPath(family.StatusLegalUnion): {"estado_civil/union_libre_legalizado/union_libre_legalizado.svg"},
	StatusIconPath(family.StatusDating):     {"estado_civil/union_libre_novios/union_libre_novios_horizontal.svg"},
	StatusIconPath(family.StatusCohabiting): {"estado_civil/union_libre_novios/union_libre_novios_horizontal.svg"},
	StatusIconPath(family.StatusDivorced):   {"estado_civil/divorciado/divorciado.svg"},
	StatusIconPath(family.StatusSeparated):  {"estado_civil/separado/separado.svg"},

	QualityIconPath(family.QualityGoodAlliance): {"relaciones/relacion_alianza_buena/relacion_alianza_buena_horizontal.svg"},
	QualityIconPath(family.QualityConflictive):  {"relaciones/relacion_conflictiva_violenta/relacion_conflictiva_violenta.svg"},
	QualityIconPath(family.QualityDistant):      {"relaciones/relacion_distante/relacion_distante_horizontal.svg"},
	QualityIconPath(family.QualityNeutral):      {"relaciones/relacion_nibuena_nimala/relacion_nibuena_nimala_horizontal.svg"},
	QualityIconPath(family.QualityToxic):        {"relaciones/relacion_toxica_simbiotica/relacion_toxica_simbiotica_horizontal.svg"},
	QualityIconPath(family.QualityAbuse): {
		"relaciones/relacion_abuso_sexual_violacion/relacion_abuso_sexual_violacion_horizontal.svg",
		"relaciones/relacion_abuso_sexual_violacion/relacion_abuso_sexual_violacion.svg",
		"relaciones/relacion_abuso_sexual_violacion/relacion_abuso_sexual_violacion_h.svg",
	},

	TwinsIconPath: {"parentesco/gemelos/gemelos.svg"},
}

func init() {
	for _, g := range []struct{ dir, folder, prefix string }{
		{"male", "hombre_nino", "hombre"},
		{"female", "mujer_nina", "mujer"},
	} {
		badge := func(name string, files ...string) {
			paths := make([]string, len(files))
			for i, f := range files {
				paths[i] = g.folder + "/" + f + ".svg"
			}
			iconAliases[g.dir+"/"+name+".svg"] = paths
		}
		p := g.prefix
		badge("fixed-diagnosis", p+"_diagnostico_fijo")
		badge("presumptive-diagnosis", p+"_diagnostico_presuntivo")
		badge("treatment-substance-use", p+"_diagnostico_enfermedad_tratamiento_consumo_tratamiento")
		badge("illness-substance-use", p+"_enfermedad_consumo")
		badge("gay", "hombre_gay")
		badge("gay-substance-use", "hombre_gay_consumo")
		badge("lesbian", "mujer_lesbiana")
		badge("lesbian-substance-use", "mujer_lesbiana_consumo")
		badge("bisexual", p+"_bisexual")
		badge("bisexual-substance-use", p+"_bisexual")
		badge("trans", p+"_trans")
		badge("trans-substance-use", p+"_trans")
		badge("pregnant", "mujer_nina _embarazada")
		badge("treatment", p+"_tratamiento")
		badge("substance-use", p+"_presuncion_consumo_sustancias")
	}
	iconAliases["male/single-parent.svg"] = []string{"hombre_nino/hombre_padre_soltero.svg"}
	iconAliases["female/single-parent.svg"] = []string{"mujer_nina/mujer_madre_soltera.svg"}
}

// IconAliases returns the Spanish asset paths tried when path is absent.
func IconAliases(path string) []string {
	return iconAliases[path]
}

// aliasIcons resolves a path through its aliases when the source lacks it.
type aliasIcons struct {
	src IconSource
}

func withAliases(src IconSource) IconSource {
	switch src.(type) {
	case nil:
		return noIcons{}
	case noIcons, aliasIcons:
		return src
	}
	return aliasIcons{src: src}
}

func (a aliasIcons) Icon(path string) (string, bool) {
	if svg, ok := a.src.Icon(path); ok {
		return svg, true
	}
	for _, alt := range iconAliases[path] {
		if svg, ok := a.src.Icon(alt); ok {
			return svg, true
		}
	}
	return "", false
}
