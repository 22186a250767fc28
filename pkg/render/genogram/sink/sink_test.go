package sink

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
	"github.com/matzehuels/genogram/pkg/render/genogram/styles"
)

type mapIcons map[string]string

func (m mapIcons) Icon(path string) (string, bool) {
	svg, ok := m[path]
	return svg, ok
}

type fixture struct {
	fam family.Family
	idx *family.Index
	gen generation.Result
	l   layout.Layout
}

func build(t *testing.T, raw family.Family) fixture {
	t.Helper()
	fam, _ := family.Normalize(raw)
	idx := family.BuildIndex(fam)
	gen := generation.Assign(idx, fam.Persons)
	return fixture{fam: fam, idx: idx, gen: gen, l: layout.Build(gen.Levels)}
}

func person(id string, g family.Gender, conds ...family.Condition) family.Person {
	return family.Person{ID: id, Name: id, Gender: g, Conditions: conds}
}

func parentOf(parent, child string) family.Relationship {
	return family.Relationship{Kind: family.KindParentChild, Participant1: parent, Participant2: child}
}

func coupleFamily() family.Family {
	return family.Family{
		Persons: []family.Person{
			person("juan", family.GenderMale),
			person("maria", family.GenderFemale),
		},
		Relationships: []family.Relationship{
			{Kind: family.KindCouple, Participant1: "juan", Participant2: "maria", MaritalStatus: family.StatusMarried, Year: "1990"},
		},
	}
}

func nuclearFamily() family.Family {
	return family.Family{
		Persons: []family.Person{
			person("dad", family.GenderMale),
			person("mom", family.GenderFemale),
			person("ana", family.GenderFemale),
			person("luis", family.GenderMale),
		},
		Relationships: []family.Relationship{
			{Kind: family.KindCouple, Participant1: "dad", Participant2: "mom", MaritalStatus: family.StatusMarried},
			parentOf("dad", "ana"),
			parentOf("mom", "ana"),
			parentOf("dad", "luis"),
			parentOf("mom", "luis"),
		},
	}
}

func TestBuildRelationsCoupleOnly(t *testing.T) {
	fx := build(t, coupleFamily())
	rel := BuildRelations(fx.idx, fx.l, nil)

	tests := []struct {
		class string
		want  int
	}{
		{ClassCoupleBar, 1},
		{ClassCoupleDrop, 2},
		{ClassDescent, 0},
		{ClassDistribution, 0},
		{ClassChildDrop, 0},
		{ClassMarriageYear, 1},
	}
	for _, tt := range tests {
		if got := rel.Count(tt.class); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.class, got, tt.want)
		}
	}
	if len(rel.Labels) != 1 || rel.Labels[0].Text != "m. 1990" {
		t.Errorf("Labels = %+v, want one \"m. 1990\"", rel.Labels)
	}
}

func TestBuildRelationsChain(t *testing.T) {
	fx := build(t, family.Family{
		Persons: []family.Person{
			person("abuelo", family.GenderMale),
			person("padre", family.GenderMale),
			person("hijo", family.GenderMale),
		},
		Relationships: []family.Relationship{
			parentOf("abuelo", "padre"),
			parentOf("padre", "hijo"),
		},
	})

	if len(fx.l.Levels) != 3 {
		t.Fatalf("levels = %d, want 3", len(fx.l.Levels))
	}
	for i, lvl := range fx.l.Levels {
		if len(lvl) != 1 || len(lvl[0]) != 1 {
			t.Errorf("level %d = %v, want one single person", i, lvl)
		}
	}

	rel := BuildRelations(fx.idx, fx.l, nil)
	if got := rel.Count(ClassSingleDescent); got != 2 {
		t.Errorf("single descents = %d, want 2", got)
	}
	if got := rel.Count(ClassCoupleBar); got != 0 {
		t.Errorf("couple bars = %d, want 0", got)
	}
}

func TestBuildRelationsSingleDescentShape(t *testing.T) {
	idx := family.BuildIndex(family.Family{
		Persons: []family.Person{
			person("p", family.GenderMale),
			person("c", family.GenderFemale),
		},
		Relationships: []family.Relationship{parentOf("p", "c")},
	})

	tests := []struct {
		name      string
		child     layout.Point
		wantLines int
		wantPath  string
	}{
		{"aligned", layout.Point{X: 100, Y: 280}, 1, ""},
		{"offset", layout.Point{X: 280, Y: 280}, 0, "M 125 150 V 215 H 305 V 280"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layout.Layout{
				Positions: map[string]layout.Point{"p": {X: 100, Y: 100}, "c": tt.child},
				Metrics:   layout.DefaultMetrics(),
			}
			rel := BuildRelations(idx, l, nil)
			if got := len(rel.LinesOf(ClassSingleDescent)); got != tt.wantLines {
				t.Errorf("single descent lines = %d, want %d", got, tt.wantLines)
			}
			var paths []string
			for _, p := range rel.Paths {
				if p.Class == ClassSingleDescent {
					paths = append(paths, p.D)
				}
			}
			if tt.wantPath == "" {
				if len(paths) != 0 {
					t.Errorf("paths = %v, want none", paths)
				}
				return
			}
			if len(paths) != 1 || paths[0] != tt.wantPath {
				t.Errorf("paths = %v, want [%s]", paths, tt.wantPath)
			}
		})
	}
}

func TestBuildRelationsCoupleWithOneRecordedParent(t *testing.T) {
	fx := build(t, family.Family{
		Persons: []family.Person{
			person("dad", family.GenderMale),
			person("mom", family.GenderFemale),
			person("kid", family.GenderMale),
		},
		Relationships: []family.Relationship{
			{Kind: family.KindCouple, Participant1: "dad", Participant2: "mom"},
			parentOf("dad", "kid"),
		},
	})

	rel := BuildRelations(fx.idx, fx.l, nil)
	tests := []struct {
		class string
		want  int
	}{
		{ClassCoupleBar, 1},
		{ClassDescent, 0},
		{ClassDistribution, 0},
		{ClassChildDrop, 0},
		{ClassSingleDescent, 1},
	}
	for _, tt := range tests {
		if got := rel.Count(tt.class); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.class, got, tt.want)
		}
	}

	half := fx.l.Metrics.IconSize / 2
	dad, kid := fx.l.Positions["dad"], fx.l.Positions["kid"]
	if dad.X == kid.X {
		t.Fatalf("dad and kid aligned at x=%v, want an elbow", dad.X)
	}
	py, cy := dad.Y+fx.l.Metrics.IconSize, kid.Y
	want := "M " + styles.Num(dad.X+half) + " " + styles.Num(py) +
		" V " + styles.Num((py+cy)/2) +
		" H " + styles.Num(kid.X+half) + " V " + styles.Num(cy)
	if len(rel.Paths) != 1 || rel.Paths[0].D != want {
		t.Errorf("Paths = %+v, want one %q", rel.Paths, want)
	}
}

func TestBuildRelationsNuclear(t *testing.T) {
	fx := build(t, nuclearFamily())
	if fx.l.Strategy != layout.StrategyCompact {
		t.Errorf("strategy = %q, want compact", fx.l.Strategy)
	}

	rel := BuildRelations(fx.idx, fx.l, nil)
	bars := rel.LinesOf(ClassCoupleBar)
	dists := rel.LinesOf(ClassDistribution)
	if len(bars) != 1 || len(dists) != 1 {
		t.Fatalf("bars = %d, distributions = %d, want 1 and 1", len(bars), len(dists))
	}
	if bars[0].Y1 >= dists[0].Y1 {
		t.Errorf("couple bar y = %v, want above distribution y = %v", bars[0].Y1, dists[0].Y1)
	}
	if got := rel.Count(ClassChildDrop); got != 2 {
		t.Errorf("child drops = %d, want 2", got)
	}
	if got := rel.Count(ClassDescent); got != 1 {
		t.Errorf("descents = %d, want 1", got)
	}
	if got := rel.Count(ClassSingleDescent); got != 0 {
		t.Errorf("single descents = %d, want 0", got)
	}

	for _, d := range rel.LinesOf(ClassChildDrop) {
		if d.Y1 != dists[0].Y1 {
			t.Errorf("child drop starts at %v, want %v", d.Y1, dists[0].Y1)
		}
	}
}

func TestBuildRelationsStatusAndIcons(t *testing.T) {
	raw := coupleFamily()
	raw.Relationships[0].MaritalStatus = family.StatusDivorced
	raw.Relationships[0].Quality = family.QualityConflictive
	fx := build(t, raw)

	icons := mapIcons{"relationships/conflictive.svg": `<svg xmlns="http://www.w3.org/2000/svg"/>`}
	rel := BuildRelations(fx.idx, fx.l, icons)

	if got := rel.Count(ClassStatusMark); got != 2 {
		t.Errorf("status marks = %d, want 2", got)
	}
	if len(rel.Icons) != 1 {
		t.Fatalf("icons = %d, want 1", len(rel.Icons))
	}
	if !strings.HasPrefix(rel.Icons[0].Href, "data:image/svg+xml;base64,") {
		t.Errorf("icon href = %q, want data URI", rel.Icons[0].Href)
	}
	if !slices.Equal(rel.Missing, []string{"marital/divorced.svg"}) {
		t.Errorf("Missing = %v, want [marital/divorced.svg]", rel.Missing)
	}
}

func TestSpanishIconTree(t *testing.T) {
	raw := coupleFamily()
	raw.Persons[1].Conditions = []family.Condition{family.ConditionTreatment}
	raw.Relationships[0].Quality = family.QualityDistant
	fx := build(t, raw)

	const stub = `<svg xmlns="http://www.w3.org/2000/svg"/>`
	icons := mapIcons{
		"mujer_nina/mujer_tratamiento.svg":                              stub,
		"estado_civil/casados/casados_horizontal.svg":                   stub,
		"relaciones/relacion_distante/relacion_distante_horizontal.svg": stub,
	}

	rel := BuildRelations(fx.idx, fx.l, icons)
	if len(rel.Icons) != 2 || len(rel.Missing) != 0 {
		t.Errorf("icons = %d, missing = %v, want 2 and none", len(rel.Icons), rel.Missing)
	}

	doc := Assemble(fx.fam, fx.idx, fx.l, WithIcons(icons))
	if len(doc.Missing) != 0 {
		t.Errorf("Missing = %v, want none", doc.Missing)
	}
	if got := strings.Count(string(doc.SVG), `class="badge"`); got != 1 {
		t.Errorf("badges = %d, want 1 from the Spanish tree", got)
	}
}

func TestIconAliases(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"male/treatment.svg", "hombre_nino/hombre_tratamiento.svg"},
		{"female/substance-use.svg", "mujer_nina/mujer_presuncion_consumo_sustancias.svg"},
		{"female/single-parent.svg", "mujer_nina/mujer_madre_soltera.svg"},
		{"male/gay.svg", "hombre_nino/hombre_gay.svg"},
		{"marital/divorced.svg", "estado_civil/divorciado/divorciado.svg"},
		{"relationships/toxic.svg", "relaciones/relacion_toxica_simbiotica/relacion_toxica_simbiotica_horizontal.svg"},
		{TwinsIconPath, "parentesco/gemelos/gemelos.svg"},
	}
	for _, tt := range tests {
		if got := IconAliases(tt.path); !slices.Contains(got, tt.want) {
			t.Errorf("IconAliases(%q) = %v, want %q among them", tt.path, got, tt.want)
		}
	}
	if got := IconAliases("female/illness.svg"); got != nil {
		t.Errorf("IconAliases(female/illness.svg) = %v, want none", got)
	}
}

func TestBuildRelationsTwins(t *testing.T) {
	raw := nuclearFamily()
	raw.Relationships = append(raw.Relationships, family.Relationship{
		Kind: family.KindTwins, Participant1: "ana", Participant2: "luis",
	})
	fx := build(t, raw)

	rel := BuildRelations(fx.idx, fx.l, mapIcons{TwinsIconPath: "<svg/>"})
	if got := rel.Count(ClassTwinBar); got != 1 {
		t.Errorf("twin bars = %d, want 1", got)
	}
	if got := rel.Count(ClassTwinLink); got != 2 {
		t.Errorf("twin links = %d, want 2", got)
	}
	if len(rel.Icons) != 1 {
		t.Errorf("icons = %d, want 1", len(rel.Icons))
	}
}

func TestBadgePath(t *testing.T) {
	tests := []struct {
		name string
		p    family.Person
		want string
	}{
		{"none", person("a", family.GenderMale), ""},
		{"pregnant", person("a", family.GenderFemale, family.ConditionPregnant), "female/pregnant.svg"},
		{"diagnosis wins", person("a", family.GenderMale, family.ConditionTreatment, family.ConditionFixedDiagnosis), "male/fixed-diagnosis.svg"},
		{"treatment and substance", person("a", family.GenderMale, family.ConditionSubstanceUse, family.ConditionTreatment), "male/treatment-substance-use.svg"},
		{"orientation", family.Person{Gender: family.GenderFemale, Orientation: family.OrientationLesbian}, "female/lesbian.svg"},
		{"orientation and substance", family.Person{Orientation: family.OrientationGay, Conditions: []family.Condition{family.ConditionSubstanceUse}}, "male/gay-substance-use.svg"},
		{"heterosexual ignored", family.Person{Orientation: family.OrientationHeterosexual}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BadgePath(tt.p); got != tt.want {
				t.Errorf("BadgePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	raw := nuclearFamily()
	raw.Persons[1].Conditions = []family.Condition{family.ConditionPregnant}
	raw.Relationships = append(raw.Relationships, parentOf("dad", "ghost1"))
	fx := build(t, raw)

	doc := Assemble(fx.fam, fx.idx, fx.l)
	svg := string(doc.SVG)

	if !strings.HasPrefix(svg, `<svg id="genogram-svg"`) {
		t.Errorf("document does not start with the genogram svg element: %.60s", svg)
	}
	if got := strings.Count(svg, `class="person"`); got != len(fx.fam.Persons) {
		t.Errorf("person groups = %d, want %d", got, len(fx.fam.Persons))
	}
	for _, p := range fx.fam.Persons {
		if got := strings.Count(svg, `id="person-`+p.ID+`"`); got != 1 {
			t.Errorf("person %s drawn %d times, want 1", p.ID, got)
		}
	}
	if !strings.Contains(svg, `id="person-ghost1"`) {
		t.Error("placeholder ghost1 not drawn")
	}
	if strings.Index(svg, `class="couple-bar"`) > strings.Index(svg, `class="person"`) {
		t.Error("connectors must be drawn before persons")
	}
	if !slices.Contains(doc.Missing, "female/pregnant.svg") {
		t.Errorf("Missing = %v, want female/pregnant.svg", doc.Missing)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		t.Errorf("extent = %vx%v, want positive", doc.Width, doc.Height)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	a := build(t, nuclearFamily())
	b := build(t, nuclearFamily())
	if string(RenderSVG(a.fam, a.idx, a.l)) != string(RenderSVG(b.fam, b.idx, b.l)) {
		t.Error("identical input produced different SVG")
	}
}

func TestRenderHTML(t *testing.T) {
	fx := build(t, coupleFamily())
	svg := RenderSVG(fx.fam, fx.idx, fx.l)

	page, err := RenderHTML(svg, WithTitle("Familia <Pérez>"))
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	html := string(page)
	for _, want := range []string{
		"svg-pan-zoom@3.6.1",
		"svgPanZoom('#genogram-svg'",
		`id="zoom-in"`,
		`id="fit"`,
		`<svg id="genogram-svg"`,
		"Familia &lt;Pérez&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderHTMLDefaultTitle(t *testing.T) {
	page, err := RenderHTML([]byte("<svg/>"))
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	if !strings.Contains(string(page), "<title>"+DefaultTitle+"</title>") {
		t.Error("default title not used")
	}
}

func TestRenderJSON(t *testing.T) {
	fx := build(t, nuclearFamily())
	data, err := RenderJSON(fx.fam, fx.idx, fx.l, WithJSONGeneration(fx.gen), WithJSONStyle("classic"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Persons) != 4 {
		t.Errorf("persons = %d, want 4", len(out.Persons))
	}
	if out.Layout != string(layout.StrategyCompact) {
		t.Errorf("layout = %q, want compact", out.Layout)
	}
	if out.Strategy != string(generation.StrategyRoots) || out.Focal != "" {
		t.Errorf("strategy = %q focal = %q, want roots", out.Strategy, out.Focal)
	}
	if out.Style != "classic" {
		t.Errorf("style = %q, want classic", out.Style)
	}
	if len(out.Couples) != 1 || len(out.Edges) != 4 {
		t.Errorf("couples = %d edges = %d, want 1 and 4", len(out.Couples), len(out.Edges))
	}
	for _, p := range out.Persons {
		if p.ID == "luis" && p.Generation != 1 {
			t.Errorf("luis generation = %d, want 1", p.Generation)
		}
	}
}
