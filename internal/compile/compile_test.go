package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsdmodel/internal/schema"
)

func intPtr(n int) *int { return &n }

func TestConvertElement_OccurrenceHandling(t *testing.T) {
	st := NewState(nil)

	required := schema.Element{Name: "Name", Type: "xsd:string"}
	assert.Equal(t, "Name string `xml:\"Name\"`", convertElement(&required, st))

	optional := schema.Element{Name: "Note", Type: "xsd:string", MinOccurs: intPtr(0)}
	assert.Equal(t, "Note *string `xml:\"Note,omitempty\"`", convertElement(&optional, st))

	repeated := schema.Element{Name: "Tag", Type: "xsd:string", MaxOccurs: schema.Unbounded}
	assert.Equal(t, "Tag []string `xml:\"Tag\"`", convertElement(&repeated, st))

	// Optional and unbounded is a plain slice with an empty default,
	// never a pointer to a slice.
	both := schema.Element{Name: "Id", Type: "xsd:integer", MinOccurs: intPtr(0), MaxOccurs: schema.Unbounded}
	assert.Equal(t, "Id []int `xml:\"Id,omitempty\"`", convertElement(&both, st))
}

func TestConvertElement_ForwardReference(t *testing.T) {
	st := NewState(nil)

	el := schema.Element{Name: "Library", Type: "Library_t"}
	assert.Equal(t, "Library LibraryT `xml:\"Library\"`", convertElement(&el, st))

	// Forward references are not primitives; no alias is registered.
	assert.False(t, st.BaseTypeAliases.Has("Library"))
}

func TestConvertElement_AnnotationBecomesComment(t *testing.T) {
	st := NewState(nil)

	el := schema.Element{
		Name:       "Name",
		Type:       "xsd:string",
		Annotation: &schema.Annotation{Documentation: "Display name."},
	}
	assert.Equal(t, "Name string `xml:\"Name\"` // Display name.", convertElement(&el, st))
}

func TestConvertAttribute_WireAlias(t *testing.T) {
	st := NewState(nil)

	at := schema.Attribute{Name: "version", Type: "xsd:string", Use: "required"}
	assert.Equal(t, "Version string `xml:\"version,attr\"`", convertAttribute(&at, st))
}

func TestBaseType_SynthesizesAliasOnlyInComplexContext(t *testing.T) {
	st := NewState(nil)
	st.inComplex = true

	goType, rule := baseType("Speed", "xsd:positiveInteger", st)
	assert.Equal(t, "PositiveInteger", goType)
	assert.Equal(t, "gt=0", rule)

	body, ok := st.SimpleTypes.Get("PositiveInteger")
	require.True(t, ok)
	assert.Contains(t, body, "// xsdmodel:validate gt=0")
	assert.Contains(t, body, "type PositiveInteger int")

	alias, ok := st.BaseTypeAliases.Get("Speed")
	require.True(t, ok)
	assert.Equal(t, "PositiveInteger", alias)

	// Outside complex-type context the caller is itself defining a named
	// simple type; no alias may be synthesized.
	st2 := NewState(nil)

	goType, rule = baseType("Speed", "xsd:positiveInteger", st2)
	assert.Equal(t, "int", goType)
	assert.Equal(t, "gt=0", rule)
	assert.Zero(t, st2.SimpleTypes.Len())
}

func TestBaseType_RegistersTypeImports(t *testing.T) {
	st := NewState(nil)

	goType, _ := baseType("Created", "xsd:dateTime", st)
	assert.Equal(t, "time.Time", goType)
	assert.True(t, st.TypeImports.Has("time"))
}

func TestConvertComplexType_ExtensionEmbedsBase(t *testing.T) {
	st := NewState(nil)
	st.inComplex = true

	ct := schema.ComplexType{
		Name: "Course_t",
		ComplexContent: &schema.ComplexContent{
			Extension: schema.Extension{
				Base: "AbstractSource_t",
				Sequence: &schema.Sequence{
					Elements: []schema.Element{{Name: "Notes", Type: "xsd:string", MinOccurs: intPtr(0)}},
				},
			},
		},
	}

	body := convertComplexType(&ct, st)
	assert.Contains(t, body, "type CourseT struct {\n\tAbstractSourceT\n")
	assert.Contains(t, body, "Notes *string `xml:\"Notes,omitempty\"`")
}

func TestConvertComplexType_AbstractEmbedsMarker(t *testing.T) {
	st := NewState(nil)
	st.inComplex = true

	ct := schema.ComplexType{Name: "Source_t", Abstract: true}

	body := convertComplexType(&ct, st)
	assert.Contains(t, body, "xmlmap.Abstract")
	assert.True(t, st.Imports.Has(RuntimePackage))
}

func TestConvertSimpleType_Enumeration(t *testing.T) {
	st := NewState(nil)

	sp := schema.SimpleType{
		Name: "Grade_t",
		Restriction: schema.Restriction{
			Base:        "xsd:string",
			Enumeration: []string{"A", "B"},
		},
	}

	body := convertSimpleType(&sp, st)
	assert.Contains(t, body, "type GradeT string")
	assert.Contains(t, body, "GradeTA GradeT = \"A\"")
	assert.Contains(t, body, "GradeTB GradeT = \"B\"")
	assert.NotContains(t, body, "= string", "enumerations never fall back to the base type")
}

func TestConvertSimpleType_FacetsCombineConjunctively(t *testing.T) {
	st := NewState(nil)

	maxLen := 10

	sp := schema.SimpleType{
		Name: "Token10_t",
		Restriction: schema.Restriction{
			Base:      "xsd:string",
			Pattern:   "[A-Z]+",
			MaxLength: &maxLen,
		},
	}

	body := convertSimpleType(&sp, st)
	assert.Contains(t, body, "// xsdmodel:validate pattern=[A-Z]+,max=10")
	assert.Contains(t, body, "type Token10T string")
}

func TestConvertSimpleType_NoFacetsYieldsUnconstrainedAlias(t *testing.T) {
	st := NewState(nil)

	sp := schema.SimpleType{
		Name:        "Label_t",
		Restriction: schema.Restriction{Base: "xsd:string"},
	}

	assert.Equal(t, "type LabelT = string\n", convertSimpleType(&sp, st))
}

func TestCompile_ThreePhases(t *testing.T) {
	doc := &schema.Document{
		Annotation: &schema.Annotation{Documentation: "Root doc."},
		Elements: []schema.Element{
			{Name: "Library", Type: "Library_t"},
		},
		ComplexTypes: []schema.ComplexType{
			{Name: "Library_t", Sequence: &schema.Sequence{
				Elements: []schema.Element{{Name: "Rank", Type: "xsd:positiveInteger"}},
			}},
			{Name: "Source_t", Abstract: true},
		},
		SimpleTypes: []schema.SimpleType{
			{Name: "Label_t", Restriction: schema.Restriction{Base: "xsd:string"}},
		},
	}

	st := Compile(doc, map[string]string{"@targetNamespace": "urn:x"})

	assert.Equal(t, "Root doc.", st.RootAnnotation)
	assert.True(t, st.Classes.Has("LibraryT"))
	assert.True(t, st.AbstractClasses.Has("SourceT"))
	assert.Equal(t, []string{"Library"}, st.DocumentAttributes.Keys())

	// Phase 1 runs in complex context: the constrained primitive used by
	// Library_t synthesized a named alias.
	assert.True(t, st.SimpleTypes.Has("PositiveInteger"))
	assert.True(t, st.SimpleTypes.Has("LabelT"))

	// The driver never mutates the capture.
	assert.Equal(t, map[string]string{"@targetNamespace": "urn:x"}, st.XSDData)
}

func TestCompile_LastWriteWins(t *testing.T) {
	doc := &schema.Document{
		ComplexTypes: []schema.ComplexType{
			{Name: "Item_t", Sequence: &schema.Sequence{
				Elements: []schema.Element{{Name: "A", Type: "xsd:string"}},
			}},
			{Name: "Item_t", Sequence: &schema.Sequence{
				Elements: []schema.Element{{Name: "B", Type: "xsd:string"}},
			}},
		},
	}

	st := Compile(doc, nil)

	require.Equal(t, []string{"ItemT"}, st.Classes.Keys())

	body, _ := st.Classes.Get("ItemT")
	assert.Contains(t, body, "`xml:\"B\"`")
	assert.NotContains(t, body, "`xml:\"A\"`")
}
