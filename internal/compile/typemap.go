package compile

import (
	"fmt"
	"strings"

	"xsdmodel/internal/common"
)

// RuntimePackage is the logical name of the generated code's runtime
// support package; the emitter resolves it to a concrete import path.
const RuntimePackage = "xmlmap"

// typeMapping is one row of the primitive table: the Go scalar an XSD
// primitive maps to, an optional validation rule applied wherever the
// primitive is consumed, and the package the scalar needs.
type typeMapping struct {
	GoType string
	Rule   string
	Import string
}

// xsdTypes maps XSD primitive type names to their Go representation.
var xsdTypes = map[string]typeMapping{
	"xsd:double":             {GoType: "float64"},
	"xsd:float":              {GoType: "float64"},
	"xsd:decimal":            {GoType: "float64"},
	"xsd:integer":            {GoType: "int"},
	"xsd:positiveInteger":    {GoType: "int", Rule: "gt=0"},
	"xsd:nonNegativeInteger": {GoType: "int", Rule: "gte=0"},
	"xsd:unsignedByte":       {GoType: "int", Rule: "gte=0,lt=256"},
	"xsd:unsignedShort":      {GoType: "int", Rule: "gte=0,lt=65536"},
	"xsd:unsignedInt":        {GoType: "int", Rule: "gte=0,lt=4294967296"},
	"xsd:string":             {GoType: "string"},
	"xsd:token":              {GoType: "string"},
	"xsd:boolean":            {GoType: "bool"},
	"xsd:dateTime":           {GoType: "time.Time", Import: "time"},
	"xsd:date":               {GoType: "time.Time", Import: "time"},
	"xsd:anyURI":             {GoType: "string", Rule: "uri"},
	"xsd:gYear":              {GoType: "string", Rule: `pattern=^[-]?\d{4,}(?:Z|[+-]\d{2}:?\d{2})?$`},
}

// isPrimitive reports whether typeName is a known XSD primitive.
func isPrimitive(typeName string) bool {
	_, ok := xsdTypes[typeName]
	return ok
}

// baseType resolves a declared type name for the consumer named name.
//
// Known primitives map through the table; when the mapping carries a
// validation rule and compilation is inside complex-type context, a named
// constrained alias is synthesized into the state's simple types and the
// alias name is returned instead of the bare scalar. Every known-primitive
// lookup also records a base-type alias under the consumer's name. Unknown
// type names are forward references and come back as normalized bare
// identifiers, resolved when the generated package is compiled.
func baseType(name, typeName string, st *State) (string, string) {
	m, ok := xsdTypes[typeName]
	if !ok {
		return common.ExportName(typeName), ""
	}

	goType := m.GoType
	rule := m.Rule

	if m.Import != "" {
		st.TypeImports.Add(m.Import)
	}

	if rule != "" && st.inComplex && strings.HasPrefix(typeName, "xsd:") {
		alias := common.ExportName(strings.TrimPrefix(typeName, "xsd:"))
		st.SimpleTypes.Set(alias, renderConstrainedType(alias, goType, []string{rule}))
		goType = alias
	}

	st.BaseTypeAliases.Set(common.ExportName(name), goType)

	return goType, rule
}

// renderConstrainedType renders a defined type carrying its validation
// rules as a directive comment.
func renderConstrainedType(name, goType string, rules []string) string {
	var b strings.Builder
	if len(rules) > 0 {
		fmt.Fprintf(&b, "// xsdmodel:validate %s\n", strings.Join(rules, ","))
	}

	fmt.Fprintf(&b, "type %s %s\n", name, goType)

	return b.String()
}
