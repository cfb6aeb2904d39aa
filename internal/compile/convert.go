package compile

import (
	"fmt"
	"strings"

	"xsdmodel/internal/common"
	"xsdmodel/internal/schema"
)

// convertAttribute renders an attribute as a scalar field declaration with
// an ,attr wire alias.
func convertAttribute(at *schema.Attribute, st *State) string {
	goType, _ := baseType(at.Name, at.Type, st)

	// use="required" is accepted but not enforced.
	return fmt.Sprintf("%s %s `xml:%q`", common.ExportName(at.Name), goType, at.Name+",attr")
}

// convertElement renders an element as a field declaration, applying the
// occurrence policy: required stays T, optional singular becomes *T with a
// nil default, unbounded becomes []T with an empty default (optional and
// unbounded is []T, never *[]T).
func convertElement(e *schema.Element, st *State) string {
	goType, _ := baseType(e.Name, e.Type, st)

	optional := !e.Required()

	switch {
	case e.Repeats():
		goType = "[]" + goType
	case optional:
		goType = "*" + goType
	}

	tag := e.Name
	if optional {
		tag += ",omitempty"
	}

	line := fmt.Sprintf("%s %s `xml:%q`", common.ExportName(e.Name), goType, tag)
	if e.Annotation != nil {
		line += " // " + e.Annotation.Text()
	}

	return line
}

// convertSequence renders the element declarations with the sequence's
// annotation as a leading comment line.
func convertSequence(seq *schema.Sequence, st *State) []string {
	var lines []string
	if seq.Annotation != nil {
		lines = append(lines, "// "+seq.Annotation.Text())
	}

	for i := range seq.Elements {
		lines = append(lines, convertElement(&seq.Elements[i], st))
	}

	return lines
}

// convertComplexType renders a full struct body. A complex-content
// extension embeds its base type and renders only the additional fields;
// abstract types additionally embed the runtime's Abstract marker.
func convertComplexType(ct *schema.ComplexType, st *State) string {
	name := common.ExportName(ct.Name)

	var b strings.Builder
	if ct.Annotation != nil {
		fmt.Fprintf(&b, "// %s: %s\n", name, ct.Annotation.Text())
	}

	fmt.Fprintf(&b, "type %s struct {\n", name)

	if ct.ComplexContent != nil {
		fmt.Fprintf(&b, "\t%s\n", common.ExportName(ct.ComplexContent.Extension.Base))
	}

	if ct.Abstract {
		st.Imports.Add(RuntimePackage)
		b.WriteString("\txmlmap.Abstract\n")
	}

	var lines []string

	switch {
	case ct.Sequence != nil:
		lines = convertSequence(ct.Sequence, st)
	case ct.ComplexContent != nil && ct.ComplexContent.Extension.Sequence != nil:
		lines = convertSequence(ct.ComplexContent.Extension.Sequence, st)
	}

	for i := range ct.Attributes {
		lines = append(lines, convertAttribute(&ct.Attributes[i], st))
	}

	for _, line := range lines {
		b.WriteString("\t" + line + "\n")
	}

	b.WriteString("}\n")

	return b.String()
}

// convertRestriction renders the present facets as an ordered list of
// validation rules; facets combine conjunctively.
func convertRestriction(r *schema.Restriction) []string {
	var rules []string

	if r.Pattern != "" {
		rules = append(rules, "pattern="+r.Pattern)
	}

	if r.Length != nil {
		rules = append(rules, fmt.Sprintf("len=%d", *r.Length))
	}

	if r.MaxLength != nil {
		rules = append(rules, fmt.Sprintf("max=%d", *r.MaxLength))
	}

	if r.MinLength != nil {
		rules = append(rules, fmt.Sprintf("min=%d", *r.MinLength))
	}

	if r.MaxInclusive != "" {
		rules = append(rules, "lte="+r.MaxInclusive)
	}

	if r.MinInclusive != "" {
		rules = append(rules, "gte="+r.MinInclusive)
	}

	if r.WhiteSpace != "" {
		rules = append(rules, "whitespace="+r.WhiteSpace)
	}

	return rules
}

// convertSimpleType renders a named alias of a constrained scalar, or a
// closed enumeration type when the enumeration facet is present.
func convertSimpleType(sp *schema.SimpleType, st *State) string {
	name := common.ExportName(sp.Name)
	r := &sp.Restriction

	if len(r.Enumeration) > 0 {
		return renderEnum(name, r.Enumeration)
	}

	goType, rule := baseType(sp.Name, r.Base, st)

	var rules []string
	if rule != "" {
		rules = append(rules, rule)
	}

	rules = append(rules, convertRestriction(r)...)

	if len(rules) == 0 {
		return fmt.Sprintf("type %s = %s\n", name, goType)
	}

	return renderConstrainedType(name, goType, rules)
}

// renderEnum renders a closed string type with one constant per literal.
func renderEnum(name string, values []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s is a closed set of literal values.\n", name)
	fmt.Fprintf(&b, "type %s string\n\nconst (\n", name)

	for _, v := range values {
		fmt.Fprintf(&b, "\t%s%s %s = %q\n", name, common.ExportName(v), name, v)
	}

	b.WriteString(")\n")

	return b.String()
}
