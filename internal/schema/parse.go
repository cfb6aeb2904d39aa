package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// floatBases are the primitive bases whose numeric facets keep their
// fractional part.
var floatBases = map[string]bool{
	"xsd:double":  true,
	"xsd:float":   true,
	"xsd:decimal": true,
}

// ParseDocument builds the schema AST from the mapping form of the root
// schema element (the value under the "xsd:schema" key). Facet coercion
// failures are fatal.
func ParseDocument(root map[string]any) (*Document, error) {
	if _, ok := root["@xmlns:xsd"]; !ok {
		return nil, fmt.Errorf("schema: missing @xmlns:xsd declaration")
	}

	target := attr(root, "@targetNamespace")
	if target == "" {
		return nil, fmt.Errorf("schema: missing @targetNamespace attribute")
	}

	doc := &Document{
		TargetNamespace:    target,
		ElementFormDefault: attr(root, "@elementFormDefault"),
	}

	switch doc.ElementFormDefault {
	case "", "qualified", "unqualified":
	default:
		return nil, fmt.Errorf("schema: unsupported elementFormDefault %q", doc.ElementFormDefault)
	}

	var err error

	doc.Annotation, err = parseAnnotation(root)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	for _, item := range children(root, "xsd:element") {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema: malformed xsd:element entry")
		}

		el, err := parseElement(m)
		if err != nil {
			return nil, err
		}

		doc.Elements = append(doc.Elements, el)
	}

	for _, item := range children(root, "xsd:complexType") {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema: malformed xsd:complexType entry")
		}

		ct, err := parseComplexType(m)
		if err != nil {
			return nil, err
		}

		doc.ComplexTypes = append(doc.ComplexTypes, ct)
	}

	for _, item := range children(root, "xsd:simpleType") {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema: malformed xsd:simpleType entry")
		}

		st, err := parseSimpleType(m)
		if err != nil {
			return nil, err
		}

		doc.SimpleTypes = append(doc.SimpleTypes, st)
	}

	return doc, nil
}

func parseElement(m map[string]any) (Element, error) {
	el := Element{
		Name: attr(m, "@name"),
		Type: attr(m, "@type"),
	}

	if el.Name == "" {
		return el, fmt.Errorf("element: missing @name attribute")
	}

	if el.Type == "" {
		return el, fmt.Errorf("element %s: missing @type attribute", el.Name)
	}

	if raw, ok := m["@minOccurs"]; ok {
		n, err := strconv.Atoi(text(raw))
		if err != nil {
			return el, fmt.Errorf("element %s: invalid minOccurs %q: %w", el.Name, text(raw), err)
		}

		el.MinOccurs = &n
	}

	if raw, ok := m["@maxOccurs"]; ok {
		v := text(raw)
		if v != Unbounded {
			if _, err := strconv.Atoi(v); err != nil {
				return el, fmt.Errorf("element %s: invalid maxOccurs %q: %w", el.Name, v, err)
			}
		}

		el.MaxOccurs = v
	}

	ann, err := parseAnnotation(m)
	if err != nil {
		return el, fmt.Errorf("element %s: %w", el.Name, err)
	}

	el.Annotation = ann

	return el, nil
}

func parseAttribute(m map[string]any) (Attribute, error) {
	at := Attribute{
		Name: attr(m, "@name"),
		Type: attr(m, "@type"),
		Use:  attr(m, "@use"),
	}

	if at.Name == "" {
		return at, fmt.Errorf("attribute: missing @name attribute")
	}

	if at.Type == "" {
		return at, fmt.Errorf("attribute %s: missing @type attribute", at.Name)
	}

	if at.Use != "" && at.Use != "required" {
		return at, fmt.Errorf("attribute %s: unsupported use %q", at.Name, at.Use)
	}

	return at, nil
}

func parseSequence(m map[string]any) (*Sequence, error) {
	raw, ok := m["xsd:sequence"]
	if !ok || raw == nil {
		return nil, nil
	}

	sm, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("malformed xsd:sequence")
	}

	seq := &Sequence{}

	ann, err := parseAnnotation(sm)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}

	seq.Annotation = ann

	for _, item := range children(sm, "xsd:element") {
		em, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("sequence: malformed xsd:element entry")
		}

		el, err := parseElement(em)
		if err != nil {
			return nil, err
		}

		seq.Elements = append(seq.Elements, el)
	}

	return seq, nil
}

func parseComplexType(m map[string]any) (ComplexType, error) {
	ct := ComplexType{Name: attr(m, "@name")}
	if ct.Name == "" {
		return ct, fmt.Errorf("complexType: missing @name attribute")
	}

	if raw, ok := m["@abstract"]; ok {
		b, err := strconv.ParseBool(text(raw))
		if err != nil {
			return ct, fmt.Errorf("complexType %s: invalid abstract %q: %w", ct.Name, text(raw), err)
		}

		ct.Abstract = b
	}

	ann, err := parseAnnotation(m)
	if err != nil {
		return ct, fmt.Errorf("complexType %s: %w", ct.Name, err)
	}

	ct.Annotation = ann

	ct.Sequence, err = parseSequence(m)
	if err != nil {
		return ct, fmt.Errorf("complexType %s: %w", ct.Name, err)
	}

	if raw, ok := m["xsd:complexContent"]; ok {
		cm, ok := raw.(map[string]any)
		if !ok {
			return ct, fmt.Errorf("complexType %s: malformed xsd:complexContent", ct.Name)
		}

		cc, err := parseComplexContent(cm)
		if err != nil {
			return ct, fmt.Errorf("complexType %s: %w", ct.Name, err)
		}

		ct.ComplexContent = cc
	}

	for _, item := range children(m, "xsd:attribute") {
		am, ok := item.(map[string]any)
		if !ok {
			return ct, fmt.Errorf("complexType %s: malformed xsd:attribute entry", ct.Name)
		}

		at, err := parseAttribute(am)
		if err != nil {
			return ct, fmt.Errorf("complexType %s: %w", ct.Name, err)
		}

		ct.Attributes = append(ct.Attributes, at)
	}

	return ct, nil
}

func parseComplexContent(m map[string]any) (*ComplexContent, error) {
	raw, ok := m["xsd:extension"]
	if !ok {
		return nil, fmt.Errorf("complexContent: missing xsd:extension")
	}

	em, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("complexContent: malformed xsd:extension")
	}

	ext := Extension{Base: attr(em, "@base")}
	if ext.Base == "" {
		return nil, fmt.Errorf("extension: missing @base attribute")
	}

	seq, err := parseSequence(em)
	if err != nil {
		return nil, fmt.Errorf("extension %s: %w", ext.Base, err)
	}

	ext.Sequence = seq

	return &ComplexContent{Extension: ext}, nil
}

func parseSimpleType(m map[string]any) (SimpleType, error) {
	st := SimpleType{Name: attr(m, "@name")}
	if st.Name == "" {
		return st, fmt.Errorf("simpleType: missing @name attribute")
	}

	raw, ok := m["xsd:restriction"]
	if !ok {
		return st, fmt.Errorf("simpleType %s: missing xsd:restriction", st.Name)
	}

	rm, ok := raw.(map[string]any)
	if !ok {
		return st, fmt.Errorf("simpleType %s: malformed xsd:restriction", st.Name)
	}

	r, err := parseRestriction(rm)
	if err != nil {
		return st, fmt.Errorf("simpleType %s: %w", st.Name, err)
	}

	st.Restriction = *r

	return st, nil
}

func parseRestriction(m map[string]any) (*Restriction, error) {
	r := &Restriction{Base: attr(m, "@base")}
	if r.Base == "" {
		return nil, fmt.Errorf("restriction: missing @base attribute")
	}

	ann, err := parseAnnotation(m)
	if err != nil {
		return nil, err
	}

	r.Annotation = ann

	for _, item := range children(m, "xsd:enumeration") {
		r.Enumeration = append(r.Enumeration, facetValue(item))
	}

	r.Length, err = intFacet(m, "xsd:length")
	if err != nil {
		return nil, err
	}

	r.MinLength, err = intFacet(m, "xsd:minLength")
	if err != nil {
		return nil, err
	}

	r.MaxLength, err = intFacet(m, "xsd:maxLength")
	if err != nil {
		return nil, err
	}

	if raw, ok := m["xsd:pattern"]; ok {
		r.Pattern = facetValue(raw)
	}

	if raw, ok := m["xsd:whiteSpace"]; ok {
		r.WhiteSpace = facetValue(raw)
		if r.WhiteSpace != "collapse" {
			return nil, fmt.Errorf("restriction: unsupported whiteSpace %q", r.WhiteSpace)
		}
	}

	r.MinInclusive, err = boundFacet(m, "xsd:minInclusive", r.Base)
	if err != nil {
		return nil, err
	}

	r.MaxInclusive, err = boundFacet(m, "xsd:maxInclusive", r.Base)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// intFacet coerces a counting facet ("xsd:length" and friends) to an int.
func intFacet(m map[string]any, key string) (*int, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}

	v := facetValue(raw)

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("restriction: invalid %s value %q: %w", key, v, err)
	}

	n := int(f)

	return &n, nil
}

// boundFacet coerces an inclusive bound and renders it relative to the
// restriction's base: float bases keep the fraction, integral bases
// truncate.
func boundFacet(m map[string]any, key, base string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", nil
	}

	v := facetValue(raw)

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", fmt.Errorf("restriction: invalid %s value %q: %w", key, v, err)
	}

	if floatBases[base] {
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}

	return strconv.Itoa(int(f)), nil
}

func parseAnnotation(m map[string]any) (*Annotation, error) {
	raw, ok := m["xsd:annotation"]
	if !ok || raw == nil {
		return nil, nil
	}

	am, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("malformed xsd:annotation")
	}

	doc, ok := am["xsd:documentation"]
	if !ok {
		return nil, fmt.Errorf("annotation: missing xsd:documentation")
	}

	return &Annotation{Documentation: text(doc)}, nil
}

// attr reads a scalar attribute value from the mapping.
func attr(m map[string]any, key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}

	return text(raw)
}

// text flattens a mapping value into its textual content: plain strings
// pass through, element maps yield their "#text" entry.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if inner, ok := t["#text"].(string); ok {
			return inner
		}
	}

	return ""
}

// facetValue reads a facet's "@value" attribute; facets are attribute-only
// elements so a bare string is accepted as well.
func facetValue(v any) string {
	if m, ok := v.(map[string]any); ok {
		return attr(m, "@value")
	}

	if s, ok := v.(string); ok {
		return s
	}

	return ""
}

// children returns the child entries under key as a list, wrapping a
// single occurrence. The schema loader force-lists the repeatable keys,
// so the wrap only fires for hand-built inputs.
func children(m map[string]any, key string) []any {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil
	}

	if list, ok := raw.([]any); ok {
		return list
	}

	return []any{raw}
}

// String implements fmt.Stringer for diagnostics.
func (e *Element) String() string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteString(" (")
	b.WriteString(e.Type)
	b.WriteString(")")

	return b.String()
}
