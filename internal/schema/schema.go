// Package schema defines the typed AST of an XML Schema document and its
// construction from the generic nested-mapping form produced by the XML
// document parser.
//
// Nodes are immutable once parsed. Conversion into model-definition
// fragments lives in internal/compile; this package is pure data plus the
// coercion rules for facet values.
package schema

import "strings"

// Unbounded is the maxOccurs value marking a repeatable element.
const Unbounded = "unbounded"

// Annotation is free-text documentation attached to a schema node.
type Annotation struct {
	Documentation string
}

// Text returns the documentation with every line trimmed and joined,
// suitable for a single comment line.
func (a *Annotation) Text() string {
	lines := strings.Split(a.Documentation, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.Join(lines, "")
}

// Attribute is an xsd:attribute declaration on a complex type.
type Attribute struct {
	Name string
	Type string
	// Use is parsed but not enforced; only "required" (or empty) is
	// accepted. TODO: enforce use="required" in emitted constraints.
	Use string
}

// Element is an xsd:element declaration.
type Element struct {
	Name string
	Type string
	// MinOccurs is nil when the attribute is absent, which means the
	// element is required. A present zero marks it optional.
	MinOccurs *int
	// MaxOccurs is "" when absent, Unbounded, or a decimal count.
	MaxOccurs  string
	Annotation *Annotation
}

// Required reports whether the element must be present.
func (e *Element) Required() bool {
	return e.MinOccurs == nil || *e.MinOccurs != 0
}

// Repeats reports whether the element may occur more than once.
func (e *Element) Repeats() bool {
	return e.MaxOccurs == Unbounded
}

// Sequence is an ordered list of element declarations.
type Sequence struct {
	Annotation *Annotation
	Elements   []Element
}

// Extension models a derived type's additional content on top of a base.
type Extension struct {
	Base     string
	Sequence *Sequence
}

// ComplexContent wraps an Extension; XSD's indirection layer for derived
// complex types.
type ComplexContent struct {
	Extension Extension
}

// ComplexType is a schema type with structured child content.
type ComplexType struct {
	Name           string
	Abstract       bool
	Annotation     *Annotation
	Sequence       *Sequence
	ComplexContent *ComplexContent
	Attributes     []Attribute
}

// Restriction narrows a base primitive with facets. Numeric facet values
// are coerced at parse time; min/max inclusive bounds are stored already
// rendered relative to the base type (integral bases truncate).
type Restriction struct {
	Base        string
	Annotation  *Annotation
	Enumeration []string
	Length      *int
	MinLength   *int
	MaxLength   *int
	Pattern     string
	WhiteSpace  string
	// MinInclusive and MaxInclusive are rendered literals; empty means
	// the facet is absent.
	MinInclusive string
	MaxInclusive string
}

// SimpleType is a named refinement of a primitive scalar.
type SimpleType struct {
	Name        string
	Restriction Restriction
}

// Document is the parsed schema root.
type Document struct {
	TargetNamespace    string
	ElementFormDefault string
	Annotation         *Annotation
	Elements           []Element
	ComplexTypes       []ComplexType
	SimpleTypes        []SimpleType
}
