// Package compile turns the schema AST into model-definition fragments.
//
// A single mutable State is threaded through every conversion call of one
// compilation run; the three-phase driver in Compile owns it for the
// duration of the run and the emitter consumes it afterwards. States are
// never shared across compilations.
package compile

import "xsdmodel/internal/common"

// State accumulates everything a compilation produces before emission.
type State struct {
	// XSDData is the read-only capture of the schema root's namespace
	// and document-level attributes.
	XSDData map[string]string

	// RootAnnotation is the schema-level documentation, set at most once.
	RootAnnotation string

	// DocumentAttributes maps root element names to rendered field
	// declarations, in source declaration order.
	DocumentAttributes *common.OrderedMap

	// BaseTypeAliases maps synthesized alias names to the primitive they
	// stand for, keyed by the consuming declaration's name.
	BaseTypeAliases *common.OrderedMap

	// SimpleTypes maps named-simple-type names to rendered declarations.
	// Synthesized constrained-primitive aliases land here too.
	SimpleTypes *common.OrderedMap

	// TypeImports and Imports grow monotonically: TypeImports holds
	// standard-library packages required by rendered type expressions,
	// Imports holds logical support packages (the xmlmap runtime).
	TypeImports common.StringSet
	Imports     common.StringSet

	// AbstractClasses and Classes map complex-type names to rendered
	// struct bodies, kept apart so they can be ordered independently.
	AbstractClasses *common.OrderedMap
	Classes         *common.OrderedMap

	// inComplex is true only while the driver walks complex types; it
	// gates constrained-primitive alias synthesis so standalone named
	// simple types don't register duplicate top-level aliases.
	inComplex bool
}

// NewState returns a fresh State for one compilation run.
func NewState(xsdData map[string]string) *State {
	return &State{
		XSDData:            xsdData,
		DocumentAttributes: common.NewOrderedMap(),
		BaseTypeAliases:    common.NewOrderedMap(),
		SimpleTypes:        common.NewOrderedMap(),
		TypeImports:        common.NewStringSet(),
		Imports:            common.NewStringSet(),
		AbstractClasses:    common.NewOrderedMap(),
		Classes:            common.NewOrderedMap(),
	}
}
