package compile

import (
	"xsdmodel/internal/common"
	"xsdmodel/internal/schema"
)

// Compile runs the three-phase depth-first walk over one schema document
// with a fresh State and returns it for emission.
//
// Complex types go first so that derived types' base names are known
// before anything references them; root elements are converted outside
// complex-type context, as are named simple types, so top-level aliases
// are not double-registered. A later declaration with the same name
// silently overwrites an earlier one.
func Compile(doc *schema.Document, xsdData map[string]string) *State {
	st := NewState(xsdData)

	if doc.Annotation != nil {
		st.RootAnnotation = doc.Annotation.Text()
	}

	st.inComplex = true

	for i := range doc.ComplexTypes {
		ct := &doc.ComplexTypes[i]
		name := common.ExportName(ct.Name)
		body := convertComplexType(ct, st)

		if ct.Abstract {
			st.AbstractClasses.Set(name, body)
		} else {
			st.Classes.Set(name, body)
		}
	}

	st.inComplex = false

	for i := range doc.Elements {
		e := &doc.Elements[i]
		st.DocumentAttributes.Set(e.Name, convertElement(e, st))
	}

	for i := range doc.SimpleTypes {
		sp := &doc.SimpleTypes[i]
		st.SimpleTypes.Set(common.ExportName(sp.Name), convertSimpleType(sp, st))
	}

	return st
}
