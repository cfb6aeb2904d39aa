// Package gen renders a compiled State into one ordered Go source body
// and computes the force-collection path set baked into the generated
// document parsing routine.
package gen

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"xsdmodel/internal/common"
	"xsdmodel/internal/compile"
)

// Config controls rendering of the generated file.
type Config struct {
	// PackageName is the package name of the generated file.
	PackageName string
	// RuntimeImport is the import path of the xmlmap runtime package
	// consumed by the generated document behaviors.
	RuntimeImport string
}

// Emit renders the state into a complete model-definition source file:
// header, one merged import declaration, base-type aliases (with
// schema-declared simple types taking priority), remaining simple types,
// abstract classes, concrete classes, the Document root model with its
// captured schema attributes, and the document-level FromXML/ToXML
// behaviors. The result is formatted with the import-aware formatter; a
// formatting failure is fatal and produces no output.
func Emit(st *compile.State, collectionPaths []string, cfg Config) (string, error) {
	var b strings.Builder

	b.WriteString("// Code generated by xsdmodel. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", cfg.PackageName)

	hasDoc := st.DocumentAttributes.Len() > 0
	writeImports(&b, st, cfg, hasDoc)

	// Base-type aliases: an explicitly declared simple type with the same
	// name always wins over a synthesized alias, and is emitted here so it
	// never appears twice. Alias names shadowed by generated classes are
	// suppressed; one name cannot carry two top-level declarations.
	promoted := common.NewStringSet()

	for _, name := range st.BaseTypeAliases.Keys() {
		if body, ok := st.SimpleTypes.Get(name); ok {
			b.WriteString(body + "\n")
			promoted.Add(name)

			continue
		}

		if st.Classes.Has(name) || st.AbstractClasses.Has(name) {
			continue
		}

		prim, _ := st.BaseTypeAliases.Get(name)
		fmt.Fprintf(&b, "type %s = %s\n\n", name, prim)
	}

	for _, name := range st.SimpleTypes.Keys() {
		if promoted.Has(name) {
			continue
		}

		body, _ := st.SimpleTypes.Get(name)
		b.WriteString(body + "\n")
	}

	for _, body := range st.AbstractClasses.Values() {
		b.WriteString(body + "\n")
	}

	for _, body := range st.Classes.Values() {
		b.WriteString(body + "\n")
	}

	writeDocument(&b, st)

	if hasDoc {
		writeDocumentBehaviors(&b, st, collectionPaths)
	}

	formatted, err := imports.Process(cfg.PackageName+".go", []byte(b.String()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to format generated model: %w", err)
	}

	return string(formatted), nil
}

// writeImports renders the single merged import declaration: the standard
// packages required by rendered types first, then the runtime group.
func writeImports(b *strings.Builder, st *compile.State, cfg Config, hasDoc bool) {
	std := common.NewStringSet()
	for imp := range st.TypeImports {
		std.Add(imp)
	}

	needRuntime := st.Imports.Has(compile.RuntimePackage) || hasDoc
	if hasDoc {
		std.Add("os")
	}

	if len(std) == 0 && !needRuntime {
		return
	}

	b.WriteString("import (\n")

	for _, imp := range std.Sorted() {
		fmt.Fprintf(b, "\t%q\n", imp)
	}

	if needRuntime {
		if len(std) > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(b, "\t%q\n", cfg.RuntimeImport)
	}

	b.WriteString(")\n\n")
}

// writeDocument renders the root document model and the captured schema
// attributes.
func writeDocument(b *strings.Builder, st *compile.State) {
	b.WriteString("// Document is the root document model.\n")

	if st.RootAnnotation != "" {
		fmt.Fprintf(b, "// %s\n", st.RootAnnotation)
	}

	b.WriteString("type Document struct {\n")

	for _, line := range st.DocumentAttributes.Values() {
		b.WriteString("\t" + line + "\n")
	}

	b.WriteString("}\n\n")

	b.WriteString("// xsdData holds the namespace and document-level attributes captured\n")
	b.WriteString("// from the source schema.\n")
	b.WriteString("var xsdData = map[string]string{\n")

	keys := make([]string, 0, len(st.XSDData))
	for k := range st.XSDData {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, "\t%q: %q,\n", k, st.XSDData[k])
	}

	b.WriteString("}\n\n")
}

// writeDocumentBehaviors renders the parse-from-source and
// serialize-to-source routines with the force-collection path set and the
// first-declared root element name baked in.
func writeDocumentBehaviors(b *strings.Builder, st *compile.State, collectionPaths []string) {
	b.WriteString("// forceListPaths marks the field paths that must decode as collections\n")
	b.WriteString("// even when a single occurrence is present in the source document.\n")
	b.WriteString("var forceListPaths = map[string]bool{\n")

	for _, p := range collectionPaths {
		fmt.Fprintf(b, "\t%q: true,\n", p)
	}

	b.WriteString("}\n\n")

	fmt.Fprintf(b, "const rootName = %q\n\n", st.DocumentAttributes.Keys()[0])

	b.WriteString(`// FromXML loads an XML document from a local path or HTTP(S) URL and
// decodes it into a Document.
func FromXML(pathOrURL string) (*Document, error) {
	data, err := xmlmap.Load(pathOrURL, xmlmap.WithForceListPaths(forceListPaths))
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := xmlmap.Decode(data, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ToXML serializes the document to XML text, reinjecting the namespace
// attributes captured at compile time (restricted to namespaceKeys when
// non-nil). When path is non-empty the text is also written there.
func (d *Document) ToXML(path string, namespaceKeys []string) (string, error) {
	data, err := xmlmap.Encode(d)
	if err != nil {
		return "", err
	}

	if root, ok := data[rootName].(map[string]any); ok {
		keys := namespaceKeys
		if keys == nil {
			for k := range xsdData {
				keys = append(keys, k)
			}
		}

		for _, k := range keys {
			if v, ok := xsdData[k]; ok {
				root[k] = v
			}
		}
	}

	out, err := xmlmap.Unparse(data)
	if err != nil {
		return "", err
	}

	if path != "" {
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return "", err
		}
	}

	return out, nil
}
`)
}
