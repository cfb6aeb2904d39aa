// Package xsdmodel compiles XML-Schema-style grammar definitions into Go
// model source files with field-level constraint directives, plus the
// document-level FromXML/ToXML behaviors emitted into the generated file.
package xsdmodel

import (
	"fmt"
	"os"

	"xsdmodel/internal/compile"
	"xsdmodel/internal/gen"
	"xsdmodel/internal/schema"
	"xsdmodel/xmlmap"
)

// DefaultMaxDepth bounds the collection-path traversal of self-referential
// schemas.
const DefaultMaxDepth = 16

// DefaultRuntimeImport is the import path generated code uses for its
// runtime support package.
const DefaultRuntimeImport = "xsdmodel/xmlmap"

// Options configures one compilation.
type Options struct {
	// OutputPath, when non-empty, receives the generated source; the
	// text is returned either way.
	OutputPath string
	// PackageName of the generated file. Defaults to "model".
	PackageName string
	// RuntimeImport overrides the generated file's runtime import path.
	RuntimeImport string
	// MaxDepth bounds the collection-path traversal. Defaults to
	// DefaultMaxDepth.
	MaxDepth int
}

// schemaListKeys are the schema constructs that always parse as lists.
var schemaListKeys = []string{"xsd:element", "xsd:attribute", "xsd:enumeration"}

// Compile reads a schema document from a local path or HTTP(S) URL and
// returns the generated model source. Compilation is one synchronous
// pass: a structural-validity failure or a facet coercion failure is
// fatal and produces no output, and compiling the same source twice
// yields byte-identical text.
func Compile(source string, opts Options) (string, error) {
	if opts.PackageName == "" {
		opts.PackageName = "model"
	}

	if opts.RuntimeImport == "" {
		opts.RuntimeImport = DefaultRuntimeImport
	}

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	data, err := xmlmap.Load(source, xmlmap.WithForceListKeys(schemaListKeys...))
	if err != nil {
		return "", err
	}

	root, ok := data["xsd:schema"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("root node not present, this does not look like an XSD document")
	}

	doc, err := schema.ParseDocument(root)
	if err != nil {
		return "", err
	}

	st := compile.Compile(doc, documentData(root))
	paths := gen.CollectionPaths(doc, opts.MaxDepth)

	out, err := gen.Emit(st, paths, gen.Config{
		PackageName:   opts.PackageName,
		RuntimeImport: opts.RuntimeImport,
	})
	if err != nil {
		return "", err
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, []byte(out), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
		}
	}

	return out, nil
}

// documentData captures the schema root's attribute entries; the capture
// is read-only for the rest of the compilation.
func documentData(root map[string]any) map[string]string {
	out := make(map[string]string)

	for k, v := range root {
		if len(k) == 0 || k[0] != '@' {
			continue
		}

		if s, ok := v.(string); ok {
			out[k] = s
		}
	}

	return out
}
