// Package main provides the CLI entrypoint for xsdmodel.
//
// xsdmodel compiles an XSD schema (local file or URL) into a Go model
// source file: typed structs for complex types, constrained named types
// for simple types, and document-level FromXML/ToXML behaviors.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"xsdmodel"
	"xsdmodel/internal/config"
	"xsdmodel/internal/schema"
	"xsdmodel/xmlmap"
)

const usage = `Usage: xsdmodel [options] <xsd-file-or-url>

Options:
  -c <file>     YAML config file
  -o <file>     Destination file [default: stdout]
  -p <package>  Package name of the generated file [default: model]
  -r <path>     Runtime import path for generated code
  -max-depth N  Collection-path traversal depth limit [default: 16]
  -dump         Print the parsed schema AST and exit
`

func main() {
	var (
		configPath string
		output     string
		pkg        string
		runtime    string
		maxDepth   int
		dump       bool
	)

	flag.StringVar(&configPath, "c", "", "YAML config file")
	flag.StringVar(&output, "o", "", "destination file")
	flag.StringVar(&pkg, "p", "", "package name of the generated file")
	flag.StringVar(&runtime, "r", "", "runtime import path for generated code")
	flag.IntVar(&maxDepth, "max-depth", 0, "collection-path traversal depth limit")
	flag.BoolVar(&dump, "dump", false, "print the parsed schema AST and exit")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	source := flag.Arg(0)

	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			fatal(err)
		}

		cfg = loaded
	}

	if output != "" {
		cfg.Output = output
	}

	if pkg != "" {
		cfg.Package = pkg
	}

	if runtime != "" {
		cfg.RuntimeImport = runtime
	}

	if maxDepth > 0 {
		cfg.MaxDepth = maxDepth
	}

	if dump {
		dumpSchema(source)
		return
	}

	out, err := xsdmodel.Compile(source, xsdmodel.Options{
		OutputPath:    cfg.Output,
		PackageName:   cfg.Package,
		RuntimeImport: cfg.RuntimeImport,
		MaxDepth:      cfg.MaxDepth,
	})
	if err != nil {
		fatal(err)
	}

	if cfg.Output == "" {
		fmt.Print(out)
	}
}

// dumpSchema prints the parsed AST for inspection instead of compiling.
func dumpSchema(source string) {
	data, err := xmlmap.Load(source,
		xmlmap.WithForceListKeys("xsd:element", "xsd:attribute", "xsd:enumeration"))
	if err != nil {
		fatal(err)
	}

	root, ok := data["xsd:schema"].(map[string]any)
	if !ok {
		fatal(fmt.Errorf("root node not present, this does not look like an XSD document"))
	}

	doc, err := schema.ParseDocument(root)
	if err != nil {
		fatal(err)
	}

	spew.Dump(doc)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "xsdmodel:", err)
	os.Exit(1)
}
