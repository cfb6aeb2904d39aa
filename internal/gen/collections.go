package gen

import (
	"sort"
	"strings"

	"xsdmodel/internal/schema"
)

// CollectionPaths walks the schema's structural shape and returns every
// slash-joined field path, starting at a root element, whose declared
// occurrence forces collection form during document decoding.
//
// The traversal is depth-first from each root element: a path is recorded
// when its element is unbounded, and recursion continues only into element
// types that resolve to a known complex type, following complex-content
// base chains. Paths whose length reaches maxDepth are discarded before
// inspection, which bounds self-referential schemas; deeper repeatable
// fields are under-reported as a consequence.
func CollectionPaths(doc *schema.Document, maxDepth int) []string {
	c := &pathCollector{
		types:    make(map[string]*schema.ComplexType, len(doc.ComplexTypes)),
		visiting: make(map[string]bool),
		found:    make(map[string]bool),
		maxDepth: maxDepth,
	}

	for i := range doc.ComplexTypes {
		ct := &doc.ComplexTypes[i]
		c.types[ct.Name] = ct
	}

	for i := range doc.Elements {
		c.walk(nil, &doc.Elements[i])
	}

	out := make([]string, 0, len(c.found))
	for p := range c.found {
		out = append(out, p)
	}

	sort.Strings(out)

	return out
}

type pathCollector struct {
	types    map[string]*schema.ComplexType
	visiting map[string]bool
	found    map[string]bool
	maxDepth int
}

func (c *pathCollector) walk(path []string, e *schema.Element) {
	p := make([]string, 0, len(path)+1)
	p = append(p, path...)
	p = append(p, e.Name)

	if len(p) >= c.maxDepth {
		return
	}

	if e.Repeats() {
		c.found[strings.Join(p, "/")] = true
	}

	ct := c.types[e.Type]
	if ct == nil {
		return
	}

	for _, child := range c.elements(ct) {
		c.walk(p, &child)
	}
}

// elements flattens a complex type's element declarations, inlining the
// inherited fields of its complex-content base chain. The visiting set
// breaks base-chain cycles.
func (c *pathCollector) elements(ct *schema.ComplexType) []schema.Element {
	var out []schema.Element

	if ct.ComplexContent != nil {
		ext := &ct.ComplexContent.Extension

		if base := c.types[ext.Base]; base != nil && !c.visiting[ext.Base] {
			c.visiting[ext.Base] = true
			out = append(out, c.elements(base)...)
			delete(c.visiting, ext.Base)
		}

		if ext.Sequence != nil {
			out = append(out, ext.Sequence.Elements...)
		}
	}

	if ct.Sequence != nil {
		out = append(out, ct.Sequence.Elements...)
	}

	return out
}
