package xmlmap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Parse decodes XML from r into its nested-mapping form. The result has a
// single entry keyed by the root element's prefixed name.
func Parse(r io.Reader, opts ...Option) (map[string]any, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{opts: o, dec: xml.NewDecoder(r)}

	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("xmlmap: document has no root element")
		}

		if err != nil {
			return nil, fmt.Errorf("xmlmap: failed to parse document: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		key, val, err := p.element(start, nil)
		if err != nil {
			return nil, err
		}

		return map[string]any{key: val}, nil
	}
}

type parser struct {
	opts options
	dec  *xml.Decoder
	// ns is a stack of namespace-URL-to-prefix bindings, pushed per
	// element, used to restore the source document's prefixed names
	// (the decoder resolves prefixes to URLs).
	ns []map[string]string
}

// element consumes one element (start token already read) and returns its
// prefixed key and mapping value. path holds the prefixed keys of the
// ancestors, root included.
func (p *parser) element(start xml.StartElement, path []string) (string, any, error) {
	p.ns = append(p.ns, bindings(start.Attr))
	defer func() { p.ns = p.ns[:len(p.ns)-1] }()

	key := p.prefixed(start.Name)
	path = append(path, key)

	m := make(map[string]any)

	for _, a := range start.Attr {
		m["@"+p.attrName(a.Name)] = a.Value
	}

	var text strings.Builder

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return "", nil, fmt.Errorf("xmlmap: failed to parse element %s: %w", key, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			childKey, childVal, err := p.element(t, path)
			if err != nil {
				return "", nil, err
			}

			p.insert(m, childKey, childVal, append(path, childKey))

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			return key, finish(m, strings.TrimSpace(text.String())), nil
		}
	}
}

// finish collapses an element's accumulated content: text-only elements
// become plain strings, empty elements become nil.
func finish(m map[string]any, text string) any {
	if len(m) == 0 {
		if text == "" {
			return nil
		}

		return text
	}

	if text != "" {
		m["#text"] = text
	}

	return m
}

// insert places a child value under key, wrapping into collection form on
// repetition or when the key/path is forced.
func (p *parser) insert(m map[string]any, key string, val any, path []string) {
	forced := p.opts.forceKeys[key] || p.opts.forcePaths[strings.Join(path, "/")]

	cur, exists := m[key]

	switch {
	case forced && !exists:
		m[key] = []any{val}
	case !exists:
		m[key] = val
	default:
		if list, ok := cur.([]any); ok {
			m[key] = append(list, val)
		} else {
			m[key] = []any{cur, val}
		}
	}
}

// bindings extracts the namespace declarations of one element.
func bindings(attrs []xml.Attr) map[string]string {
	var b map[string]string

	for _, a := range attrs {
		var prefix string

		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}

		if b == nil {
			b = make(map[string]string)
		}

		b[a.Value] = prefix
	}

	return b
}

// prefixed restores an element name to its source prefixed form.
func (p *parser) prefixed(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}

	for i := len(p.ns) - 1; i >= 0; i-- {
		if prefix, ok := p.ns[i][name.Space]; ok {
			if prefix == "" {
				return name.Local
			}

			return prefix + ":" + name.Local
		}
	}

	return name.Local
}

// attrName restores an attribute name, including xmlns declarations.
func (p *parser) attrName(name xml.Name) string {
	if name.Space == "xmlns" {
		return "xmlns:" + name.Local
	}

	return p.prefixed(name)
}
