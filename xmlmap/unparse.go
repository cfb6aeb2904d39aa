package xmlmap

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

const header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Unparse renders a nested mapping back into XML text. The mapping must
// contain exactly one root entry. Attributes are written in lexical order
// for deterministic output.
func Unparse(m map[string]any) (string, error) {
	if len(m) != 1 {
		return "", fmt.Errorf("xmlmap: document must have exactly one root element, got %d", len(m))
	}

	var b strings.Builder
	b.WriteString(header)

	for key, val := range m {
		if err := writeElement(&b, key, val); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func writeElement(b *strings.Builder, key string, val any) error {
	switch v := val.(type) {
	case []any:
		for _, item := range v {
			if err := writeElement(b, key, item); err != nil {
				return err
			}
		}

		return nil

	case map[string]any:
		return writeMapElement(b, key, v)

	case nil:
		fmt.Fprintf(b, "<%s></%s>", key, key)
		return nil

	case string:
		fmt.Fprintf(b, "<%s>%s</%s>", key, escape(v), key)
		return nil

	default:
		return fmt.Errorf("xmlmap: cannot serialize %T under %s", val, key)
	}
}

func writeMapElement(b *strings.Builder, key string, m map[string]any) error {
	var attrs, childKeys []string

	hasText := false

	for k := range m {
		switch {
		case strings.HasPrefix(k, "@"):
			attrs = append(attrs, k)
		case k == "#text":
			hasText = true
		default:
			childKeys = append(childKeys, k)
		}
	}

	sort.Strings(attrs)
	sort.Strings(childKeys)

	b.WriteString("<" + key)

	for _, a := range attrs {
		s, ok := m[a].(string)
		if !ok {
			return fmt.Errorf("xmlmap: attribute %s of %s is not a string", a, key)
		}

		fmt.Fprintf(b, ` %s="%s"`, strings.TrimPrefix(a, "@"), escape(s))
	}

	b.WriteString(">")

	if hasText {
		s, ok := m["#text"].(string)
		if !ok {
			return fmt.Errorf("xmlmap: #text of %s is not a string", key)
		}

		b.WriteString(escape(s))
	}

	for _, k := range childKeys {
		if err := writeElement(b, k, m[k]); err != nil {
			return err
		}
	}

	b.WriteString("</" + key + ">")

	return nil
}

func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails on writer errors; strings.Builder never does.
	_ = xml.EscapeText(&b, []byte(s))

	return b.String()
}
