package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || r == ':' || r == ' '
}

// ExportName converts an XML wire name to an exported Go identifier.
// Words are split on separator characters ('-', '_', '.', ':', space),
// each word gets an upper-cased first letter, and existing inner casing
// is kept (so "AbstractSource_t" becomes "AbstractSourceT" and
// "positiveInteger" becomes "PositiveInteger").
func ExportName(name string) string {
	parts := strings.FieldsFunc(name, isSeparator)

	var b strings.Builder
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}

	out := b.String()
	if out == "" {
		return name
	}

	// Identifiers cannot start with a digit.
	if r, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(r) {
		return "X" + out
	}

	return out
}
