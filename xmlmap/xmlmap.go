// Package xmlmap converts XML documents to and from nested mappings and
// maps those mappings onto Go model structs.
//
// The mapping convention follows the common dictionary form of XML:
// attributes become "@"-prefixed keys, character data becomes a "#text"
// entry (or the whole value for text-only elements), child elements are
// keyed by their prefixed tag name, and repeated children collapse into
// []any. Force-list controls let a caller demand collection form for
// specific keys or paths even when a single occurrence is present.
//
// Generated model packages import xmlmap for document loading, decoding
// and serialization; the compiler itself uses it to read schema documents.
package xmlmap

// Abstract marks a generated model type as non-instantiable on the wire:
// it only ever appears embedded in a concrete type and carries no fields
// of its own.
type Abstract struct{}

func (Abstract) abstractModel() {}

type options struct {
	forceKeys  map[string]bool
	forcePaths map[string]bool
}

// Option configures parsing.
type Option func(*options)

// WithForceListKeys forces every child element with one of the given tag
// names into collection form, regardless of position.
func WithForceListKeys(keys ...string) Option {
	return func(o *options) {
		if o.forceKeys == nil {
			o.forceKeys = make(map[string]bool, len(keys))
		}

		for _, k := range keys {
			o.forceKeys[k] = true
		}
	}
}

// WithForceListPaths forces the elements at the given slash-joined paths
// (root element included) into collection form.
func WithForceListPaths(paths map[string]bool) Option {
	return func(o *options) {
		o.forcePaths = paths
	}
}
