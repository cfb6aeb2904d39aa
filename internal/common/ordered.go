package common

// OrderedMap is a string-keyed map that preserves first-insertion order.
// Re-setting an existing key replaces the value but keeps the key's
// original position (last-write-wins with stable ordering).
type OrderedMap struct {
	keys []string
	vals map[string]string
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{vals: make(map[string]string)}
}

// Set inserts or replaces the value for key.
func (m *OrderedMap) Set(key, value string) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.vals[key] = value
}

// Get returns the value for key and whether it is present.
func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has returns true if key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Delete removes key and returns its value, if it was present.
func (m *OrderedMap) Delete(key string) (string, bool) {
	v, ok := m.vals[key]
	if !ok {
		return "", false
	}

	delete(m.vals, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}

	return v, true
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Values returns the values in insertion order.
func (m *OrderedMap) Values() []string {
	out := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.vals[k])
	}

	return out
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}
