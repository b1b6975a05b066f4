// Package attrmap implements a schema-less recursive attribute map.
//
// Every nested map stored in a Map is itself a *Map, so each level of nesting
// supports the same get/set/merge behavior. Lists and scalars are stored as-is
// (lists are copied on the way in).
package attrmap

import (
	"slices"

	"github.com/alessiobussolari/better-seo/engine/core"
)

// Map is a schema-less key/value store with deep merge and recursive wrapping.
// Construct with New. Every method accepts a nil receiver: readers see an empty
// map and writers are no-ops that return nil.
type Map struct {
	data map[string]any
}

// New returns a Map holding a structural copy of data. Nested maps are wrapped
// at every depth. A nil data yields an empty map.
func New(data map[string]any) *Map {
	m := &Map{data: make(map[string]any, len(data))}
	for k, v := range data {
		m.data[k] = wrap(v)
	}
	return m
}

// Get returns the value stored under key, or nil when the key was never set.
// Use Lookup to tell an explicit nil from a missing key.
func (m *Map) Get(key string) any {
	v, _ := m.Lookup(key)
	return v
}

// Lookup returns the value stored under key and whether the key was ever written.
func (m *Map) Lookup(key string) (any, bool) {
	if m == nil || m.data == nil {
		return nil, false
	}
	v, ok := m.data[key]
	return v, ok
}

// Has reports whether key was ever written.
func (m *Map) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// Set stores value under key and returns m.
//
// Plain maps are wrapped recursively. An existing *Map is stored unchanged, so
// its identity is preserved. nil is stored verbatim.
func (m *Map) Set(key string, value any) *Map {
	if m == nil {
		return nil
	}
	if m.data == nil {
		m.data = make(map[string]any)
	}
	m.data[key] = wrap(value)
	return m
}

// Merge deep-merges other into m and returns m. When both sides hold a map for
// the same key the merge recurses into the existing *Map; otherwise the value
// from other overwrites. Keys absent from other are left untouched.
func (m *Map) Merge(other map[string]any) *Map {
	if m == nil {
		return nil
	}
	for k, v := range other {
		m.mergeValue(k, v)
	}
	return m
}

// MergeMap deep-merges another Map into m with the same rules as Merge. The two
// trees never share storage afterwards.
func (m *Map) MergeMap(other *Map) *Map {
	if m == nil || other == nil || other == m {
		return m
	}
	for k, v := range other.data {
		m.mergeValue(k, v)
	}
	return m
}

func (m *Map) mergeValue(key string, value any) {
	if m.data == nil {
		m.data = make(map[string]any)
	}
	if existing, ok := m.data[key].(*Map); ok && existing != nil {
		if src, ok := value.(*Map); ok {
			if src != nil {
				existing.MergeMap(src)
				return
			}
		} else if plain, ok := ToStringMap(value); ok {
			existing.Merge(plain)
			return
		}
	}
	if src, ok := value.(*Map); ok && src != nil {
		m.data[key] = src.Clone()
		return
	}
	m.data[key] = wrap(value)
}

// ToMap recursively unwraps m into ordinary maps, lists and scalars. The result
// is independent of m.
func (m *Map) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.data))
	for k, v := range m.data {
		out[k] = unwrap(v)
	}
	return out
}

// Field is the named accessor for key. It fails with core.ErrNoSuchKey when key
// was never written; a key written with nil returns (nil, nil).
func (m *Map) Field(key string) (any, error) {
	v, ok := m.Lookup(key)
	if !ok {
		return nil, core.NoSuchKey("field", key)
	}
	return v, nil
}

// SetField is the assignment form of the named accessor. It registers key.
func (m *Map) SetField(key string, value any) *Map {
	return m.Set(key, value)
}

// Responds reports whether a named accessor exists for key.
func (m *Map) Responds(key string) bool {
	return m.Has(key)
}

// Section returns the nested map stored under key, or nil when the value is
// missing or not a map.
func (m *Map) Section(key string) *Map {
	sub, _ := m.Get(key).(*Map)
	return sub
}

// Keys returns the written keys in sorted order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of written keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.data)
}

// Clone returns a deep, independent copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	return New(m.ToMap())
}
