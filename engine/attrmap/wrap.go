package attrmap

import (
	"reflect"
	"slices"

	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/spf13/cast"
)

// wrap converts value into its stored representation: plain maps become *Map,
// lists are copied with their elements wrapped, everything else is kept.
func wrap(value any) any {
	switch t := value.(type) {
	case nil:
		return nil
	case *Map:
		return t
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = wrap(item)
		}
		return out
	case []string:
		return slices.Clone(t)
	}
	if plain, ok := ToStringMap(value); ok {
		return New(plain)
	}
	return value
}

// unwrap is the inverse of wrap and always returns storage independent of the
// wrapped tree.
func unwrap(value any) any {
	switch t := value.(type) {
	case nil:
		return nil
	case *Map:
		if t == nil {
			return nil
		}
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = unwrap(item)
		}
		return out
	case []string:
		return slices.Clone(t)
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return t
	}
	copied, err := core.DeepCopy(value)
	if err != nil {
		return value
	}
	return copied
}

// ToStringMap normalizes any map kind with stringable keys into map[string]any.
// The boolean is false when value is not a map.
func ToStringMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	if m, err := cast.ToStringMapE(value); err == nil {
		return m, true
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := cast.ToStringE(iter.Key().Interface())
		if err != nil {
			return nil, false
		}
		out[key] = iter.Value().Interface()
	}
	return out, true
}
