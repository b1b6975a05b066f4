package attrmap

import (
	"errors"
	"strings"

	"github.com/alessiobussolari/better-seo/engine/core"
)

// ErrNotAMap is reported by SetPath when an intermediate segment holds a
// non-map value.
var ErrNotAMap = errors.New("path segment is not a map")

// Path resolves a dotted key such as "open_graph.default_image.url". The boolean
// is false when any segment is missing or an intermediate value is not a map.
func (m *Map) Path(dotted string) (any, bool) {
	segments := strings.Split(dotted, ".")
	cur := m
	for i, seg := range segments {
		v, ok := cur.Lookup(seg)
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		next, ok := v.(*Map)
		if !ok || next == nil {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// SetPath stores value under a dotted key, creating intermediate maps as needed.
// Missing or nil intermediates are replaced by empty maps; any other scalar in
// the way is an error and leaves m unchanged. A nil m has nowhere to store the
// value and reports ErrNotAMap.
func (m *Map) SetPath(dotted string, value any) error {
	if m == nil {
		return &core.DSLError{Op: "set_path", Key: dotted, Err: ErrNotAMap}
	}
	segments := strings.Split(dotted, ".")
	cur := m
	for i, seg := range segments[:len(segments)-1] {
		v, ok := cur.Lookup(seg)
		if !ok || v == nil {
			next := New(nil)
			cur.Set(seg, next)
			cur = next
			continue
		}
		next, ok := v.(*Map)
		if !ok || next == nil {
			return &core.DSLError{
				Op:  "set_path",
				Key: strings.Join(segments[:i+1], "."),
				Err: ErrNotAMap,
			}
		}
		cur = next
	}
	cur.Set(segments[len(segments)-1], value)
	return nil
}
