package core

import (
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Truthy reports whether v counts as set: anything except nil and false.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// RuneLength returns the character length of v. Strings are measured in runes;
// other scalars are measured through their string form. The boolean is false
// for nil.
func RuneLength(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return 0, false
	}
	return utf8.RuneCountInString(s), true
}

// ToStringSlice flattens values into one []string. Nested slices of any kind are
// expanded in order; nil entries are skipped.
func ToStringSlice(values ...any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = appendFlattened(out, value)
	}
	return out
}

func appendFlattened(out []string, value any) []string {
	if value == nil {
		return out
	}
	switch t := value.(type) {
	case string:
		return append(out, t)
	case []string:
		return append(out, t...)
	case []any:
		for _, item := range t {
			out = appendFlattened(out, item)
		}
		return out
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			out = appendFlattened(out, rv.Index(i).Interface())
		}
		return out
	}
	return append(out, cast.ToString(value))
}

// FormatTime renders time values in RFC 3339 and leaves everything else untouched.
func FormatTime(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
