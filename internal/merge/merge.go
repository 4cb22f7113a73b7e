// Package merge is the deep-merge collaborator used when combining global
// configuration, endpoint configuration and call-time parameters.
//
// Nested maps combine key by key, the override side wins on scalar
// conflicts and slices are replaced wholesale.
package merge

import (
	"fmt"
	"reflect"

	"dario.cat/mergo"
)

// Into deep-merges src into dst, src winning on conflicts. dst must be a
// pointer to a struct or map of the same type as src.
func Into(dst, src any) error {
	if err := mergo.Merge(dst, src, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	return nil
}

// Params returns base deep-merged with override. Neither argument is
// modified.
func Params(base, override map[string]any) (map[string]any, error) {
	out := Clone(base)
	if len(override) == 0 {
		return out, nil
	}
	if err := Into(&out, Clone(override)); err != nil {
		return nil, err
	}
	return out, nil
}

// Clone copies m, descending into nested maps and slices so the copy
// shares no mutable state with the original. Typed maps with string keys
// become map[string]any and typed slices become []any, so mergo only ever
// walks untyped containers. A nil map clones to an empty one.
func Clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Strings copies a string map; nil yields an empty map.
func Strings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return Clone(t)
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	case []byte:
		return append([]byte(nil), t...)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = cloneValue(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any(nil)
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = cloneValue(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}
