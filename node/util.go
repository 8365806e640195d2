package node

import (
	"fmt"
	"map-caster/primitive"
	"maps"
	"reflect"
	"slices"
)

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	terr := reflect.TypeOf((*error)(nil)).Elem()

	return t.Implements(terr)
}

// isNil reports a nil interface or an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	return isNilValue(reflect.ValueOf(v))
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return !v.IsValid()
	}
}

// asMapping returns value as a string-keyed map. Maps with non-string keys
// (as produced by some YAML decoders) get their keys formatted.
func asMapping(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		if key.Kind() == reflect.String {
			out[key.String()] = iter.Value().Interface()
		} else {
			out[fmt.Sprint(key.Interface())] = iter.Value().Interface()
		}
	}

	return out, true
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}

// valueEqual compares enum inputs by value. Numbers compare by exact
// numeric value, so 1, int64(1), 1.0 and json.Number("1") are equal while
// integers beyond float64 precision stay distinct.
func valueEqual(a, b any) bool {
	if ra, ok := primitive.AsRat(a); ok {
		if rb, ok := primitive.AsRat(b); ok {
			return ra.Cmp(rb) == 0
		}
	}

	return reflect.DeepEqual(a, b)
}
