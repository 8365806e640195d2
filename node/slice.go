package node

import (
	"fmt"
	"reflect"
)

// convertList converts every element of a sequence, keeping their order.
// nil gives an empty list; a keyed mapping contributes its values in
// ascending key order; any other single value is a one-element sequence.
func (c *Converter) convertList(elem Descriptor, value any) ([]any, error) {
	items := elements(value)

	out := make([]any, 0, len(items))
	for i, item := range items {
		converted, err := c.ConvertType(elem, item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}

		out = append(out, converted)
	}

	return out, nil
}

func elements(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	case Tuple:
		return v
	}

	if m, ok := asMapping(value); ok {
		items := make([]any, 0, len(m))
		for _, key := range sortedKeys(m) {
			items = append(items, m[key])
		}
		return items
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{value}
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items
}
