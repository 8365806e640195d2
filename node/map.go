package node

import (
	"fmt"
)

// convertMap keeps the keys of a mapping and converts its values. nil and
// values that are not mappings give an empty map.
func (c *Converter) convertMap(elem Descriptor, value any) (map[string]any, error) {
	if value == nil {
		return map[string]any{}, nil
	}

	m, ok := asMapping(value)
	if !ok {
		c.logger.Debug("map value is not a mapping", "type", fmt.Sprintf("%T", value))
		return map[string]any{}, nil
	}

	out := make(map[string]any, len(m))
	for _, key := range sortedKeys(m) {
		converted, err := c.ConvertType(elem, m[key])
		if err != nil {
			return nil, fmt.Errorf("[%q]: %w", key, err)
		}

		out[key] = converted
	}

	return out, nil
}
