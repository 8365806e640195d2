package schemafile

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the root of a schema document.
type File struct {
	Version string           `yaml:"version,omitempty"`
	Options Options          `yaml:"options,omitempty"`
	Models  map[string]Model `yaml:"models"`
}

// Options configures the converter built for the file's models.
type Options struct {
	NormalizeKeys bool     `yaml:"normalize_keys,omitempty"`
	Categories    []string `yaml:"categories,omitempty"`
}

// Model describes one dynamic model.
type Model struct {
	Open   bool                  `yaml:"open,omitempty"`
	Fields map[string]*FieldType `yaml:"fields"`
}

// FieldType is a field type expression. Exactly one member is set.
type FieldType struct {
	Name  string
	List  *FieldType
	Tuple *FieldType
	Map   *FieldType
	Enum  []EnumEntry
}

// EnumEntry is a single [output, input] enum pair.
type EnumEntry struct {
	Out any
	In  any
}

var (
	ErrFieldType = errors.New("invalid field type")
	ErrEnumEntry = errors.New("enum entry must be an [output, input] pair")
)

// UnmarshalYAML accepts either a type name or a single-key mapping.
func (ft *FieldType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string

		err := node.Decode(&name)
		if err != nil {
			return err
		}

		if name == "" {
			return fmt.Errorf("%w: empty type name at line %d", ErrFieldType, node.Line)
		}

		*ft = FieldType{Name: name}

		return nil

	case yaml.MappingNode:
		var raw struct {
			List  *FieldType  `yaml:"list"`
			Tuple *FieldType  `yaml:"tuple"`
			Map   *FieldType  `yaml:"map"`
			Enum  []EnumEntry `yaml:"enum"`
		}

		if len(node.Content) != 2 {
			return fmt.Errorf("%w: want exactly one of list, tuple, map, enum at line %d", ErrFieldType, node.Line)
		}

		err := node.Decode(&raw)
		if err != nil {
			return err
		}

		*ft = FieldType{List: raw.List, Tuple: raw.Tuple, Map: raw.Map, Enum: raw.Enum}
		if ft.List == nil && ft.Tuple == nil && ft.Map == nil && ft.Enum == nil {
			return fmt.Errorf("%w: unknown key %q at line %d", ErrFieldType, node.Content[0].Value, node.Line)
		}

		return nil

	default:
		return fmt.Errorf("%w: expected name or mapping, got %v", ErrFieldType, node.Kind)
	}
}

// MarshalYAML writes the shortest form of the expression.
func (ft FieldType) MarshalYAML() (any, error) {
	switch {
	case ft.List != nil:
		return map[string]any{"list": ft.List}, nil
	case ft.Tuple != nil:
		return map[string]any{"tuple": ft.Tuple}, nil
	case ft.Map != nil:
		return map[string]any{"map": ft.Map}, nil
	case ft.Enum != nil:
		return map[string]any{"enum": ft.Enum}, nil
	default:
		return ft.Name, nil
	}
}

// UnmarshalYAML decodes a two-element sequence.
func (e *EnumEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("%w at line %d", ErrEnumEntry, node.Line)
	}

	var pair []any

	err := node.Decode(&pair)
	if err != nil {
		return err
	}

	e.Out, e.In = pair[0], pair[1]

	return nil
}

// MarshalYAML writes the entry back as a pair.
func (e EnumEntry) MarshalYAML() (any, error) {
	return []any{e.Out, e.In}, nil
}
