package schemafile

import (
	"errors"
	"fmt"
	"map-caster/internal/common"
	"map-caster/node"
	"map-caster/options"
	"map-caster/primitive"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownType     = errors.New("unknown type")
	ErrUnknownCategory = errors.New("unknown coercion category")
)

// customTypes are the converter-backed type names available to every file.
var customTypes = map[string]node.Descriptor{
	"uuid":     node.MustCustom(uuid.Parse),
	"duration": node.MustCustom(time.ParseDuration),
	"time":     node.MustCustom(parseTime),
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Build creates a dynamic model for every model of the file and registers
// them. Type names that are neither scalars, custom types, models of the
// file, nor models already in the registry are rejected before anything
// is registered.
func (f *File) Build(registry *node.Registry) ([]*node.DynamicModel, error) {
	names := make([]string, 0, len(f.Models))
	for name := range f.Models {
		names = append(names, name)
	}

	slices.Sort(names)

	models := make([]*node.DynamicModel, 0, len(names))
	for _, name := range names {
		def := f.Models[name]

		schema := node.Schema{}
		var passThrough []string

		for field, ft := range def.Fields {
			if ft == nil {
				passThrough = append(passThrough, field)
				continue
			}

			d, err := f.descriptor(ft, registry)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, field, err)
			}

			schema[field] = d
		}

		model := node.NewDynamicModel(name, func() node.Schema { return schema }).
			WithFields(passThrough...).
			WithOpen(def.Open)
		models = append(models, model)
	}

	populators := make([]node.Populator, 0, len(models))
	for _, m := range models {
		populators = append(populators, m)
	}

	err := registry.Register(populators...)
	if err != nil {
		return nil, err
	}

	return models, nil
}

func (f *File) descriptor(ft *FieldType, registry *node.Registry) (node.Descriptor, error) {
	switch {
	case ft.List != nil:
		elem, err := f.descriptor(ft.List, registry)
		if err != nil {
			return nil, err
		}
		return node.ListOf(elem), nil

	case ft.Tuple != nil:
		elem, err := f.descriptor(ft.Tuple, registry)
		if err != nil {
			return nil, err
		}
		return node.TupleOf(elem), nil

	case ft.Map != nil:
		elem, err := f.descriptor(ft.Map, registry)
		if err != nil {
			return nil, err
		}
		return node.MapOf(elem), nil

	case ft.Enum != nil:
		pairs := make([]node.EnumPair, 0, len(ft.Enum))
		for _, e := range ft.Enum {
			pairs = append(pairs, node.Pair(e.Out, e.In))
		}
		return node.Enum(pairs...), nil
	}

	if kind, ok := primitive.ParseKind(ft.Name); ok {
		return node.Scalar(kind), nil
	}

	if d, ok := customTypes[ft.Name]; ok {
		return d, nil
	}

	if _, ok := f.Models[ft.Name]; ok {
		return node.Ref(ft.Name), nil
	}

	if _, ok := registry.Lookup(ft.Name); ok {
		return node.Ref(ft.Name), nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownType, ft.Name)
}

// ConverterOptions translates the file options into converter options.
// No categories listed means every coercion is allowed.
func (f *File) ConverterOptions() ([]options.Option, error) {
	var opts []options.Option

	if !common.IsEmpty(f.Options.Categories) {
		allowed := primitive.CategoryNone
		for _, name := range f.Options.Categories {
			c, ok := primitive.ParseCategory(name)
			if !ok {
				return nil, fmt.Errorf("%w %q", ErrUnknownCategory, name)
			}

			allowed |= c
		}

		opts = append(opts, options.WithCategories(allowed))
	}

	if f.Options.NormalizeKeys {
		opts = append(opts, options.WithNormalizedKeys())
	}

	return opts, nil
}
