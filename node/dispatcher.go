package node

import (
	"fmt"
	"log/slog"
	"map-caster/internal/match"
	"map-caster/options"
	"map-caster/primitive"
	"slices"
)

// Converter populates models from untyped mappings. It holds no mutable
// state and may be shared between goroutines.
type Converter struct {
	registry *Registry
	allowed  primitive.CategoryEnum
	relaxed  bool
	logger   *slog.Logger
}

// New creates a converter. Ref descriptors and model names given as
// populate targets are resolved through registry, which may be nil.
func New(registry *Registry, opts ...options.Option) *Converter {
	o := options.Apply(opts...)

	return &Converter{
		registry: registry,
		allowed:  o.Allowed,
		relaxed:  o.NormalizedKeys,
		logger:   o.Logger,
	}
}

// Populate converts input into a record of target. Target is a Populator or
// the name of a model in the registry; any other target fails with
// *SchemaMissingError before the input is read.
func (c *Converter) Populate(input map[string]any, target any) (any, error) {
	model, err := c.resolve(target)
	if err != nil {
		return nil, err
	}

	return c.populate(model, input)
}

// PopulateList populates every input in order.
func (c *Converter) PopulateList(inputs []map[string]any, target any) ([]any, error) {
	model, err := c.resolve(target)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(inputs))
	for i, input := range inputs {
		rec, err := c.populate(model, input)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out = append(out, rec)
	}

	return out, nil
}

// ConvertType converts a single value. A nil value stays nil whatever the
// descriptor.
func (c *Converter) ConvertType(d Descriptor, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	return c.convert(d, value)
}

// Populate is the typed form of Converter.Populate.
func Populate[T any](c *Converter, input map[string]any, model *Model[T]) (T, error) {
	var zero T
	if model == nil {
		return zero, &SchemaMissingError{Target: model}
	}

	rec, err := c.populate(model, input)
	if err != nil {
		return zero, err
	}

	return rec.(T), nil
}

// PopulateList is the typed form of Converter.PopulateList.
func PopulateList[T any](c *Converter, inputs []map[string]any, model *Model[T]) ([]T, error) {
	if model == nil {
		return nil, &SchemaMissingError{Target: model}
	}

	out := make([]T, 0, len(inputs))
	for i, input := range inputs {
		rec, err := Populate(c, input, model)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out = append(out, rec)
	}

	return out, nil
}

func (c *Converter) resolve(target any) (Populator, error) {
	switch t := target.(type) {
	case Populator:
		if !isNil(t) {
			return t, nil
		}
	case string:
		if model, ok := c.registry.Lookup(t); ok {
			return model, nil
		}
	case ModelDescriptor:
		if !isNil(t.Model) {
			return t.Model, nil
		}
	case RefDescriptor:
		return c.resolve(t.Name)
	}

	return nil, &SchemaMissingError{Target: target}
}

// populate builds the raw field set, converts each field by its descriptor
// and hands the result to the model to build a fresh record.
func (c *Converter) populate(model Populator, input map[string]any) (any, error) {
	raw := c.rawFields(model, input)
	schema := model.Schema()

	fields := make(map[string]any, len(raw))
	for _, name := range sortedKeys(raw) {
		value := raw[name]

		d, ok := schema[name]
		if !ok {
			fields[name] = value
			continue
		}

		converted, err := c.convert(d, value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", model.Name(), name, err)
		}

		fields[name] = converted
	}

	return model.Build(fields, c.logger), nil
}

// rawFields starts from every declared field set to nil and overlays the
// input values whose key names a field. Other keys are dropped unless the
// model is open.
func (c *Converter) rawFields(model Populator, input map[string]any) map[string]any {
	declared := model.Fields()
	raw := make(map[string]any, len(declared))
	for _, name := range declared {
		raw[name] = nil
	}

	open := false
	if o, ok := model.(opener); ok {
		open = o.Open()
	}

	matched := make(map[string]struct{}, len(input))
	for key, value := range input {
		if _, ok := raw[key]; ok || open {
			raw[key] = value
			matched[key] = struct{}{}
		}
	}

	if !c.relaxed || len(matched) == len(input) {
		return raw
	}

	// exact keys win; the first remaining key in sorted order takes a field
	byNorm := make(map[string]string, len(declared))
	for _, name := range declared {
		if _, ok := matched[name]; !ok {
			byNorm[match.NormalizeIdent(name)] = name
		}
	}

	for _, key := range sortedKeys(input) {
		if _, ok := matched[key]; ok {
			continue
		}

		norm := match.NormalizeIdent(key)
		if name, ok := byNorm[norm]; ok {
			raw[name] = input[key]
			delete(byNorm, norm)
		}
	}

	return raw
}

// convert dispatches on the descriptor shape. Collections accept nil and
// produce empty collections; every other shape expects a non-nil value.
func (c *Converter) convert(d Descriptor, value any) (any, error) {
	switch d := d.(type) {
	case ListDescriptor:
		return c.convertList(d.Elem, value)
	case TupleDescriptor:
		items, err := c.convertList(d.Elem, value)
		if err != nil {
			return nil, err
		}
		return Tuple(items), nil
	case MapDescriptor:
		return c.convertMap(d.Elem, value)
	}

	if value == nil {
		return nil, nil
	}

	switch d := d.(type) {
	case ModelDescriptor:
		if isNil(d.Model) {
			return nil, &SchemaMissingError{Target: d}
		}
		return c.populateValue(d.Model, value)
	case RefDescriptor:
		model, ok := c.registry.Lookup(d.Name)
		if !ok {
			return nil, &SchemaMissingError{Target: d.Name}
		}
		return c.populateValue(model, value)
	case CustomDescriptor:
		if isNil(d.Converter) {
			return nil, &SchemaMissingError{Target: d}
		}
		return d.Converter.Convert(value)
	case ScalarDescriptor:
		return c.convertScalar(d.Type, value), nil
	case EnumDescriptor:
		return c.convertEnum(d.Pairs, value), nil
	case invalidDescriptor:
		return nil, &SchemaMissingError{Target: d.target}
	default:
		return value, nil
	}
}

func (c *Converter) populateValue(model Populator, value any) (any, error) {
	input, ok := asMapping(value)
	if !ok {
		c.logger.Debug("model value is not a mapping", "model", model.Name(), "type", fmt.Sprintf("%T", value))
		return nil, nil
	}

	return c.populate(model, input)
}

func (c *Converter) convertScalar(kind primitive.KindEnum, value any) any {
	out, ok := primitive.Coerce(kind, value, c.allowed)
	if !ok {
		c.logger.Debug("value cannot be coerced", "kind", kind.String(), "type", fmt.Sprintf("%T", value))
	}

	return out
}

// convertEnum returns the output of the first pair in declared order whose
// input equals value.
func (c *Converter) convertEnum(pairs []EnumPair, value any) any {
	idx := slices.IndexFunc(pairs, func(p EnumPair) bool {
		return valueEqual(p.In, value)
	})
	if idx < 0 {
		c.logger.Debug("enum value has no match", "value", value)
		return nil
	}

	return pairs[idx].Out
}
