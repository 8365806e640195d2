package node

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"map-caster/primitive"
)

const defsPrefix = "#/$defs/"

// JSONSchema describes the input accepted by root as a JSON Schema document.
// Every model reachable from root gets an entry under $defs; registry
// resolves Ref descriptors and may be nil.
func JSONSchema(root Populator, registry *Registry) *jsonschema.Schema {
	if isNil(root) {
		return nil
	}

	defs := jsonschema.Definitions{}
	for _, model := range registry.Reachable(root) {
		defs[model.Name()] = modelSchema(model)
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Ref:         defsPrefix + root.Name(),
		Definitions: defs,
	}
}

func modelSchema(model Populator) *jsonschema.Schema {
	schema := model.Schema()
	props := jsonschema.NewProperties()

	for _, name := range model.Fields() {
		d, ok := schema[name]
		if !ok {
			props.Set(name, &jsonschema.Schema{})
			continue
		}

		props.Set(name, descriptorSchema(d))
	}

	return &jsonschema.Schema{
		Type:       "object",
		Title:      model.Name(),
		Properties: props,
	}
}

func descriptorSchema(d Descriptor) *jsonschema.Schema {
	switch d := d.(type) {
	case ScalarDescriptor:
		return scalarSchema(d.Type)
	case EnumDescriptor:
		values := make([]any, 0, len(d.Pairs))
		for _, pair := range d.Pairs {
			values = append(values, pair.In)
		}
		return &jsonschema.Schema{Enum: values}
	case ModelDescriptor:
		if isNil(d.Model) {
			return &jsonschema.Schema{}
		}
		return &jsonschema.Schema{Ref: defsPrefix + d.Model.Name()}
	case RefDescriptor:
		return &jsonschema.Schema{Ref: defsPrefix + d.Name}
	case CustomDescriptor:
		return &jsonschema.Schema{Description: fmt.Sprintf("custom: %v", customName(d.Converter))}
	case ListDescriptor, TupleDescriptor:
		return &jsonschema.Schema{Type: "array", Items: descriptorSchema(elemOf(d))}
	case MapDescriptor:
		return &jsonschema.Schema{Type: "object", AdditionalProperties: descriptorSchema(d.Elem)}
	default:
		return &jsonschema.Schema{}
	}
}

func scalarSchema(kind primitive.KindEnum) *jsonschema.Schema {
	switch kind {
	case primitive.KindString:
		return &jsonschema.Schema{Type: "string"}
	case primitive.KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case primitive.KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case primitive.KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	default:
		return &jsonschema.Schema{}
	}
}

func customName(c CustomConverter) any {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", c)
}
