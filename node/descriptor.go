package node

import "map-caster/primitive"

// Descriptor describes how a single field value is converted.
// The set of implementations is closed: every descriptor is one of the
// types declared in this file.
type Descriptor interface {
	Kind() DescriptorEnum
	descriptor()
}

// Schema maps field names to their descriptors.
type Schema map[string]Descriptor

// Tuple is the fixed-arity result of a TupleOf conversion.
type Tuple []any

// Record is the output of a DynamicModel.
type Record map[string]any

type ScalarDescriptor struct {
	Type primitive.KindEnum
}

// EnumPair maps an accepted input value to the output symbol.
type EnumPair struct {
	Out, In any
}

type EnumDescriptor struct {
	Pairs []EnumPair
}

type ModelDescriptor struct {
	Model Populator
}

// RefDescriptor names a model resolved through the converter registry at
// conversion time, which allows recursive models.
type RefDescriptor struct {
	Name string
}

type CustomDescriptor struct {
	Converter CustomConverter
}

type ListDescriptor struct {
	Elem Descriptor
}

type TupleDescriptor struct {
	Elem Descriptor
}

type MapDescriptor struct {
	Elem Descriptor
}

// invalidDescriptor keeps a type reference that has neither a schema nor a
// converter, so that using it fails with SchemaMissingError.
type invalidDescriptor struct {
	target any
}

func (ScalarDescriptor) Kind() DescriptorEnum  { return DescriptorScalar }
func (EnumDescriptor) Kind() DescriptorEnum    { return DescriptorEnumeration }
func (ModelDescriptor) Kind() DescriptorEnum   { return DescriptorModel }
func (RefDescriptor) Kind() DescriptorEnum     { return DescriptorRef }
func (CustomDescriptor) Kind() DescriptorEnum  { return DescriptorCustom }
func (ListDescriptor) Kind() DescriptorEnum    { return DescriptorList }
func (TupleDescriptor) Kind() DescriptorEnum   { return DescriptorTuple }
func (MapDescriptor) Kind() DescriptorEnum     { return DescriptorMap }
func (invalidDescriptor) Kind() DescriptorEnum { return DescriptorUnknown }

func (ScalarDescriptor) descriptor()  {}
func (EnumDescriptor) descriptor()    {}
func (ModelDescriptor) descriptor()   {}
func (RefDescriptor) descriptor()     {}
func (CustomDescriptor) descriptor()  {}
func (ListDescriptor) descriptor()    {}
func (TupleDescriptor) descriptor()   {}
func (MapDescriptor) descriptor()     {}
func (invalidDescriptor) descriptor() {}

var (
	String  Descriptor = ScalarDescriptor{Type: primitive.KindString}
	Integer Descriptor = ScalarDescriptor{Type: primitive.KindInteger}
	Float   Descriptor = ScalarDescriptor{Type: primitive.KindFloat}
	Bool    Descriptor = ScalarDescriptor{Type: primitive.KindBool}
	Any     Descriptor = ScalarDescriptor{Type: primitive.KindAny}
)

func Scalar(kind primitive.KindEnum) Descriptor {
	if !kind.IsValid() {
		return invalidDescriptor{target: kind}
	}

	return ScalarDescriptor{Type: kind}
}

func Pair(out, in any) EnumPair {
	return EnumPair{Out: out, In: in}
}

// Enum converts a value into the Out of the first pair whose In equals it.
func Enum(pairs ...EnumPair) Descriptor {
	return EnumDescriptor{Pairs: pairs}
}

func ModelOf(p Populator) Descriptor {
	if isNil(p) {
		return invalidDescriptor{target: p}
	}

	return ModelDescriptor{Model: p}
}

func Ref(name string) Descriptor {
	return RefDescriptor{Name: name}
}

func CustomOf(c CustomConverter) Descriptor {
	if isNil(c) {
		return invalidDescriptor{target: c}
	}

	return CustomDescriptor{Converter: c}
}

func ListOf(elem Descriptor) Descriptor {
	return ListDescriptor{Elem: elem}
}

func TupleOf(elem Descriptor) Descriptor {
	return TupleDescriptor{Elem: elem}
}

func MapOf(elem Descriptor) Descriptor {
	return MapDescriptor{Elem: elem}
}

// elemOf returns the element descriptor of a collection descriptor.
func elemOf(d Descriptor) Descriptor {
	switch d := d.(type) {
	case ListDescriptor:
		return d.Elem
	case TupleDescriptor:
		return d.Elem
	case MapDescriptor:
		return d.Elem
	default:
		return nil
	}
}

// TypeRef resolves a type reference into a descriptor once, when the schema
// is built:
//   - a Populator becomes a nested model, even if it also converts values
//   - a CustomConverter becomes a custom conversion
//   - a function accepted by ParseCaster becomes a custom conversion
//   - a Descriptor is returned as is
//
// Anything else yields a descriptor failing with SchemaMissingError when used.
func TypeRef(x any) Descriptor {
	switch v := x.(type) {
	case Populator:
		return ModelOf(v)
	case CustomConverter:
		return CustomOf(v)
	case Descriptor:
		return v
	}

	if caster, err := ParseCaster(x); err == nil {
		return CustomDescriptor{Converter: caster}
	}

	return invalidDescriptor{target: x}
}
