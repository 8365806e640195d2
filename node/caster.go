package node

import (
	"errors"
	"fmt"
	"map-caster/utils"
	"path"
	"reflect"
	"runtime"
	"strings"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
)

// CustomConverter converts a leaf value on its own terms. The result is used
// as is; a returned error aborts the populate call.
type CustomConverter interface {
	Convert(value any) (any, error)
}

// ConverterFunc adapts a plain function to CustomConverter.
type ConverterFunc func(value any) (any, error)

func (f ConverterFunc) Convert(value any) (any, error) {
	return f(value)
}

// Caster is a typed Go function used as a custom converter.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster struct if it is a valid caster function.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	if fn == nil {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	if fnVal.IsNil() || fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Ptr && src.Elem().Kind() == reflect.Ptr {
		return Caster{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return Caster{}, ErrDoublePointer
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	alias, name := utils.Unpack2(strings.SplitN(utils.Second(path.Split(fnPC.Name())), ".", 2))

	caster := Caster{
		Src:          src,
		Dst:          dst,
		Name:         name,
		PackageAlias: alias,
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}
		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true
		return caster, nil
	}
}

// Custom wraps a typed function into a custom descriptor.
func Custom(fn any) (Descriptor, error) {
	caster, err := ParseCaster(fn)
	if err != nil {
		return nil, err
	}

	return CustomDescriptor{Converter: caster}, nil
}

// MustCustom is like Custom but panics on error.
func MustCustom(fn any) Descriptor {
	d, err := Custom(fn)
	if err != nil {
		panic(err)
	}

	return d
}

// Convert calls the wrapped function. The value is adapted to the input type
// the same way struct fields are assigned. A false bool result yields nil.
func (c Caster) Convert(value any) (any, error) {
	if !c.fn.IsValid() {
		return nil, ErrIsNotACaster
	}

	arg := reflect.New(c.Src).Elem()
	if !assign(arg, value) {
		return nil, fmt.Errorf("%w: %s.%s takes %s, got %T", ErrCasterInput, c.PackageAlias, c.Name, c.Src, value)
	}

	out := c.fn.Call([]reflect.Value{arg})

	if c.HasErr {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return nil, err
		}
	}

	if c.HasBool && !out[1].Bool() {
		return nil, nil
	}

	if isNilValue(out[0]) {
		return nil, nil
	}

	return out[0].Interface(), nil
}

// String returns the qualified function name.
func (c Caster) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}
