package node

import (
	"fmt"
	"log/slog"
	"map-caster/utils"
	"math"
	"reflect"
	"strings"
)

// bindFields prepares a setter for every exported field of rtype, including
// fields promoted from embedded structs. Fields reached through embedded
// pointers are skipped since setting them would need an allocation the
// caller did not ask for.
func bindFields[T any](rtype reflect.Type) (Setters[T], error) {
	setters := Setters[T]{}
	owners := map[string]string{}

	for _, sf := range reflect.VisibleFields(rtype) {
		if !sf.IsExported() || sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			continue
		}

		if throughPointer(rtype, sf.Index) {
			continue
		}

		name, ok := fieldName(sf)
		if !ok {
			continue
		}

		if owner, exists := owners[name]; exists {
			return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateField, name, owner, sf.Name)
		}
		owners[name] = sf.Name

		setters[name] = fieldSetter[T](name, sf.Index)
	}

	return setters, nil
}

func fieldSetter[T any](name string, index []int) Setter[T] {
	return func(rec *T, value any, logger *slog.Logger) {
		dst := reflect.ValueOf(rec).Elem().FieldByIndex(index)
		if !assign(dst, value) {
			logger.Debug("value is not assignable to field",
				"field", name, "type", fmt.Sprintf("%T", value), "want", dst.Type().String())
		}
	}
}

func throughPointer(rtype reflect.Type, index []int) bool {
	t := rtype
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() != reflect.Struct {
			return true
		}
	}

	return false
}

// fieldName tries: `field:"name"`, json tag name, Go field name.
// A "-" in either tag hides the field.
func fieldName(sf reflect.StructField) (string, bool) {
	if tag, ok := sf.Tag.Lookup("field"); ok {
		if tag == "-" {
			return "", false
		}

		if tag != "" {
			return tag, true
		}
	}

	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false
	}

	// trim options
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	if tag != "" {
		return tag, true
	}

	return sf.Name, true
}

// assign stores value into dst on a best-effort basis. It returns false and
// leaves dst untouched when the value does not fit.
func assign(dst reflect.Value, value any) bool {
	if value == nil {
		dst.SetZero()
		return true
	}

	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return true
	}

	switch dst.Kind() {
	case reflect.Ptr:
		elem := reflect.New(dst.Type().Elem())
		if !assign(elem.Elem(), value) {
			return false
		}

		dst.Set(elem)
		return true

	case reflect.Slice:
		if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
			return false
		}

		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if !assign(out.Index(i), src.Index(i).Interface()) {
				return false
			}
		}

		dst.Set(out)
		return true

	case reflect.Array:
		if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
			return false
		}

		// elements beyond the array length are cut, missing ones stay zero
		out := reflect.New(dst.Type()).Elem()
		for i := 0; i < src.Len() && i < dst.Len(); i++ {
			if !assign(out.Index(i), src.Index(i).Interface()) {
				return false
			}
		}

		dst.Set(out)
		return true

	case reflect.Map:
		if src.Kind() != reflect.Map {
			return false
		}

		out := reflect.MakeMapWithSize(dst.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			key := reflect.New(dst.Type().Key()).Elem()
			elem := reflect.New(dst.Type().Elem()).Elem()
			if !assign(key, iter.Key().Interface()) || !assign(elem, iter.Value().Interface()) {
				return false
			}

			out.SetMapIndex(key, elem)
		}

		dst.Set(out)
		return true
	}

	return assignScalar(dst, src)
}

// assignScalar converts between scalar types of the same family, refusing
// anything that would change the value.
func assignScalar(dst, src reflect.Value) bool {
	switch {
	case isIntKind(dst.Kind()):
		i, ok := exactInt(src)
		if !ok || dst.OverflowInt(i) {
			return false
		}

		dst.SetInt(i)
		return true

	case isUintKind(dst.Kind()):
		if isUintKind(src.Kind()) {
			if dst.OverflowUint(src.Uint()) {
				return false
			}

			dst.SetUint(src.Uint())
			return true
		}

		i, ok := exactInt(src)
		if !ok || i < 0 || dst.OverflowUint(uint64(i)) {
			return false
		}

		dst.SetUint(uint64(i))
		return true

	case isFloatKind(dst.Kind()):
		switch {
		case isFloatKind(src.Kind()):
			dst.SetFloat(src.Float())
		case isIntKind(src.Kind()):
			dst.SetFloat(float64(src.Int()))
		case isUintKind(src.Kind()):
			dst.SetFloat(float64(src.Uint()))
		default:
			return false
		}
		return true

	case dst.Kind() == reflect.String && src.Kind() == reflect.String:
		dst.SetString(src.String())
		return true

	case dst.Kind() == reflect.Bool && src.Kind() == reflect.Bool:
		dst.SetBool(src.Bool())
		return true
	}

	return false
}

// exactInt returns src as int64 when it is an integer or an integral float.
func exactInt(src reflect.Value) (int64, bool) {
	switch {
	case isIntKind(src.Kind()):
		return src.Int(), true
	case isUintKind(src.Kind()):
		u := src.Uint()
		return int64(u), u <= 1<<63-1
	case isFloatKind(src.Kind()):
		f := src.Float()
		if !utils.IsInRange(-0x1p63, f, 0x1p63) || f == 0x1p63 || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
