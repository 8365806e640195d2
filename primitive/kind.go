package primitive

import (
	"reflect"
	"strings"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is the scalar kind a value is coerced into.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindString
	KindInteger
	KindFloat
	KindBool
	KindAny // identity, the value is kept as is

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsValid reports whether k is one of the declared kinds.
func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

// Name returns the lower-case name used in schema documents.
func (k KindEnum) Name() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindAny:
		return "any"
	default:
		return ""
	}
}

// ParseKind maps a schema document name (and a few common aliases) to a kind.
func ParseKind(name string) (KindEnum, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str", "text":
		return KindString, true
	case "integer", "int":
		return KindInteger, true
	case "float", "number", "double":
		return KindFloat, true
	case "boolean", "bool":
		return KindBool, true
	case "any":
		return KindAny, true
	default:
		return 0, false
	}
}

// sourceEnum classifies a source value for coercion.
type sourceEnum int

const (
	sourceOther sourceEnum = iota
	sourceSigned
	sourceUnsigned
	sourceFloat
	sourceBool
	sourceString
	sourceBytes
	sourceTime
	sourceDuration
)

// classify works on the reflect kind, so named types (enums over int or
// string) are classified like their underlying type.
func classify(rtype reflect.Type) sourceEnum {
	if rtype == nil {
		return sourceOther
	}

	switch rtype {
	case reflect.TypeOf(time.Time{}):
		return sourceTime
	case reflect.TypeOf(time.Duration(0)):
		return sourceDuration
	}

	switch rtype.Kind() {
	default:
		return sourceOther
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return sourceSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return sourceUnsigned
	case reflect.Float32, reflect.Float64:
		return sourceFloat
	case reflect.Bool:
		return sourceBool
	case reflect.String:
		return sourceString
	case reflect.Slice:
		if rtype.Elem().Kind() == reflect.Uint8 {
			return sourceBytes
		}
		return sourceOther
	}
}
