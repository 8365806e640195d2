package primitive

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// maxExactFloat is the largest integer magnitude a float64 holds exactly.
const maxExactFloat = 1 << 53

// Coerce converts value into the canonical Go form of kind:
// string, int64, float64, bool, or value itself for KindAny.
//
// Only conversions whose category is present in allowed are performed;
// a value already in canonical form is always accepted. The second result is
// false when the value cannot be coerced, in which case the first is nil.
func Coerce(kind KindEnum, value any, allowed CategoryEnum) (any, bool) {
	if value == nil {
		return nil, true
	}

	if n, ok := value.(json.Number); ok {
		return coerceNumber(kind, n, allowed)
	}

	switch kind {
	default:
		return nil, false
	case KindAny:
		return value, true
	case KindString:
		return toString(value, allowed)
	case KindInteger:
		return toInteger(value, allowed)
	case KindFloat:
		return toFloat(value, allowed)
	case KindBool:
		return toBool(value, allowed)
	}
}

func toString(value any, allowed CategoryEnum) (any, bool) {
	rv := reflect.ValueOf(value)
	src := classify(rv.Type())

	switch src {
	case sourceString:
		return rv.String(), true
	case sourceBytes:
		return string(rv.Bytes()), true
	case sourceTime:
		return value.(time.Time).Format(time.RFC3339Nano), true
	}

	if s, ok := value.(fmt.Stringer); ok {
		return s.String(), true
	}

	switch src {
	case sourceSigned:
		if !allowed.Has(CategoryTextNumber) {
			return nil, false
		}
		return strconv.FormatInt(rv.Int(), 10), true
	case sourceUnsigned:
		if !allowed.Has(CategoryTextNumber) {
			return nil, false
		}
		return strconv.FormatUint(rv.Uint(), 10), true
	case sourceFloat:
		if !allowed.Has(CategoryTextNumber) {
			return nil, false
		}
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), true
	case sourceBool:
		if !allowed.Has(CategoryTextualBool) {
			return nil, false
		}
		return strconv.FormatBool(rv.Bool()), true
	default:
		return fmt.Sprint(value), true
	}
}

func toInteger(value any, allowed CategoryEnum) (any, bool) {
	if i, ok := value.(int64); ok {
		return i, true
	}

	rv := reflect.ValueOf(value)
	switch classify(rv.Type()) {
	default:
		return nil, false
	case sourceSigned, sourceDuration:
		if !allowed.Has(CategorySafeNumber) {
			return nil, false
		}
		return rv.Int(), true
	case sourceUnsigned:
		u := rv.Uint()
		if u > math.MaxInt64 || !allowed.Has(CategorySafeNumber) {
			return nil, false
		}
		return int64(u), true
	case sourceFloat:
		return floatToInteger(rv.Float(), allowed)
	case sourceBool:
		if !allowed.Has(CategoryNumericBool) {
			return nil, false
		}
		if rv.Bool() {
			return int64(1), true
		}
		return int64(0), true
	case sourceString:
		if !allowed.Has(CategoryTextNumber) {
			return nil, false
		}
		s := strings.TrimSpace(rv.String())
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return floatToInteger(f, allowed)
	}
}

func floatToInteger(f float64, allowed CategoryEnum) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}

	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return nil, false
	}

	if t == f {
		if !allowed.Has(CategorySafeNumber) {
			return nil, false
		}
		return int64(t), true
	}

	if !allowed.Has(CategoryUnsafeNumber) {
		return nil, false
	}
	return int64(t), true
}

func toFloat(value any, allowed CategoryEnum) (any, bool) {
	if f, ok := value.(float64); ok {
		return f, true
	}

	rv := reflect.ValueOf(value)
	switch classify(rv.Type()) {
	default:
		return nil, false
	case sourceFloat:
		if !allowed.Has(CategorySafeNumber) {
			return nil, false
		}
		return rv.Float(), true
	case sourceSigned, sourceDuration:
		i := rv.Int()
		if !allowed.Has(numberCategory(i > -maxExactFloat && i < maxExactFloat)) {
			return nil, false
		}
		return float64(i), true
	case sourceUnsigned:
		u := rv.Uint()
		if !allowed.Has(numberCategory(u < maxExactFloat)) {
			return nil, false
		}
		return float64(u), true
	case sourceBool:
		if !allowed.Has(CategoryNumericBool) {
			return nil, false
		}
		if rv.Bool() {
			return float64(1), true
		}
		return float64(0), true
	case sourceString:
		if !allowed.Has(CategoryTextNumber) {
			return nil, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
}

func numberCategory(exact bool) CategoryEnum {
	if exact {
		return CategorySafeNumber
	}

	return CategoryUnsafeNumber
}

func toBool(value any, allowed CategoryEnum) (any, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}

	rv := reflect.ValueOf(value)
	switch classify(rv.Type()) {
	default:
		return nil, false
	case sourceBool:
		return rv.Bool(), true
	case sourceSigned:
		if !allowed.Has(CategoryNumericBool) {
			return nil, false
		}
		return zeroOrOne(float64(rv.Int()))
	case sourceUnsigned:
		if !allowed.Has(CategoryNumericBool) {
			return nil, false
		}
		return zeroOrOne(float64(rv.Uint()))
	case sourceFloat:
		if !allowed.Has(CategoryNumericBool) {
			return nil, false
		}
		return zeroOrOne(rv.Float())
	case sourceString:
		if !allowed.Has(CategoryTextualBool) {
			return nil, false
		}
		switch strings.ToLower(strings.TrimSpace(rv.String())) {
		case "true", "t", "yes", "y", "on", "1":
			return true, true
		case "false", "f", "no", "n", "off", "0":
			return false, true
		default:
			return nil, false
		}
	}
}

// zeroOrOne accepts only 0 and 1 as boolean numbers.
func zeroOrOne(f float64) (any, bool) {
	switch f {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return nil, false
	}
}

func coerceNumber(kind KindEnum, n json.Number, allowed CategoryEnum) (any, bool) {
	switch kind {
	case KindAny:
		return n, true
	case KindString:
		return n.String(), true
	}

	if i, err := n.Int64(); err == nil {
		return Coerce(kind, i, allowed)
	}

	f, err := n.Float64()
	if err != nil {
		return nil, false
	}

	return Coerce(kind, f, allowed)
}

// AsRat reports the exact numeric value of v when v is any Go integer, a
// finite float or a json.Number.
func AsRat(v any) (*big.Rat, bool) {
	if v == nil {
		return nil, false
	}

	if n, ok := v.(json.Number); ok {
		return new(big.Rat).SetString(n.String())
	}

	rv := reflect.ValueOf(v)
	switch classify(rv.Type()) {
	case sourceSigned:
		return new(big.Rat).SetInt64(rv.Int()), true
	case sourceUnsigned:
		return new(big.Rat).SetUint64(rv.Uint()), true
	case sourceFloat:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(f), true
	default:
		return nil, false
	}
}
