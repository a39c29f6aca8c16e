package helpers

import (
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// LooseEqual compares two values with type coercion:
//
//   - nil equals nil, "", false, numeric zero and empty collections;
//   - when either side is a bool, the other side is compared by truthiness
//     ("" and "0" are false, as are zero numbers and empty collections);
//   - when both sides are numeric (numbers or numeric strings) they are
//     compared as decimals, so "1.0" equals 1 and "1e1" equals "10";
//   - a number and a non-numeric string are compared as strings, so 0 does
//     not equal "" or "abc";
//   - everything else falls back to deep equality.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return true
		}
		other := a
		if other == nil {
			other = b
		}
		return nilEquivalent(other)
	}

	if ab, ok := a.(bool); ok {
		return ab == truthy(b)
	}
	if bb, ok := b.(bool); ok {
		return bb == truthy(a)
	}

	da, aNumeric := numeric(a)
	db, bNumeric := numeric(b)
	if aNumeric && bNumeric {
		return da.Equal(db)
	}

	as, aString := a.(string)
	bs, bString := b.(string)
	switch {
	case aString && bString:
		return as == bs
	case aNumeric && bString, aString && bNumeric:
		return cast.ToString(a) == cast.ToString(b)
	}

	return reflect.DeepEqual(a, b)
}

func nilEquivalent(v any) bool {
	switch value := v.(type) {
	case string:
		return value == ""
	case bool:
		return !value
	}
	if d, ok := numericValue(v); ok {
		return d.IsZero()
	}
	return isEmptyCollection(v)
}

func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != "" && value != "0"
	}
	if d, ok := numericValue(v); ok {
		return !d.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	default:
		return true
	}
}

// numeric converts numbers and numeric strings.
func numeric(v any) (decimal.Decimal, bool) {
	if s, ok := v.(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return numericValue(v)
}

// numericValue converts Go number types only.
func numericValue(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case int, int8, int16, int32, int64:
		return decimal.NewFromInt(cast.ToInt64(value)), true
	case uint, uint8, uint16, uint32, uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(cast.ToUint64(value)), 0), true
	case float32:
		if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(value), true
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(value), true
	default:
		return decimal.Decimal{}, false
	}
}

func isEmptyCollection(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}
