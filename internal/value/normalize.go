package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v2"
	"github.com/mcncl/canonjson/internal/errors"
)

// ParseNumber converts a JSON number literal into a Value. Integer literals
// that fit in an int64 become integers; every other number becomes a
// decimal carrying the literal's exact digits.
func ParseNumber(lit string) (Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return i, nil
		}
	}
	d, _, err := apd.NewFromString(lit)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", lit, err)
	}
	return d, nil
}

// Normalize converts plain Go values into the value union so trees built by
// collaborators can be wrapped and encoded. Maps with string keys become
// objects with their keys in sorted order; slices become arrays. Go integers
// become integers (or decimals when they overflow int64), floats become
// decimals, and time.Time becomes a zoned DateTime. Values already in the
// union are copied through, containers deeply.
func Normalize(v any) (Value, error) {
	switch t := v.(type) {
	case nil, bool, string, int64, Date, DateTime:
		return t, nil
	case *apd.Decimal:
		if t == nil {
			return nil, unsupported(v)
		}
		return new(apd.Decimal).Set(t), nil
	case apd.Decimal:
		return new(apd.Decimal).Set(&t), nil
	case json.Number:
		return ParseNumber(string(t))
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint64:
		return fromUint(t)
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case time.Time:
		return ZonedDateTime(t), nil
	case Array:
		return normalizeSlice(t)
	case []any:
		return normalizeSlice(t)
	case []string:
		arr := make(Array, len(t))
		for i, s := range t {
			arr[i] = s
		}
		return arr, nil
	case *Object:
		if t == nil {
			return nil, unsupported(v)
		}
		obj := NewObjectSize(t.Len())
		for i, key := range t.keys {
			val, err := Normalize(t.values[i])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObjectSize(len(t))
		for _, k := range keys {
			val, err := Normalize(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, val)
		}
		return obj, nil
	default:
		return nil, unsupported(v)
	}
}

func normalizeSlice[S ~[]E, E any](s S) (Value, error) {
	arr := make(Array, len(s))
	for i := range s {
		val, err := Normalize(s[i])
		if err != nil {
			return nil, err
		}
		arr[i] = val
	}
	return arr, nil
}

func fromUint(u uint64) (Value, error) {
	if u <= math.MaxInt64 {
		return int64(u), nil
	}
	return ParseNumber(strconv.FormatUint(u, 10))
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.NewEncodingError(fmt.Sprintf("cannot represent %v in JSON", f), errors.ErrUnsupportedType)
	}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return nil, errors.NewEncodingError(fmt.Sprintf("cannot convert %v to a decimal", f), err)
	}
	return d, nil
}

func unsupported(v any) error {
	return errors.NewEncodingError(fmt.Sprintf("unsupported type %T", v), errors.ErrUnsupportedType)
}

// Clone returns a deep copy of v. Containers and decimals are copied; the
// remaining members of the union are immutable and returned as is.
func Clone(v Value) Value {
	switch t := v.(type) {
	case Array:
		if t == nil {
			return Array(nil)
		}
		arr := make(Array, len(t))
		for i := range t {
			arr[i] = Clone(t[i])
		}
		return arr
	case *Object:
		if t == nil {
			return t
		}
		obj := NewObjectSize(t.Len())
		for i, key := range t.keys {
			obj.Set(Clone(key), Clone(t.values[i]))
		}
		return obj
	case *apd.Decimal:
		if t == nil {
			return t
		}
		return new(apd.Decimal).Set(t)
	default:
		return v
	}
}
