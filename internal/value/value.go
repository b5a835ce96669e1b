// Package value defines the generic JSON value tree shared by the codec and
// the wrapper.
//
// A Value is one of:
//
//	nil           null
//	bool          boolean
//	int64         integer
//	*apd.Decimal  high-precision decimal
//	string        string
//	Date          calendar date (YYYY-MM-DD)
//	DateTime      date and time of day, optionally with a UTC offset
//	Array         ordered sequence of values
//	*Object       mapping with unique keys
//
// Object keys are strings when read from JSON text, but may be Date or
// DateTime after date recognition, and collaborators may also use integers,
// booleans, nil or decimals as keys. Keys are always rendered as strings.
package value

import (
	"github.com/cockroachdb/apd/v2"
)

// Value is any member of the union described in the package documentation.
type Value interface{}

// Array is an ordered sequence of values.
type Array []Value

// Kind identifies which member of the union a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInteger
	KindDecimal
	KindString
	KindDate
	KindDateTime
	KindArray
	KindObject
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid",
	KindNull:     "null",
	KindBool:     "boolean",
	KindInteger:  "integer",
	KindDecimal:  "decimal",
	KindString:   "string",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindArray:    "array",
	KindObject:   "object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInvalid]
}

// IsContainer reports whether the kind is an array or an object.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// KindOf returns the kind of v, or KindInvalid when v is outside the union.
func KindOf(v Value) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64:
		return KindInteger
	case *apd.Decimal:
		if t == nil {
			return KindInvalid
		}
		return KindDecimal
	case string:
		return KindString
	case Date:
		return KindDate
	case DateTime:
		return KindDateTime
	case Array:
		return KindArray
	case *Object:
		if t == nil {
			return KindInvalid
		}
		return KindObject
	default:
		return KindInvalid
	}
}
