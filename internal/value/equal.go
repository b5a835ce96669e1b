package value

import (
	"github.com/cockroachdb/apd/v2"
)

// Equal reports whether a and b hold the same logical content. Objects are
// compared without regard to key order, arrays element by element. Integers
// and decimals compare numerically. Zoned datetimes are equal when they name
// the same instant; a zoned and a naive datetime are never equal.
func Equal(a, b Value) bool {
	ka, kb := KindOf(a), KindOf(b)
	if isNumber(ka) && isNumber(kb) {
		return toDecimal(a).Cmp(toDecimal(b)) == 0
	}
	if ka != kb || ka == KindInvalid {
		return false
	}

	switch x := a.(type) {
	case nil:
		return true
	case bool:
		return x == b.(bool)
	case string:
		return x == b.(string)
	case Date:
		return x == b.(Date)
	case DateTime:
		y := b.(DateTime)
		if x.zoned != y.zoned {
			return false
		}
		if x.zoned {
			return x.Time().Equal(y.Time())
		}
		return x.clock.Equal(y.clock)
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		for i, key := range x.keys {
			other, ok := y.Get(key)
			if !ok || !Equal(x.values[i], other) {
				return false
			}
		}
		return true
	}
	return false
}

func isNumber(k Kind) bool {
	return k == KindInteger || k == KindDecimal
}

func toDecimal(v Value) *apd.Decimal {
	if i, ok := v.(int64); ok {
		return apd.New(i, 0)
	}
	return v.(*apd.Decimal)
}
