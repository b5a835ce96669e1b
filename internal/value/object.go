package value

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v2"
)

// keyID identifies an object key. Two keys are the same key when they have
// the same kind and render to the same text, so the string "2024-03-05" and
// the Date 2024-03-05 remain distinct keys. Zoned datetimes are identified
// by their UTC instant, matching Equal.
type keyID struct {
	kind Kind
	text string
}

// Object is a mapping with unique keys that remembers insertion order.
// Iteration follows insertion order; replacing the value of an existing key
// keeps its position.
type Object struct {
	keys   []Value
	values []Value
	index  map[keyID]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return NewObjectSize(0)
}

// NewObjectSize returns an empty object with room for n entries.
func NewObjectSize(n int) *Object {
	return &Object{
		keys:   make([]Value, 0, n),
		values: make([]Value, 0, n),
		index:  make(map[keyID]int, n),
	}
}

// KeyString renders an object key the way it appears in JSON text. The
// second result is false when key is not a valid key type.
func KeyString(key Value) (string, bool) {
	switch k := key.(type) {
	case string:
		return k, true
	case Date:
		return k.String(), true
	case DateTime:
		return k.String(), true
	case *apd.Decimal:
		if k == nil {
			return "", false
		}
		return k.String(), true
	case int64:
		return strconv.FormatInt(k, 10), true
	case bool:
		return strconv.FormatBool(k), true
	case nil:
		return "null", true
	default:
		return "", false
	}
}

func keyIDOf(key Value) (keyID, bool) {
	if dt, ok := key.(DateTime); ok && dt.zoned {
		return keyID{kind: KindDateTime, text: ZonedDateTime(dt.Time().UTC()).String()}, true
	}
	text, ok := KeyString(key)
	if !ok {
		return keyID{}, false
	}
	return keyID{kind: KindOf(key), text: text}, true
}

func idOf(key Value) keyID {
	id, ok := keyIDOf(key)
	if !ok {
		panic(fmt.Sprintf("value: invalid object key type %T", key))
	}
	return id
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Set stores val under key and reports whether an existing entry was
// replaced. A replaced entry keeps its position but takes the new key, so a
// zoned datetime naming the same instant at another offset replaces both. It
// panics if key is an array, an object or a type outside the union, just as a
// Go map panics on an unhashable key.
func (o *Object) Set(key, val Value) bool {
	id := idOf(key)
	if i, ok := o.index[id]; ok {
		o.keys[i] = key
		o.values[i] = val
		return true
	}
	o.index[id] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, val)
	return false
}

// Get returns the value stored under key.
func (o *Object) Get(key Value) (Value, bool) {
	id, ok := keyIDOf(key)
	if !ok {
		return nil, false
	}
	i, ok := o.index[id]
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key Value) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key Value) bool {
	id, ok := keyIDOf(key)
	if !ok {
		return false
	}
	i, ok := o.index[id]
	if !ok {
		return false
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.values = append(o.values[:i], o.values[i+1:]...)
	delete(o.index, id)
	for j := i; j < len(o.keys); j++ {
		o.index[idOf(o.keys[j])] = j
	}
	return true
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []Value {
	keys := make([]Value, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key, val Value) bool) {
	for i := range o.keys {
		if !fn(o.keys[i], o.values[i]) {
			return
		}
	}
}
