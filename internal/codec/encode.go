package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"
	"github.com/mcncl/canonjson/internal/errors"
	"github.com/mcncl/canonjson/internal/value"
)

// Encode renders v as compact JSON text. With sortKeys set, object entries
// are written in byte order of their rendered keys, which makes equal trees
// render to identical text; otherwise they follow insertion order.
func Encode(v value.Value, sortKeys bool) (string, error) {
	return EncodeIndent(v, sortKeys, "")
}

// EncodeIndent is like Encode but starts each array element and object
// entry on a new line, indented by one copy of indent per nesting level.
// An empty indent produces compact output.
func EncodeIndent(v value.Value, sortKeys bool, indent string) (string, error) {
	e := &encoder{sortKeys: sortKeys, indent: indent}
	if err := e.encode(v, 0); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

type encoder struct {
	buf      bytes.Buffer
	sortKeys bool
	indent   string
}

type entry struct {
	key string
	val value.Value
}

func (e *encoder) encode(v value.Value, depth int) error {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case int64:
		e.buf.WriteString(strconv.FormatInt(t, 10))
	case *apd.Decimal:
		if t == nil {
			return unsupported(v)
		}
		e.writeString(t.String())
	case string:
		e.writeString(t)
	case value.Date:
		e.writeString(t.String())
	case value.DateTime:
		e.writeString(t.String())
	case value.Array:
		return e.encodeArray(t, depth)
	case *value.Object:
		if t == nil {
			return unsupported(v)
		}
		return e.encodeObject(t, depth)
	default:
		return unsupported(v)
	}
	return nil
}

func (e *encoder) encodeArray(arr value.Array, depth int) error {
	if len(arr) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(elem, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) encodeObject(obj *value.Object, depth int) error {
	if obj.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	entries := make([]entry, 0, obj.Len())
	var keyErr error
	obj.Range(func(key, val value.Value) bool {
		text, ok := value.KeyString(key)
		if !ok {
			keyErr = unsupported(key)
			return false
		}
		entries = append(entries, entry{key: text, val: val})
		return true
	})
	if keyErr != nil {
		return keyErr
	}
	if e.sortKeys {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].key < entries[j].key
		})
	}

	e.buf.WriteByte('{')
	for i, ent := range entries {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		e.writeString(ent.key)
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		if err := e.encode(ent.val, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

// writeString writes s as a quoted JSON string using encoding/json with HTML
// escaping turned off, so <, > and & are written as is.
func (e *encoder) writeString(s string) {
	enc := json.NewEncoder(&e.buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	// Drop the newline Encode appends.
	e.buf.Truncate(e.buf.Len() - 1)
}

func unsupported(v value.Value) error {
	return errors.NewEncodingError(fmt.Sprintf("cannot encode value of type %T", v), errors.ErrUnsupportedType)
}
