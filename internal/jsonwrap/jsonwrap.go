// Package jsonwrap provides JSON, a handle around a value tree with lazy
// field and index navigation and memoized canonical rendering.
package jsonwrap

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	stderrors "errors"

	"github.com/mcncl/canonjson/internal/codec"
	"github.com/mcncl/canonjson/internal/errors"
	"github.com/mcncl/canonjson/internal/value"
)

// JSON wraps a single value tree. Render caches its result until the data
// is replaced with SetData.
//
// A JSON is not safe for concurrent use; callers sharing one across
// goroutines must serialize access themselves.
type JSON struct {
	data   value.Value
	cached *string
	opts   codec.Options
}

// New wraps input with date recognition disabled. See NewWithOptions.
func New(input any) (*JSON, error) {
	return NewWithOptions(input, codec.Options{})
}

// NewWithOptions wraps input. Arrays and objects are stored as given.
// Strings, byte slices and readers are decoded as JSON text using opts.
// Anything else is converted with value.Normalize.
func NewWithOptions(input any, opts codec.Options) (*JSON, error) {
	j := &JSON{opts: opts}

	switch in := input.(type) {
	case value.Array, *value.Object:
		j.data = in
	case string:
		data, err := codec.Decode([]byte(in), opts)
		if err != nil {
			return nil, err
		}
		j.data = data
	case []byte:
		data, err := codec.Decode(in, opts)
		if err != nil {
			return nil, err
		}
		j.data = data
	case json.RawMessage:
		data, err := codec.Decode(in, opts)
		if err != nil {
			return nil, err
		}
		j.data = data
	case io.Reader:
		data, err := codec.DecodeReader(in, opts)
		if err != nil {
			return nil, err
		}
		j.data = data
	default:
		data, err := value.Normalize(in)
		if err != nil {
			return nil, err
		}
		j.data = data
	}
	return j, nil
}

// Wrap returns a JSON over an already decoded value. v is stored as is,
// so a string is kept as a string rather than decoded as text.
func Wrap(v value.Value, opts codec.Options) *JSON {
	return &JSON{data: v, opts: opts}
}

// Data returns the wrapped value.
func (j *JSON) Data() value.Value {
	return j.data
}

// SetData replaces the wrapped value and drops the cached rendering.
func (j *JSON) SetData(v value.Value) {
	j.data = v
	j.cached = nil
}

// Kind returns the kind of the wrapped value.
func (j *JSON) Kind() value.Kind {
	return value.KindOf(j.data)
}

// Render returns the canonical encoding of the wrapped value: compact, with
// object keys sorted. The result is computed once and reused until SetData.
func (j *JSON) Render() (string, error) {
	if j.cached != nil {
		return *j.cached, nil
	}
	text, err := codec.Encode(j.data, true)
	if err != nil {
		return "", err
	}
	j.cached = &text
	return text, nil
}

// String implements fmt.Stringer.
func (j *JSON) String() string {
	text, err := j.Render()
	if err != nil {
		return fmt.Sprintf("%%!s(ERROR=%v)", err)
	}
	return text
}

// GoString implements fmt.GoStringer.
func (j *JSON) GoString() string {
	return "JSON: " + j.String()
}

// Equal reports whether j and other hold the same logical content.
func (j *JSON) Equal(other *JSON) bool {
	if other == nil {
		return false
	}
	return value.Equal(j.data, other.data)
}

// Field returns a new JSON over the value stored under the string key name.
func (j *JSON) Field(name string) (*JSON, error) {
	return j.Key(name)
}

// Key returns a new JSON over the value stored under key, which may be a
// typed key such as a value.Date. The result owns a copy of the value.
func (j *JSON) Key(key value.Value) (*JSON, error) {
	obj, ok := j.data.(*value.Object)
	if !ok {
		return nil, errors.NewNavigationError(fmt.Sprintf("cannot access key %s on %s", describeKey(key), j.Kind()), errors.ErrNotObject)
	}
	v, ok := obj.Get(key)
	if !ok {
		return nil, errors.NewNavigationError(fmt.Sprintf("key %s not found", describeKey(key)), errors.ErrKeyNotFound)
	}
	return j.child(v), nil
}

// Index returns a new JSON over element i of the wrapped array. The result
// owns a copy of the element.
func (j *JSON) Index(i int) (*JSON, error) {
	arr, ok := j.data.(value.Array)
	if !ok {
		return nil, errors.NewNavigationError(fmt.Sprintf("cannot access index %d on %s", i, j.Kind()), errors.ErrNotArray)
	}
	if i < 0 || i >= len(arr) {
		return nil, errors.NewNavigationError(fmt.Sprintf("index %d out of range [0, %d)", i, len(arr)), errors.ErrIndexOutOfRange)
	}
	return j.child(arr[i]), nil
}

// Path follows a dot separated path such as "users.0.name". Segments index
// arrays when the current value is an array and select keys otherwise. A
// segment naming a missing key is retried as a date or datetime key when it
// denotes one. An empty path returns a copy of j.
func (j *JSON) Path(path string) (*JSON, error) {
	cur := j.child(j.data)
	if path == "" {
		return cur, nil
	}
	for _, seg := range strings.Split(path, ".") {
		next, err := cur.step(seg)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (j *JSON) step(seg string) (*JSON, error) {
	if _, ok := j.data.(value.Array); ok {
		i, err := strconv.Atoi(seg)
		if err != nil {
			return nil, errors.NewNavigationError(fmt.Sprintf("array index %q is not a number", seg), errors.ErrIndexOutOfRange)
		}
		return j.Index(i)
	}
	next, err := j.Field(seg)
	if err == nil || !stderrors.Is(err, errors.ErrKeyNotFound) {
		return next, err
	}
	if typed, ok := value.RecognizeDate(seg); ok {
		if next, terr := j.Key(typed); terr == nil {
			return next, nil
		}
	}
	return nil, err
}

func (j *JSON) child(v value.Value) *JSON {
	return &JSON{data: value.Clone(v), opts: j.opts}
}

func describeKey(key value.Value) string {
	if text, ok := value.KeyString(key); ok {
		return strconv.Quote(text)
	}
	return fmt.Sprintf("%v", key)
}
