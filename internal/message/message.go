// Package message implements the envelope used to exchange JSON payloads:
// a type tag plus a wrapped value.
package message

import (
	"fmt"

	"github.com/mcncl/canonjson/internal/codec"
	"github.com/mcncl/canonjson/internal/errors"
	"github.com/mcncl/canonjson/internal/jsonwrap"
	"github.com/mcncl/canonjson/internal/value"
)

// TypeJSON is the tag carried by JSON payload messages.
const TypeJSON = "json"

const (
	fieldData = "data"
	fieldType = "type"
)

// Message is a tagged payload.
type Message struct {
	Type string
	Data *jsonwrap.JSON
}

// New returns a JSON message around data.
func New(data *jsonwrap.JSON) *Message {
	return &Message{Type: TypeJSON, Data: data}
}

// ToWrappedJSON returns the whole envelope as a JSON value of the form
// {"data": <payload>, "type": <tag>}. A nil payload is encoded as null.
func (m *Message) ToWrappedJSON() (*jsonwrap.JSON, error) {
	env := value.NewObjectSize(2)
	var payload value.Value
	if m.Data != nil {
		payload = value.Clone(m.Data.Data())
	}
	env.Set(fieldData, payload)
	env.Set(fieldType, m.Type)
	return jsonwrap.New(env)
}

// Decode parses an envelope produced by ToWrappedJSON.
func Decode(text []byte, opts codec.Options) (*Message, error) {
	env, err := jsonwrap.NewWithOptions(text, opts)
	if err != nil {
		return nil, err
	}

	tag, err := env.Field(fieldType)
	if err != nil {
		return nil, err
	}
	typ, ok := tag.Data().(string)
	if !ok {
		return nil, errors.NewParsingError(fmt.Sprintf("message type must be a string, got %s", tag.Kind()), errors.ErrInvalidJSON)
	}

	data, err := env.Field(fieldData)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, Data: data}, nil
}
