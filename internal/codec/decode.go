// Package codec converts between JSON text and value trees.
//
// Decoding keeps every number exact: integer literals that fit in an int64
// become integers and all other numbers become *apd.Decimal. With
// Options.ParseDates set, strings that denote ISO-8601 dates or datetimes,
// both as values and as object keys, become value.Date and value.DateTime.
//
// Encoding writes decimals, dates and datetimes as JSON strings, so the text
// never carries a number a reader could round.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/mcncl/canonjson/internal/errors"
	"github.com/mcncl/canonjson/internal/value"
	"github.com/sirupsen/logrus"
)

// Options controls decoding.
type Options struct {
	// ParseDates enables date and datetime recognition for string values
	// and object keys.
	ParseDates bool
	// Logger receives key collision warnings. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// Decode parses a single JSON value from data.
func Decode(data []byte, opts Options) (value.Value, error) {
	return DecodeReader(bytes.NewReader(data), opts)
}

// DecodeString parses a single JSON value from s.
func DecodeString(s string, opts Options) (value.Value, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return DecodeReader(strings.NewReader(s), opts)
}

// DecodeReader parses a single JSON value from r. Anything other than
// whitespace after the value is an error.
func DecodeReader(r io.Reader, opts Options) (value.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, parseError(err)
	}
	root, err := readToken(dec, tok)
	if err != nil {
		return nil, parseError(err)
	}

	if _, err := dec.Token(); err == nil {
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError(fmt.Sprintf("invalid trailing data after first JSON value: %v", err), errors.ErrInvalidJSON)
	}

	if opts.ParseDates {
		root = ParseDates(root, opts.logger())
	}
	return root, nil
}

// DecodeFile parses a single JSON value from the file at path.
func DecodeFile(path string, opts Options) (value.Value, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to open file '%s'", path), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			opts.logger().WithError(err).WithField("path", path).Warn("error closing file")
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to get file stats for '%s'", path), err)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(fmt.Sprintf("input file '%s' is empty", path), errors.ErrFileEmpty)
	}

	return DecodeReader(file, opts)
}

// parseError maps decoder failures onto parsing errors.
func parseError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// next reads one token; running out of input inside a container is
// unexpected.
func next(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if stderrors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func readToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return readObject(dec)
		case '[':
			return readArray(dec)
		}
		return nil, errors.NewParsingError(fmt.Sprintf("unexpected delimiter %q", rune(t)), errors.ErrInvalidJSON)
	case json.Number:
		v, err := value.ParseNumber(string(t))
		if err != nil {
			return nil, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
		}
		return v, nil
	case string, bool, nil:
		return t, nil
	default:
		return nil, errors.NewParsingError(fmt.Sprintf("unexpected token %v", tok), errors.ErrInvalidJSON)
	}
}

func readObject(dec *json.Decoder) (value.Value, error) {
	obj := value.NewObject()
	for dec.More() {
		tok, err := next(dec)
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.NewParsingError(fmt.Sprintf("object key must be a string, got %v", tok), errors.ErrInvalidJSON)
		}
		if tok, err = next(dec); err != nil {
			return nil, err
		}
		val, err := readToken(dec, tok)
		if err != nil {
			return nil, err
		}
		// Duplicate keys in the text: the last one wins.
		obj.Set(key, val)
	}
	if _, err := next(dec); err != nil {
		return nil, err
	}
	return obj, nil
}

func readArray(dec *json.Decoder) (value.Value, error) {
	arr := value.Array{}
	for dec.More() {
		tok, err := next(dec)
		if err != nil {
			return nil, err
		}
		val, err := readToken(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := next(dec); err != nil {
		return nil, err
	}
	return arr, nil
}
