package errors

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by AppError values; match them with errors.Is.
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrKeyNotFound     = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotObject       = errors.New("value is not an object")
	ErrNotArray        = errors.New("value is not an array")
	ErrUnsupportedType = errors.New("unsupported value type")
)

// ErrorType names the stage of the pipeline an AppError came from.
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeEncoding   ErrorType = "encoding"
	ErrorTypeNavigation ErrorType = "navigation"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// AppError pairs a category and a message with the underlying cause, which
// is usually one of the sentinels above.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError of the same Type, so callers can test the
// category with errors.Is(err, &AppError{Type: ErrorTypeParsing}).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// NewInputError reports a problem reading input.
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError reports malformed or empty JSON text.
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewEncodingError reports a value tree that cannot be rendered.
func NewEncodingError(message string, err error) *AppError {
	return newError(ErrorTypeEncoding, message, err)
}

// NewNavigationError reports a failed field, key or index lookup.
func NewNavigationError(message string, err error) *AppError {
	return newError(ErrorTypeNavigation, message, err)
}

// NewOutputError reports a problem writing output.
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// NewConfigError reports a config file that cannot be loaded or validated.
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

var friendlyPrefix = map[ErrorType]string{
	ErrorTypeInput:      "Input error",
	ErrorTypeParsing:    "JSON parsing error",
	ErrorTypeEncoding:   "JSON encoding error",
	ErrorTypeNavigation: "Path error",
	ErrorTypeOutput:     "Output error",
	ErrorTypeConfig:     "Configuration error",
}

// Checked in order; the first sentinel err wraps picks the message.
var friendlySentinels = []struct {
	err error
	msg string
}{
	{ErrEmptyInput, "The input is empty. Please provide valid JSON data."},
	{ErrInvalidJSON, "The input contains invalid JSON. Please check your JSON syntax."},
	{ErrMultipleJSON, "Multiple JSON values found. Please provide a single JSON value."},
	{ErrFileNotFound, "The specified file could not be found. Please check the file path."},
	{ErrFileEmpty, "The specified file is empty. Please provide a file with valid JSON content."},
	{ErrNoInput, "No input provided. Please specify a file with -i or pipe JSON data to stdin."},
	{ErrInvalidFilePath, "Invalid file path. Please provide a valid file path."},
	{ErrKeyNotFound, "The requested key does not exist."},
	{ErrIndexOutOfRange, "The requested index is out of range."},
}

// UserFriendlyError formats err for the terminal. An AppError is shown with
// its category and message; a bare sentinel gets a longer hint.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		prefix, ok := friendlyPrefix[appErr.Type]
		if !ok {
			prefix = "Error"
		}
		return fmt.Sprintf("%s: %s", prefix, appErr.Message)
	}

	for _, s := range friendlySentinels {
		if errors.Is(err, s.err) {
			return "Error: " + s.msg
		}
	}
	return fmt.Sprintf("Error: %v", err)
}
