package gameerr

import (
	"errors"
	"fmt"
)

// Error is the structured error type returned by the gameplay packages of
// this module. It pairs a machine-readable Code with a human Message and
// optional Metadata for callers that want to inspect specifics (the
// offending card ID, the save schema version found, etc.) without parsing
// the message string.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	cause    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an *Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that preserves cause for errors.Is/As chains.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// WithMetadata returns a copy of e with the given key/value attached.
func (e *Error) WithMetadata(key, value string) *Error {
	next := *e
	next.Metadata = make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		next.Metadata[k] = v
	}
	next.Metadata[key] = value
	return &next
}

// GetCode extracts the Code from err, or "" if err is not (or does not
// wrap) a *Error.
func GetCode(err error) Code {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

// IsCode reports whether err is (or wraps) a *Error with the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts a metadata value, reporting whether it was present.
func GetMetadata(err error, key string) (string, bool) {
	var ge *Error
	if !errors.As(err, &ge) {
		return "", false
	}
	v, ok := ge.Metadata[key]
	return v, ok
}
