// Package apperrors defines the error taxonomy shared by the services and
// the HTTP error middleware.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound: user, note or subsection missing on a read path.
	KindNotFound
	// KindGeneration: the LLM backend call failed or returned unusable content.
	KindGeneration
	// KindConfiguration: a required asset (persona prompt file) is missing.
	KindConfiguration
	// KindMalformedInput: structurally invalid request payload.
	KindMalformedInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindGeneration:
		return "generation_error"
	case KindConfiguration:
		return "configuration_error"
	case KindMalformedInput:
		return "malformed_input"
	default:
		return "unknown"
	}
}

// Error carries a kind plus the wrapped cause so the route boundary can
// distinguish "nothing to answer from" from "could not get an answer".
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func Generation(format string, args ...interface{}) *Error {
	return newError(KindGeneration, format, args...)
}

func Configuration(format string, args ...interface{}) *Error {
	return newError(KindConfiguration, format, args...)
}

func MalformedInput(format string, args ...interface{}) *Error {
	return newError(KindMalformedInput, format, args...)
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{
		Kind: kind,
		Msg:  wrapped.Error(),
		Err:  errors.Unwrap(wrapped),
	}
}

// KindOf reports the kind of err, or KindUnknown for errors outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
