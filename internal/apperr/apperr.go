// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	BadInput
	Unauthenticated
	Unauthorized
	NotFound
	Conflict
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case BadInput:
		return "bad_input"
	case Unauthenticated:
		return "unauthenticated"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Forbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error carries a user-visible message and the kind used to pick a status code.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewBadInput(message string) *Error { return New(BadInput, message) }
func NewUnauthenticated(message string) *Error { return New(Unauthenticated, message) }
func NewUnauthorized(message string) *Error { return New(Unauthorized, message) }
func NewNotFound(message string) *Error { return New(NotFound, message) }
func NewConflict(message string) *Error { return New(Conflict, message) }
func NewForbidden(message string) *Error { return New(Forbidden, message) }

// KindOf reports the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the user-visible message for err. Errors outside the
// taxonomy never leak their text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Internal server error"
}
