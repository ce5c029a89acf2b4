// Package apperr defines the domain error type shared by every service.
// An Error carries a Kind, which decides the HTTP status, and a message key
// that is translated per request.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// Error is a translatable domain error.
type Error struct {
	Kind Kind
	Key  string
	Args []any
	Err  error
}

func New(kind Kind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by message key so that copies made by With and Wrap
// still satisfy errors.Is against the original sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Key == e.Key
}

// With returns a copy of e carrying message arguments.
func (e *Error) With(args ...any) *Error {
	c := *e
	c.Args = args
	return &c
}

// Wrap returns a copy of e carrying the underlying cause.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// From extracts the *Error from err's chain, if any.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Shared errors used by more than one layer.
var (
	ErrInternal        = New(KindInternal, "error.internal")
	ErrValidation      = New(KindBadRequest, "error.validation")
	ErrInvalidID       = New(KindBadRequest, "error.invalidId")
	ErrInvalidDate     = New(KindBadRequest, "error.invalidDate")
	ErrAccessDenied    = New(KindForbidden, "auth.accessDenied")
	ErrMissingToken    = New(KindUnauthorized, "auth.missingToken")
	ErrInvalidToken    = New(KindUnauthorized, "auth.invalidToken")
	ErrExpiredToken    = New(KindUnauthorized, "auth.expiredToken")
	ErrTooManyRequests = New(KindTooManyRequests, "auth.tooManyRequests")
)
