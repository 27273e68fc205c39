package domain

import (
	"errors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageFailedBodyRequest = "failed to parse request body"
	MessageInvalidID         = "invalid identifier"

	// Kinds. Every error returned by a service wraps exactly one of these.
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	ErrParseID        = NewError(ErrInvalidInput, "failed to parse identifier")
	ErrUserNotAllowed = NewError(ErrForbidden, "user not allowed")
	ErrTokenNotFound  = NewError(ErrUnauthorized, "failed to token not found")
	ErrTokenExpired   = NewError(ErrUnauthorized, "token expired")
	ErrTokenInvalid   = NewError(ErrUnauthorized, "token invalid")
)

// Error is a domain failure with a caller-facing message and a kind
// (ErrNotFound, ErrForbidden, ...) reachable through errors.Is.
type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
