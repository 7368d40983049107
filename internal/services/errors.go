package services

import (
	"errors"
	"fmt"

	"hrms-backend/internal/repositories"
)

// Kind classifies a service failure. Handlers turn it into a status code.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalid
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Error is a failure the caller can act on. Message is shown to the client verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func Invalid(msg string) *Error      { return &Error{Kind: KindInvalid, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

func Invalidf(format string, args ...any) *Error {
	return Invalid(fmt.Sprintf(format, args...))
}

// IsKind reports whether err is a service error of kind k.
func IsKind(err error, k Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == k
}

// Messages shared across services
const (
	msgProfileNotFoundForUser = "Employee profile not found for this user"
	msgProfileNotFound        = "Employee profile not found"
	msgUserNotFound           = "User not found"
	msgEmailRegistered        = "Email already registered"
	msgBadCredentials         = "Incorrect email or password"
	msgNotPending             = "Request is not pending"
)

// fromStore converts repository sentinels; anything else is returned unchanged.
func fromStore(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return NotFound(notFound)
	case errors.Is(err, repositories.ErrInvalidReference):
		return Invalid("Referenced record does not exist")
	case errors.Is(err, repositories.ErrCheckViolation):
		return Invalid("Value is out of the allowed range")
	}
	return err
}
