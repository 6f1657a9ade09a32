package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// Error codes returned to clients alongside the message.
const (
	CodeAccessUnauthorized     = "ACCESS_UNAUTHORIZED"
	CodeWorkspaceOwnerRequired = "WORKSPACE_OWNER_REQUIRED"
	CodeResourceNotFound       = "RESOURCE_NOT_FOUND"
	CodeValidationError        = "VALIDATION_ERROR"
	CodeInternalServerError    = "INTERNAL_SERVER_ERROR"
)

// Error is the typed error returned by services and the rbac package.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeResourceNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeAccessUnauthorized, Message: message}
}

func Forbidden(message, code string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Code: CodeValidationError, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternalServerError, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsForbidden(err error) bool    { return KindOf(err) == KindForbidden }
func IsBadRequest(err error) bool   { return KindOf(err) == KindBadRequest }
