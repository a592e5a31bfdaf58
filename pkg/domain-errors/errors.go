// Package domainerrors provides coded errors shared by services and HTTP
// handlers. Services wrap infrastructure failures into coded errors; handlers
// translate codes into HTTP statuses without inspecting error strings.
//
// Usage in services:
//
//	return dErrors.New(dErrors.CodeNotFound, "year not found")
//	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load boundaries")
//
// Usage in handlers:
//
//	if dErrors.HasCode(err, dErrors.CodeValidation) { ... }
//	status := dErrors.ToHTTPStatus(err)
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for translation at the transport boundary.
type Code string

const (
	// CodeValidation marks input that fails domain validation rules.
	CodeValidation Code = "validation"
	// CodeBadRequest marks malformed requests (undecodable body, bad params).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks lookups for entities that do not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict marks operations rejected because of existing state.
	CodeConflict Code = "conflict"
	// CodeUnavailable marks dependencies that are temporarily unreachable.
	CodeUnavailable Code = "unavailable"
	// CodeTimeout marks operations that exceeded their deadline.
	CodeTimeout Code = "timeout"
	// CodeInternal marks unexpected failures that should not leak details.
	CodeInternal Code = "internal"
	// CodeInvariantViolation marks broken domain invariants. These indicate
	// bugs or corrupt data, not bad user input.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a coded domain error. It optionally wraps a cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error. A nil err yields nil
// so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var dErr *Error
	for errors.As(err, &dErr) {
		if dErr.Code == code {
			return true
		}
		err = dErr.Err
		dErr = nil
	}
	return false
}

// Is is a readability alias for HasCode at call sites that read like
// errors.Is.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of the outermost coded error, or CodeInternal when
// the chain carries none.
func CodeOf(err error) Code {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return CodeInternal
}

// MessageOf returns the message of the outermost coded error. Uncoded errors
// map to a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a domain error code to an HTTP status. Uncoded errors map
// to 500.
func ToHTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
