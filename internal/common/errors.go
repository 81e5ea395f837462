package common

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeInvalidArgument is the AppError code for malformed input to an operation.
const CodeInvalidArgument = "INVALID_ARGUMENT"

// ErrInvalidArgument is the sentinel wrapped by every InvalidArgument error.
var ErrInvalidArgument = errors.New("invalid argument")

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// InvalidArgument builds the single domain error kind raised on bad input.
// The returned error satisfies errors.Is(err, ErrInvalidArgument).
func InvalidArgument(format string, args ...any) *AppError {
	msg := fmt.Sprintf(format, args...)
	return NewAppError(CodeInvalidArgument, msg, http.StatusBadRequest, fmt.Errorf("%w: %s", ErrInvalidArgument, msg))
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// IsInvalidArgument reports whether err is, or wraps, an InvalidArgument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
