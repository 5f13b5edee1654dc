package error

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// GenericInternalMessage is the only message a client ever sees for an unhandled error.
const GenericInternalMessage = "Internal server error"

type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Details map[string]any `json:"details,omitempty"`
	// Detail carries an upstream error body untouched.
	Detail []byte `json:"-"`
	Err    error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches field level details (validation failures).
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// Wrap keeps the underlying cause for server side logging.
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func NewValidation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Status: http.StatusBadRequest}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

// NewUpstream mirrors the upstream status; a zero or non-error status becomes 500.
func NewUpstream(status int, message string, detail []byte) *AppError {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &AppError{Code: CodeUpstream, Message: message, Status: status, Detail: detail}
}

func NewInternal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: GenericInternalMessage, Status: http.StatusInternalServerError, Err: err}
}

// MapError converts any error into an AppError. Errors that are not already
// classified become an InternalError so nothing about them leaks to the client.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeValidation
}
