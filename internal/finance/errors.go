package finance

import (
	"errors"
	"fmt"

	"github.com/mmynk/boatfinance/internal/calculator"
	"github.com/mmynk/boatfinance/internal/storage"
)

// Code is a stable, caller-facing error code.
type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeNotFound         Code = "NOT_FOUND"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeCalculation      Code = "CALCULATION_ERROR"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
)

// Error is returned by every Manager operation. Message is safe to show to
// callers; Err carries the internal cause and is never shown.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of err, or CodeCalculation for errors that did not
// come from this package.
func CodeOf(err error) Code {
	var ferr *Error
	if errors.As(err, &ferr) {
		return ferr.Code
	}
	return CodeCalculation
}

var (
	errUnauthorized = &Error{Code: CodeUnauthorized, Message: "Authentication required"}
	errNotFound     = &Error{Code: CodeNotFound, Message: "Calculation not found"}
)

func forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func validationError(err error) *Error {
	var verr *calculator.ValidationError
	if errors.As(err, &verr) {
		return &Error{Code: CodeValidation, Message: verr.Message, Err: err}
	}
	return &Error{Code: CodeValidation, Message: err.Error(), Err: err}
}

// storageError hides storage details behind a generic message, except for
// missing records.
func storageError(err error) *Error {
	if errors.Is(err, storage.ErrNotFound) {
		return &Error{Code: CodeNotFound, Message: errNotFound.Message, Err: err}
	}
	return &Error{Code: CodeCalculation, Message: "Unable to process finance calculation", Err: err}
}
