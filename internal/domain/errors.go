package domain

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by the typed errors below.
var (
	ErrMissingField     = errors.New("please fill in all required fields")
	ErrNoFile           = errors.New("please select a PDF file")
	ErrNotPDF           = errors.New("please select a PDF file only")
	ErrFileTooLarge     = errors.New("file size must be less than 10MB")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidUser      = errors.New("invalid user id")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrCaptchaMismatch  = errors.New("incorrect security check, please try again")
	ErrUploadInProgress = errors.New("an upload is already in progress")
)

// ValidationError reports bad user input. No network call was made.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps err for field.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// TransportError reports a failed exchange with the record store.
type TransportError struct {
	Op  string // load, save, upload, files
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err for op.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// AuthError reports rejected credentials or a failed captcha.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return e.Err.Error() }

func (e *AuthError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}
