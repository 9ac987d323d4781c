package apperrors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeValidation         ErrorCode = "VALIDATION_ERROR"
	CodeDuplicateEmail     ErrorCode = "DUPLICATE_EMAIL"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeNotAuthenticated   ErrorCode = "NOT_AUTHENTICATED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	CodeRideNotAvailable   ErrorCode = "RIDE_NOT_AVAILABLE"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeStore              ErrorCode = "STORE_ERROR"
)

// AppError carries a machine-checkable code alongside the message that
// the CLI prints to the user.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the error code, or empty string for plain errors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func Validation(format string, args ...interface{}) *AppError {
	return Newf(CodeValidation, format, args...)
}

func DuplicateEmail(email string) *AppError {
	return Newf(CodeDuplicateEmail, "user with email %s already exists", email)
}

func InvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "invalid credentials")
}

func NotAuthenticated(message string) *AppError {
	return New(CodeNotAuthenticated, message)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return Newf(CodeForbidden, format, args...)
}

func InvalidTransition(format string, args ...interface{}) *AppError {
	return Newf(CodeInvalidTransition, format, args...)
}

func RideNotAvailable(format string, args ...interface{}) *AppError {
	return Newf(CodeRideNotAvailable, format, args...)
}

func NotFound(format string, args ...interface{}) *AppError {
	return Newf(CodeNotFound, format, args...)
}

func Store(err error, message string) *AppError {
	return Wrap(err, CodeStore, message)
}
