// Package apperror holds the client-visible error taxonomy. Services return these
// (optionally wrapped) and the HTTP error handler turns them into status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    int
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

// Is matches on code and message so wrapped copies still compare equal to the sentinels.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

var (
	ErrSessionNotFound   = &AppError{Code: http.StatusNotFound, Message: "chat session not found"}
	ErrAccessDenied      = &AppError{Code: http.StatusForbidden, Message: "access denied"}
	ErrEmptyInput        = &AppError{Code: http.StatusBadRequest, Message: "text cannot be empty"}
	ErrExtractionFailure = &AppError{Code: http.StatusBadRequest, Message: "could not extract text"}
	ErrGatewayFailure    = &AppError{Code: http.StatusInternalServerError, Message: "summary generation failed"}
	ErrUnauthorized      = &AppError{Code: http.StatusUnauthorized, Message: "could not validate credentials"}
	ErrConflict          = &AppError{Code: http.StatusConflict, Message: "resource already exists"}
	ErrValidation        = &AppError{Code: http.StatusBadRequest, Message: "validation failed"}
)

// Wrap attaches a cause to a sentinel while keeping errors.Is working.
func Wrap(sentinel *AppError, err error) *AppError {
	return &AppError{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// WithMessage keeps the sentinel's code but exposes a more specific message.
func WithMessage(sentinel *AppError, message string, err error) error {
	return fmt.Errorf("%w: %w", Wrap(sentinel, err), &detail{message: message})
}

type detail struct {
	message string
}

func (d *detail) Error() string {
	return d.message
}

// Detail returns the client-facing detail attached by WithMessage, if any.
func Detail(err error) (string, bool) {
	var d *detail
	if errors.As(err, &d) {
		return d.message, true
	}
	return "", false
}

// HTTPStatus maps any error to a status code, defaulting to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
