package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidRange      = errors.New("invalid range")
	ErrAmountOutOfLimits = errors.New("amount out of limits")
	ErrInternal          = errors.New("internal error")
	ErrNotLoaded         = errors.New("catalog not loaded")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidRange creates a 400 error for a query whose numeric bounds are
// inconsistent (e.g. minPrice above maxPrice, rating outside 0..5).
func InvalidRange(message string) *AppError {
	return &AppError{
		Code:    "INVALID_RANGE",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidRange,
	}
}

// AmountOutOfLimits creates a 422 error for an amount outside a payment
// method's configured bounds.
func AmountOutOfLimits(amount, min, max float64) *AppError {
	return &AppError{
		Code:    "AMOUNT_OUT_OF_LIMITS",
		Message: fmt.Sprintf("amount %.2f is outside the allowed range [%.2f, %.2f]", amount, min, max),
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrAmountOutOfLimits,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, ErrAmountOutOfLimits):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
