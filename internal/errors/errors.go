// Package errors provides custom error types for the Monevo ledger.
// All service-layer errors should use AppError to ensure consistent,
// typed error responses that the transport layer can render without
// inspecting raw strings.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code, so a wrapped error compares equal to its
// sentinel with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Normalization and parsing errors. These never escape the parse facade;
// the ledger surfaces them for direct API input.
var (
	ErrInvalidAmount      = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive number", StatusCode: http.StatusBadRequest}
	ErrInvalidPeriodicity = &AppError{Code: "INVALID_PERIODICITY", Message: "Periodicity must be daily, weekly, monthly or yearly", StatusCode: http.StatusBadRequest}
	ErrNoEntityFound      = &AppError{Code: "NO_ENTITY_FOUND", Message: "The sentence is missing a required amount or category", StatusCode: http.StatusBadRequest}
)

// Ledger errors.
var (
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A budget for this category already exists", StatusCode: http.StatusConflict}
	ErrUnknownCategory   = &AppError{Code: "UNKNOWN_CATEGORY", Message: "No budget exists for this category", StatusCode: http.StatusNotFound}
	ErrMovementNotFound  = &AppError{Code: "MOVEMENT_NOT_FOUND", Message: "Movement not found", StatusCode: http.StatusNotFound}
)

// Storage errors.
var (
	ErrPersistenceFailure = &AppError{Code: "PERSISTENCE_FAILURE", Message: "The storage operation could not be completed", StatusCode: http.StatusInternalServerError}
)
