package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// FieldError describes a validation problem with a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents a custom application error. Code is one of the closed
// set of error kinds below; Status is the HTTP status the boundary maps it to.
type AppError struct {
	Code    string
	Status  int
	Message string
	Fields  []FieldError
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

// Error kind codes.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_ERROR"
)

// Predefined error constructors

func NewValidationError(message string, fields ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Status:  fiber.StatusBadRequest,
		Message: message,
		Fields:  fields,
	}
}

func NewAuthenticationError(message string) *AppError {
	if message == "" {
		message = "Authentication failed"
	}
	return &AppError{
		Code:    CodeAuthentication,
		Status:  fiber.StatusUnauthorized,
		Message: message,
	}
}

func NewAuthorizationError(message string) *AppError {
	if message == "" {
		message = "Access denied"
	}
	return &AppError{
		Code:    CodeAuthorization,
		Status:  fiber.StatusForbidden,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Status:  fiber.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError reports a uniqueness violation on the named field.
func NewConflictError(field, message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Status:  fiber.StatusConflict,
		Message: message,
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}
