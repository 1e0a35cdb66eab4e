package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned in API responses. Each code maps to exactly one HTTP
// status (see StatusFor), so handlers never pick statuses themselves.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyLiked       = "ALREADY_LIKED"
	CodeNotLiked           = "NOT_LIKED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorItem is one entry of the error envelope. Param is only set for
// field-level validation failures.
type ErrorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse is the standardized API error envelope: {"errors":[{"msg":...}]}.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// AppError is a custom application error carrying a taxonomy code.
type AppError struct {
	Code    string
	Message string
	Fields  []ErrorItem
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

// Predefined error constructors

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewFieldValidationError wraps the full list of failing field rules so the
// caller receives every failure, not just the first.
func NewFieldValidationError(fields []ErrorItem) *AppError {
	msg := "Validation failed"
	if len(fields) > 0 {
		msg = fields[0].Msg
	}
	return &AppError{Code: CodeValidation, Message: msg, Fields: fields}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message}
}

func NewTokenInvalidError(message string) *AppError {
	return &AppError{Code: CodeTokenInvalid, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found"}
}

func NewAlreadyLikedError() *AppError {
	return &AppError{Code: CodeAlreadyLiked, Message: "Post already liked"}
}

func NewNotLikedError() *AppError {
	return &AppError{Code: CodeNotLiked, Message: "Post has not yet been liked"}
}

// NewInvalidCredentialsError is shared by the unknown-email and wrong-password
// paths so the two are indistinguishable to callers.
func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Server error", Err: err}
}

// StatusFor maps an error-taxonomy code to its HTTP status. Forbidden is 403
// here, not the 401 the legacy API used.
func StatusFor(code string) int {
	switch code {
	case CodeValidation, CodeAlreadyLiked, CodeNotLiked, CodeInvalidCredentials:
		return fiber.StatusBadRequest
	case CodeUnauthenticated, CodeTokenInvalid:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError renders err into the standardized envelope. Unknown error
// types are treated as internal failures; their details stay server-side.
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewInternalError(err)
	}

	items := appErr.Fields
	if len(items) == 0 {
		items = []ErrorItem{{Msg: appErr.Message}}
	}

	return c.Status(StatusFor(appErr.Code)).JSON(ErrorResponse{Errors: items})
}
