package services

import "fmt"

// Error codes returned by the booking engine. Handlers map these onto
// HTTP statuses; callers can rely on the code to tell "pick another slot"
// (conflict) apart from "this action is never permitted".
const (
	CodeValidation      = "validation_error"
	CodeNotFound        = "not_found"
	CodeUnauthorized    = "unauthorized"
	CodeConflict        = "conflict"
	CodeInvalidState    = "invalid_state"
	CodePolicyViolation = "policy_violation"
	CodeNotBookable     = "professional_not_bookable"
)

type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &AppError{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &AppError{Code: CodeNotFound, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &AppError{Code: CodeUnauthorized, Message: msg}
}

func NewConflictError(msg string) error {
	return &AppError{Code: CodeConflict, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &AppError{Code: CodeInvalidState, Message: msg}
}

func NewPolicyViolationError(msg string) error {
	return &AppError{Code: CodePolicyViolation, Message: msg}
}

func NewNotBookableError(msg string) error {
	return &AppError{Code: CodeNotBookable, Message: msg}
}

// ErrorCode extracts the engine error code, or "" for unknown errors.
func ErrorCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ""
}
