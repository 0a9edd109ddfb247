package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Validation errors
	CodeBadRequest        = "BAD_REQUEST"
	CodeContractViolation = "CONTRACT_VIOLATION"

	// Resource errors
	CodeNotFound = "NOT_FOUND"

	// Provider errors
	CodeProviderCallFailure       = "PROVIDER_CALL_FAILURE"
	CodeMalformedProviderResponse = "MALFORMED_PROVIDER_RESPONSE"
	CodeProviderNotConfigured     = "PROVIDER_NOT_CONFIGURED"

	// Internal errors
	CodeInternalError = "INTERNAL_ERROR"
	CodeConfigError   = "CONFIG_ERROR"
	CodeTimeout       = "TIMEOUT"
	CodeRateLimited   = "RATE_LIMITED"
)

// AppError represents a structured application error
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Cause is the wrapped error's message, or "" when there is none.
func (e *AppError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Constructor functions
func New(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// Validation errors

// ContractViolation is structurally invalid caller input. Nothing is defaulted.
func ContractViolation(err error) *AppError {
	return &AppError{
		Code:    CodeContractViolation,
		Message: "invalid request",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

// Resource errors
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
	}
}

// Provider errors
func ProviderCallFailure(provider string, err error) *AppError {
	return &AppError{
		Code:    CodeProviderCallFailure,
		Message: fmt.Sprintf("provider call failed: %s", provider),
		Status:  http.StatusBadGateway,
		Details: map[string]any{"provider": provider},
		Err:     err,
	}
}

func MalformedProviderResponse(provider string, err error) *AppError {
	return &AppError{
		Code:    CodeMalformedProviderResponse,
		Message: fmt.Sprintf("malformed response from provider: %s", provider),
		Status:  http.StatusBadGateway,
		Details: map[string]any{"provider": provider},
		Err:     err,
	}
}

func ProviderNotConfigured(provider string) *AppError {
	return &AppError{
		Code:    CodeProviderNotConfigured,
		Message: fmt.Sprintf("provider not configured: %s", provider),
		Status:  http.StatusServiceUnavailable,
		Details: map[string]any{"provider": provider},
	}
}

// Internal errors
func InternalWithError(err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func ConfigError(message string) *AppError {
	return &AppError{
		Code:    CodeConfigError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

func Timeout(operation string) *AppError {
	return &AppError{
		Code:    CodeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Status:  http.StatusGatewayTimeout,
	}
}

// RateLimited is returned when a client exceeds its request window.
func RateLimited(retryAfterSec int) *AppError {
	return &AppError{
		Code:    CodeRateLimited,
		Message: "too many requests",
		Status:  http.StatusTooManyRequests,
		Details: map[string]any{"retry_after": retryAfterSec},
	}
}

// Helper functions
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalWithError(err)
}
