package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Wallet protocol error codes. These are sent to the remote client inside the
// encrypted response, so the set is fixed.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeQuotaExceeded  = "QUOTA_EXCEEDED"
	CodePaymentFailed  = "PAYMENT_FAILED"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL"
)

// AppError is a structured error carrying a wallet protocol code and, for the
// dashboard API, the HTTP status it maps to.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
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

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet protocol ----

func ErrUnauthorized(err error) *AppError {
	return Wrap(CodeUnauthorized, "Unable to decrypt NWC request content.", http.StatusUnauthorized, err)
}

func ErrNotImplemented(method string) *AppError {
	return New(CodeNotImplemented, fmt.Sprintf("%s not currently supported.", method), http.StatusNotImplemented)
}

func ErrQuotaExceeded(maxSats int64) *AppError {
	return New(CodeQuotaExceeded, fmt.Sprintf("Payment would exceed max quota of %d.", maxSats), http.StatusPaymentRequired)
}

func ErrPaymentFailed(err error) *AppError {
	return Wrap(CodePaymentFailed, "Unable to complete payment.", http.StatusBadGateway, err)
}

func ErrNotFound() *AppError {
	return New(CodeNotFound, "Unable to find invoice.", http.StatusNotFound)
}

// ErrInternal wraps any other collaborator failure.
func ErrInternal(err error) *AppError {
	return Wrap(CodeInternal, "Something unexpected happened.", http.StatusInternalServerError, err)
}

// FromError returns err as an *AppError, mapping anything unknown to INTERNAL.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal(err)
}

// ---- Dashboard ----

func ErrFeatureDisabled(feature string) *AppError {
	return New("FEATURE_DISABLED", fmt.Sprintf("%s feature is disabled", feature), http.StatusForbidden)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// Validation returns a bad-request error for malformed dashboard input.
func Validation(message string) *AppError {
	return New("VALIDATION", message, http.StatusBadRequest)
}
