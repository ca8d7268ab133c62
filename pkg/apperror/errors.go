package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Payload    string `json:"-"` // Raw provider response body, when available
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

// Retryable reports whether the failure is transient (timeouts, 5xx) as
// opposed to a definitive rejection. Queue callers use this to distinguish
// a dropped sync from a terminal provider answer.
func (e *AppError) Retryable() bool {
	return e.HTTPStatus >= http.StatusInternalServerError ||
		e.HTTPStatus == http.StatusRequestTimeout
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

// ---- Remote Gateway (GW) ----

// ErrGatewayResponse wraps a non-2xx response from the payment gateway,
// keeping the raw body for the audit trail.
func ErrGatewayResponse(status int, payload string) *AppError {
	return &AppError{
		Code:       "GW_001",
		Message:    fmt.Sprintf("gateway returned status %d", status),
		HTTPStatus: status,
		Payload:    payload,
	}
}

func ErrGatewayUnreachable(err error) *AppError {
	return Wrap("GW_002", "Gateway unreachable", http.StatusRequestTimeout, err)
}

// ErrInvalidWebhookSignature rejects a webhook delivery whose HMAC signature
// is missing or does not match. Authentication failure, not validation: the
// body was never parsed.
func ErrInvalidWebhookSignature() *AppError {
	return New("GW_003", "Invalid webhook signature", http.StatusUnauthorized)
}

// ---- Custodian (CST) ----

func ErrUnsupportedCustodian(name string) *AppError {
	return New("CST_001", fmt.Sprintf("Unsupported custodian: %s", name), http.StatusBadRequest)
}

// ErrCustodianResponse wraps a non-2xx response from a custodian backend.
// Transport-level details never leak past this error.
func ErrCustodianResponse(custodian string, status int, payload string) *AppError {
	return &AppError{
		Code:       "CST_002",
		Message:    fmt.Sprintf("custodian %s returned status %d", custodian, status),
		HTTPStatus: status,
		Payload:    payload,
	}
}

func ErrCustodianUnreachable(custodian string, err error) *AppError {
	return Wrap("CST_003", fmt.Sprintf("Custodian %s unreachable", custodian), http.StatusRequestTimeout, err)
}

// ---- Payment Business Logic (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_001", "Invalid amount", http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrMissingReason() *AppError {
	return New("PAY_003", "A failure reason is required", http.StatusBadRequest)
}

func ErrNotCryptoPayment() *AppError {
	return New("PAY_004", "Payment method is not crypto", http.StatusBadRequest)
}

func ErrNotOnHold() *AppError {
	return New("PAY_005", "Payment is not awaiting compliance review", http.StatusConflict)
}

// ---- Queue (QUE) ----

func ErrQueueFull() *AppError {
	return New("QUE_001", "Settlement queue is full", http.StatusServiceUnavailable)
}

func ErrQueueClosed() *AppError {
	return New("QUE_002", "Settlement queue is shut down", http.StatusServiceUnavailable)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_001-style validation error.
func Validation(message string) *AppError {
	return New("PAY_001", message, http.StatusBadRequest)
}
