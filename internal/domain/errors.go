package domain

import (
	"fmt"
	"net/http"
)

// ErrorCategory classifies an analysis failure. Categories are assigned once,
// at the layer that observed the failure, and never re-interpreted downstream.
type ErrorCategory string

const (
	CategoryInvalidInput     ErrorCategory = "invalid_input"
	CategoryRateLimited      ErrorCategory = "rate_limited"
	CategoryAuthOrBilling    ErrorCategory = "auth_or_billing"
	CategoryModelUnavailable ErrorCategory = "model_unavailable"
	CategoryProvider         ErrorCategory = "provider_error"
	CategoryTransport        ErrorCategory = "transport_failure"

	// CategoryUnparseable exists for completeness but is never surfaced:
	// the normalizer's terminal fallback absorbs unparseable completions.
	CategoryUnparseable ErrorCategory = "unparseable_response"
)

// userMessages maps each category to its fixed user-facing message in the
// product's display language.
var userMessages = map[ErrorCategory]string{
	CategoryInvalidInput:     "ไม่พบข้อมูลเอกสาร กรุณาอัพโหลดรูปภาพหรือข้อความ",
	CategoryRateLimited:      "ระบบมีผู้ใช้งานมาก กรุณารอสักครู่แล้วลองใหม่",
	CategoryAuthOrBilling:    "API Key ไม่ถูกต้อง หรือไม่มีสิทธิ์เข้าถึง",
	CategoryModelUnavailable: "Model ไม่พร้อมใช้งาน กรุณาลองใหม่อีกครั้ง",
	CategoryProvider:         "เกิดข้อผิดพลาดในการวิเคราะห์",
	CategoryTransport:        "การเชื่อมต่อล้มเหลว กรุณาลองใหม่อีกครั้ง",
}

// AnalysisError is a categorized analysis failure. Status is the HTTP status
// the API boundary responds with; for auth/billing failures it carries the
// provider's own status (401, 402, or 403).
type AnalysisError struct {
	Category ErrorCategory
	Status   int
	Err      error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return string(e.Category)
	}
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// UserMessage returns the fixed display-language message for the category.
func (e *AnalysisError) UserMessage() string {
	if msg, ok := userMessages[e.Category]; ok {
		return msg
	}
	return userMessages[CategoryProvider]
}

// NewInvalidInputError reports a request with no usable document payload.
func NewInvalidInputError(err error) *AnalysisError {
	return &AnalysisError{Category: CategoryInvalidInput, Status: http.StatusBadRequest, Err: err}
}

// NewRateLimitedError reports a provider HTTP 429.
func NewRateLimitedError(err error) *AnalysisError {
	return &AnalysisError{Category: CategoryRateLimited, Status: http.StatusTooManyRequests, Err: err}
}

// NewAuthOrBillingError reports a provider 401/402/403, preserving the
// provider's status.
func NewAuthOrBillingError(status int, err error) *AnalysisError {
	return &AnalysisError{Category: CategoryAuthOrBilling, Status: status, Err: err}
}

// NewModelUnavailableError reports a provider HTTP 404.
func NewModelUnavailableError(err error) *AnalysisError {
	return &AnalysisError{Category: CategoryModelUnavailable, Status: http.StatusNotFound, Err: err}
}

// NewProviderError reports any other non-2xx provider reply.
func NewProviderError(err error) *AnalysisError {
	return &AnalysisError{Category: CategoryProvider, Status: http.StatusInternalServerError, Err: err}
}

// NewTransportError reports a network failure or timeout reaching the provider.
func NewTransportError(err error) *AnalysisError {
	return &AnalysisError{Category: CategoryTransport, Status: http.StatusInternalServerError, Err: err}
}
