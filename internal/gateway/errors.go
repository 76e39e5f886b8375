package gateway

import (
	"fmt"
	"net/http"

	"sanyascan/internal/domain"
)

// CategorizeStatus maps a non-2xx provider reply to a categorized analysis
// error. Categorization happens here, once, by HTTP status alone; the body is
// carried opaquely for operator logs and never parsed speculatively.
func CategorizeStatus(provider string, status int, body []byte) *domain.AnalysisError {
	baseErr := fmt.Errorf("%s API error (status %d): %s", provider, status, truncate(string(body), 500))
	switch status {
	case http.StatusTooManyRequests:
		return domain.NewRateLimitedError(baseErr)
	case http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusForbidden:
		return domain.NewAuthOrBillingError(status, baseErr)
	case http.StatusNotFound:
		return domain.NewModelUnavailableError(baseErr)
	default:
		return domain.NewProviderError(baseErr)
	}
}

// CategorizeTransport wraps a network or timeout failure reaching the
// provider. Context cancellation and deadline expiry also land here: a timed
// out exchange must resolve to a transport failure, never an unresolved
// outcome.
func CategorizeTransport(provider string, err error) *domain.AnalysisError {
	return domain.NewTransportError(fmt.Errorf("calling %s API: %w", provider, err))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
