package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanyascan/internal/config"
	"sanyascan/internal/domain"
	"sanyascan/internal/gateway/gemini"
	"sanyascan/internal/port"
)

func newTestGateway(serverURL string) *gemini.Gateway {
	cfg := &config.GatewayConfig{
		Provider:     "gemini",
		APIKey:       "test-gemini-key",
		DefaultModel: "gemini-2.5-flash",
		TimeoutSecs:  30,
	}
	return gemini.NewGatewayWithEndpoint(cfg, serverURL)
}

func successResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func testSegments() []port.PromptSegment {
	return []port.PromptSegment{
		port.TextSegment("วิเคราะห์สัญญานี้"),
		port.InlineSegment("image/jpeg", []byte{0xFF, 0xD8, 0xFF}),
	}
}

func TestGeminiGateway_Generate_Success(t *testing.T) {
	completion := `{"documentType":"สัญญาเงินกู้","riskScore":65}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request headers
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// Verify request body
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		contents := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		assert.Len(t, parts, 2)

		// First part: instruction text
		textPart := parts[0].(map[string]interface{})
		assert.Equal(t, "วิเคราะห์สัญญานี้", textPart["text"])

		// Second part: inline_data
		dataPart := parts[1].(map[string]interface{})
		inlineData := dataPart["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inlineData["mime_type"])
		assert.NotEmpty(t, inlineData["data"])

		// Verify generationConfig
		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genConfig["responseMimeType"])
		assert.Equal(t, 0.3, genConfig["temperature"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(completion))
	}))
	defer server.Close()

	g := newTestGateway(server.URL)

	raw, err := g.Generate(context.Background(), testSegments())

	require.NoError(t, err)
	assert.Equal(t, completion, raw)
}

func TestGeminiGateway_Generate_StatusCategories(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		category   domain.ErrorCategory
		wantStatus int
	}{
		{"rate limited", http.StatusTooManyRequests, domain.CategoryRateLimited, 429},
		{"unauthorized", http.StatusUnauthorized, domain.CategoryAuthOrBilling, 401},
		{"payment required", http.StatusPaymentRequired, domain.CategoryAuthOrBilling, 402},
		{"forbidden", http.StatusForbidden, domain.CategoryAuthOrBilling, 403},
		{"model unavailable", http.StatusNotFound, domain.CategoryModelUnavailable, 404},
		{"server error", http.StatusInternalServerError, domain.CategoryProvider, 500},
		{"bad gateway", http.StatusBadGateway, domain.CategoryProvider, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"upstream says no"}}`))
			}))
			defer server.Close()

			g := newTestGateway(server.URL)

			_, err := g.Generate(context.Background(), testSegments())

			var analysisErr *domain.AnalysisError
			require.ErrorAs(t, err, &analysisErr)
			assert.Equal(t, tt.category, analysisErr.Category)
			assert.Equal(t, tt.wantStatus, analysisErr.Status)
		})
	}
}

func TestGeminiGateway_Generate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	g := newTestGateway(server.URL)

	_, err := g.Generate(context.Background(), testSegments())

	var analysisErr *domain.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, domain.CategoryProvider, analysisErr.Category)
}

func TestGeminiGateway_Generate_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	g := newTestGateway(server.URL)

	_, err := g.Generate(context.Background(), testSegments())

	var analysisErr *domain.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, domain.CategoryTransport, analysisErr.Category)
}

func TestGeminiGateway_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse("{}"))
	}))
	defer server.Close()

	g := newTestGateway(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, testSegments())

	var analysisErr *domain.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, domain.CategoryTransport, analysisErr.Category)
}
