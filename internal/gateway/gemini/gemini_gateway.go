// Package gemini implements port.ModelGateway against Google's Gemini
// generateContent API (the multi-part "contents" provider shape).
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"sanyascan/internal/config"
	"sanyascan/internal/domain"
	"sanyascan/internal/gateway"
	"sanyascan/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	providerName = "gemini"
)

// Gateway implements port.ModelGateway using Google's Gemini API.
type Gateway struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGateway creates a Gemini-backed model gateway.
func NewGateway(cfg *config.GatewayConfig) *Gateway {
	return newGateway(cfg, "")
}

// NewGatewayWithEndpoint creates a gateway pointing at a custom API endpoint (for testing).
func NewGatewayWithEndpoint(cfg *config.GatewayConfig, endpoint string) *Gateway {
	return newGateway(cfg, endpoint)
}

func newGateway(cfg *config.GatewayConfig, endpoint string) *Gateway {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Gateway{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

// Generate performs one generateContent exchange and returns the raw
// completion text. Exactly one outbound call, no retries.
func (g *Gateway) Generate(ctx context.Context, segments []port.PromptSegment) (string, error) {
	parts := make([]map[string]interface{}, 0, len(segments))
	for _, seg := range segments {
		if seg.InlineData != nil {
			parts = append(parts, map[string]interface{}{
				"inline_data": map[string]interface{}{
					"mime_type": seg.InlineData.MIMEType,
					"data":      base64.StdEncoding.EncodeToString(seg.InlineData.Data),
				},
			})
			continue
		}
		parts = append(parts, map[string]interface{}{
			"text": seg.Text,
		})
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.3,
			"responseMimeType": "application/json",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", domain.NewProviderError(fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", domain.NewProviderError(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", gateway.CategorizeTransport(providerName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", gateway.CategorizeTransport(providerName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", gateway.CategorizeStatus(providerName, resp.StatusCode, respBody)
	}

	return completionText(respBody)
}

// geminiResponse models the generateContent API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func completionText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", domain.NewProviderError(fmt.Errorf("unmarshaling response: %w", err))
	}

	if len(resp.Candidates) == 0 {
		return "", domain.NewProviderError(fmt.Errorf("empty response from API: no candidates"))
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", domain.NewProviderError(fmt.Errorf("empty response from API: no parts"))
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}
