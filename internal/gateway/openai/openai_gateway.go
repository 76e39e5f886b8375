// Package openai implements port.ModelGateway against the OpenAI Chat
// Completions API (the chat "messages" provider shape).
package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"sanyascan/internal/config"
	"sanyascan/internal/domain"
	"sanyascan/internal/gateway"
	"sanyascan/internal/port"
)

const providerName = "openai"

// Gateway implements port.ModelGateway using the OpenAI Chat Completions API.
type Gateway struct {
	client *goopenai.Client
	model  string
}

// NewGateway creates an OpenAI-backed model gateway.
func NewGateway(cfg *config.GatewayConfig) *Gateway {
	return newGateway(cfg, "")
}

// NewGatewayWithEndpoint creates a gateway pointing at a custom API base URL (for testing).
func NewGatewayWithEndpoint(cfg *config.GatewayConfig, baseURL string) *Gateway {
	return newGateway(cfg, baseURL)
}

func newGateway(cfg *config.GatewayConfig, baseURL string) *Gateway {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout()}
	return &Gateway{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Generate performs one chat-completion exchange and returns the raw
// completion text. Exactly one outbound call, no retries.
func (g *Gateway) Generate(ctx context.Context, segments []port.PromptSegment) (string, error) {
	parts := make([]goopenai.ChatMessagePart, 0, len(segments))
	for _, seg := range segments {
		if seg.InlineData != nil {
			dataURI := fmt.Sprintf("data:%s;base64,%s",
				seg.InlineData.MIMEType,
				base64.StdEncoding.EncodeToString(seg.InlineData.Data))
			parts = append(parts, goopenai.ChatMessagePart{
				Type:     goopenai.ChatMessagePartTypeImageURL,
				ImageURL: &goopenai.ChatMessageImageURL{URL: dataURI},
			})
			continue
		}
		parts = append(parts, goopenai.ChatMessagePart{
			Type: goopenai.ChatMessagePartTypeText,
			Text: seg.Text,
		})
	}

	req := goopenai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.3,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:         goopenai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", categorize(err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewProviderError(fmt.Errorf("empty response from API: no choices"))
	}

	return resp.Choices[0].Message.Content, nil
}

// categorize maps a go-openai client error to a categorized analysis error.
// API replies carry an HTTP status; everything else is a transport failure.
func categorize(err error) *domain.AnalysisError {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return gateway.CategorizeStatus(providerName, apiErr.HTTPStatusCode, []byte(apiErr.Message))
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return gateway.CategorizeStatus(providerName, reqErr.HTTPStatusCode, []byte(reqErr.Error()))
	}
	return gateway.CategorizeTransport(providerName, err)
}
