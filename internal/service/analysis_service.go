package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sanyascan/internal/config"
	"sanyascan/internal/domain"
	"sanyascan/internal/normalizer"
	"sanyascan/internal/port"
	"sanyascan/internal/prompt"
)

// AnalysisService drives the document analysis pipeline: prompt composition,
// one model gateway exchange, and response normalization. Every invocation is
// independent and stateless; concurrent analyses share nothing.
type AnalysisService interface {
	Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisRecord, error)
}

type analysisService struct {
	gateway          port.ModelGateway
	timeout          time.Duration
	maxDocumentBytes int64
}

// NewAnalysisService creates an AnalysisService backed by the given gateway.
func NewAnalysisService(gw port.ModelGateway, gatewayCfg *config.GatewayConfig, analysisCfg *config.AnalysisConfig) AnalysisService {
	return &analysisService{
		gateway:          gw,
		timeout:          gatewayCfg.Timeout(),
		maxDocumentBytes: analysisCfg.MaxDocumentBytes,
	}
}

// Analyze runs one request through the pipeline. All failures come back as
// categorized *domain.AnalysisError values; nothing else crosses this
// boundary. Preflight validation rejects a request with a missing or
// oversized payload before any network call.
func (s *analysisService) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisRecord, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	segments, err := prompt.BuildSegments(req)
	if err != nil {
		return nil, err
	}

	// The gateway exchange is the sole suspension point; bound it so a hung
	// provider resolves to a transport failure instead of an open outcome.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gateway.Generate(ctx, segments)
	if err != nil {
		var analysisErr *domain.AnalysisError
		if errors.As(err, &analysisErr) {
			// Categorized at the gateway layer; pass through untouched.
			return nil, err
		}
		return nil, domain.NewProviderError(err)
	}

	record, step := normalizer.Normalize(raw)
	if step == "fallback" {
		log.Printf("service.AnalysisService: completion not parseable as JSON, returning degraded record (raw: %.120s)", raw)
	}
	return record, nil
}

func (s *analysisService) validate(req *domain.AnalysisRequest) error {
	hasImage := req.HasImage()
	hasText := req.HasText()

	if !hasImage && !hasText {
		return domain.NewInvalidInputError(fmt.Errorf("no document payload supplied"))
	}
	if hasImage && hasText {
		return domain.NewInvalidInputError(fmt.Errorf("image and text payloads are mutually exclusive"))
	}
	if s.maxDocumentBytes > 0 {
		size := int64(len(req.ImageBytes)) + int64(len(req.Text))
		if size > s.maxDocumentBytes {
			return domain.NewInvalidInputError(fmt.Errorf("document exceeds %d bytes", s.maxDocumentBytes))
		}
	}
	return nil
}
