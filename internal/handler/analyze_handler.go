package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sanyascan/internal/domain"
	"sanyascan/internal/service"
)

// AnalyzeHandler handles the document analysis endpoint driven by the demo
// widget on the marketing site.
type AnalyzeHandler struct {
	analysisService service.AnalysisService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analysisService service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisService: analysisService}
}

// AnalyzeRequest is the inbound payload. Exactly one field must be populated.
type AnalyzeRequest struct {
	// ImageBase64 is a data URI or bare base64 string of a document photo or PDF.
	ImageBase64 string `json:"imageBase64"`
	// TextContent is the raw text of the document.
	TextContent string `json:"textContent"`
}

// Analyze handles POST /api/v1/analyze
//
// Success replies are {"success": true, "analysis": {...}}; failures are
// {"error": "<message>"} with the category's status code. This envelope is
// the contract with the demo widget and is fixed.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAnalysisError(c, domain.NewInvalidInputError(err))
		return
	}

	analysisReq, err := toAnalysisRequest(&req)
	if err != nil {
		RespondAnalysisError(c, err)
		return
	}

	record, err := h.analysisService.Analyze(c.Request.Context(), analysisReq)
	if err != nil {
		RespondAnalysisError(c, err)
		return
	}

	RespondAnalysis(c, record)
}

// toAnalysisRequest decodes the wire payload into a domain request. The image
// field accepts a full data URI (the demo widget sends the canvas export
// verbatim) or bare base64; the media type is taken from the URI prefix when
// present.
func toAnalysisRequest(req *AnalyzeRequest) (*domain.AnalysisRequest, error) {
	if req.ImageBase64 == "" {
		return &domain.AnalysisRequest{Text: req.TextContent}, nil
	}

	mimeType, payload := splitDataURI(req.ImageBase64)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Errorf("decoding image payload: %w", err))
	}

	return &domain.AnalysisRequest{
		ImageBytes: data,
		MIMEType:   mimeType,
		Text:       req.TextContent,
	}, nil
}

// splitDataURI separates an optional "data:<mime>;base64," prefix from the
// encoded payload. Returns an empty media type for bare base64 input.
func splitDataURI(s string) (mimeType, payload string) {
	const marker = "base64,"
	idx := strings.Index(s, marker)
	if idx < 0 {
		return "", s
	}
	header := s[:idx]
	payload = s[idx+len(marker):]
	header = strings.TrimPrefix(header, "data:")
	header = strings.TrimSuffix(header, ";")
	return header, payload
}

// RespondAnalysis sends the success envelope.
func RespondAnalysis(c *gin.Context, record *domain.AnalysisRecord) {
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": record})
}

// RespondAnalysisError maps an analysis failure to its status and fixed
// user-facing message. Anything uncategorized is reported as a generic
// provider failure; no raw error ever reaches the widget.
func RespondAnalysisError(c *gin.Context, err error) {
	var analysisErr *domain.AnalysisError
	if !errors.As(err, &analysisErr) {
		analysisErr = domain.NewProviderError(err)
	}
	if analysisErr.Status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] analysis failed (%s): %v", requestID, analysisErr.Category, analysisErr.Err)
	}
	c.JSON(analysisErr.Status, gin.H{"error": analysisErr.UserMessage()})
}
