// Package normalizer recovers a well-formed analysis record from loosely
// formatted model output. The model is instructed to emit pure JSON but does
// not always comply: completions arrive wrapped in markdown fences, prefixed
// with a bare "json" label, or surrounded by prose. Recovery is an ordered
// chain of pure text transforms, tried left to right, stopping at the first
// candidate that decodes; when every attempt fails a degraded record is
// synthesized so a successful network exchange always yields a renderable
// result.
package normalizer

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"sanyascan/internal/domain"
)

var errNotObject = errors.New("completion is not a JSON object")

// fallback record contents. Every field the demo UI renders must be present.
const (
	fallbackDocumentType   = "เอกสารทั่วไป"
	fallbackRiskScore      = 50
	fallbackRecommendation = "กรุณาปรึกษาผู้เชี่ยวชาญเพิ่มเติม"

	fallbackSummaryRunes = 200
)

var (
	fenceJSONRe = regexp.MustCompile("(?i)```json\\s*")
	fenceRe     = regexp.MustCompile("```\\s*")
	jsonLabelRe = regexp.MustCompile(`(?i)^["']?json\s*`)
)

// recoverStep is one pure transform in the chain. It returns a candidate
// text to try decoding, or false when the transform does not apply.
type recoverStep struct {
	name string
	fn   func(string) (string, bool)
}

var steps = []recoverStep{
	{name: "direct", fn: direct},
	{name: "strip_artifacts", fn: stripArtifacts},
	{name: "extract_object", fn: extractObject},
}

// Normalize recovers an AnalysisRecord from raw completion text. It never
// fails: if no recovery step produces decodable JSON, the terminal fallback
// record is returned. The second return value names the step that succeeded,
// or "fallback".
func Normalize(raw string) (*domain.AnalysisRecord, string) {
	for _, step := range steps {
		candidate, ok := step.fn(raw)
		if !ok {
			continue
		}
		if record, err := decode(candidate); err == nil {
			return record, step.name
		}
	}
	return fallbackRecord(raw), "fallback"
}

func direct(text string) (string, bool) {
	return text, true
}

// stripArtifacts removes common wrapping artifacts: code-fence markers, a
// leading bare "json" label, surrounding quote characters, and whitespace.
func stripArtifacts(text string) (string, bool) {
	cleaned := fenceJSONRe.ReplaceAllString(text, "")
	cleaned = fenceRe.ReplaceAllString(cleaned, "")
	cleaned = jsonLabelRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.Trim(cleaned, `"'`)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == text {
		return "", false
	}
	return cleaned, true
}

// extractObject takes the greedy first-{-to-last-} substring, tolerating
// prose before and after the object.
func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// decode unmarshals candidate text into a record. Only JSON objects are
// accepted; a null risks list becomes an empty slice so the record always
// serializes with a risks array.
func decode(text string) (*domain.AnalysisRecord, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, errNotObject
	}
	var record domain.AnalysisRecord
	if err := json.Unmarshal([]byte(trimmed), &record); err != nil {
		return nil, err
	}
	if record.Risks == nil {
		record.Risks = []domain.RiskItem{}
	}
	return &record, nil
}

// fallbackRecord synthesizes the degraded-but-valid terminal record: a
// neutral document type, a mid-range score, and the head of the raw text as
// the summary.
func fallbackRecord(raw string) *domain.AnalysisRecord {
	return &domain.AnalysisRecord{
		DocumentType:    fallbackDocumentType,
		RiskScore:       fallbackRiskScore,
		Summary:         truncateRunes(raw, fallbackSummaryRunes),
		Risks:           []domain.RiskItem{},
		Recommendations: []string{fallbackRecommendation},
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
