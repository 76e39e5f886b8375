package port

import "context"

// InlineData is a binary document payload with its declared media type.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// PromptSegment is one ordered part of a composed prompt: either plain text
// or an inline binary payload, never both.
type PromptSegment struct {
	Text       string
	InlineData *InlineData
}

// TextSegment builds a text prompt segment.
func TextSegment(text string) PromptSegment {
	return PromptSegment{Text: text}
}

// InlineSegment builds an inline binary prompt segment.
func InlineSegment(mimeType string, data []byte) PromptSegment {
	return PromptSegment{InlineData: &InlineData{MIMEType: mimeType, Data: data}}
}

// ModelGateway abstracts one synchronous exchange with a generative-AI
// provider: the composed prompt segments go out, the raw completion text
// comes back. Implementations make exactly one outbound call per invocation
// and never retry; failures come back as categorized *domain.AnalysisError
// values.
type ModelGateway interface {
	Generate(ctx context.Context, segments []PromptSegment) (string, error)
}
