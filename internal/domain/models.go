package domain

// RiskLevel classifies the severity of a single risk clause.
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "high"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelLow    RiskLevel = "low"
)

// RiskItem is one risk clause found in a document. The order of items in a
// record is the order the model narrated them and is never re-sorted.
type RiskItem struct {
	Level       RiskLevel `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Clause      string    `json:"clause,omitempty"`
}

// AnalysisRecord is the structured risk report produced for one document.
type AnalysisRecord struct {
	DocumentType    string     `json:"documentType"`
	RiskScore       int        `json:"riskScore"`
	Summary         string     `json:"summary"`
	Risks           []RiskItem `json:"risks"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// AnalysisRequest carries one document to analyze. Exactly one of the image
// payload or Text must be set.
type AnalysisRequest struct {
	ImageBytes []byte
	MIMEType   string
	Text       string
}

// HasImage reports whether the request carries an image payload.
func (r *AnalysisRequest) HasImage() bool {
	return len(r.ImageBytes) > 0
}

// HasText reports whether the request carries a text payload.
func (r *AnalysisRequest) HasText() bool {
	return r.Text != ""
}

// Score label thresholds. 40 and 70 are inclusive lower bounds of their tier;
// the demo UI renders these labels next to the score.
const (
	scoreHighThreshold    = 70
	scoreCautionThreshold = 40
)

// ScoreLabel returns the Thai severity label for a risk score.
func ScoreLabel(score int) string {
	switch {
	case score >= scoreHighThreshold:
		return "ความเสี่ยงสูง"
	case score >= scoreCautionThreshold:
		return "ควรระวัง"
	default:
		return "ความเสี่ยงต่ำ"
	}
}
