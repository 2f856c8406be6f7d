package domain

// Supported answer languages. Malayalam is the default locale of the service.
const (
	LanguageMalayalam = "ml"
	LanguageEnglish   = "en"
)

// AnswerRequest is a farmer question plus optional context fields.
// It is an immutable value passed into the answer orchestrator.
type AnswerRequest struct {
	QueryText      string           `json:"query_text"`
	Language       string           `json:"language"`
	CropType       string           `json:"crop_type,omitempty"`
	FarmerLocation string           `json:"farmer_location,omitempty"`
	Urgency        string           `json:"urgency,omitempty"`
	ImagePath      string           `json:"image_path,omitempty"`
	AudioPath      string           `json:"audio_path,omitempty"`
	FarmerContext  map[string]any   `json:"farmer_context,omitempty"`
	History        []map[string]any `json:"history,omitempty"`
}

// AnswerResponse is the advisory produced for a single request.
// Never persisted by this service; the caller owns storage.
type AnswerResponse struct {
	ResponseText    string  `json:"response_text"`
	ModelUsed       string  `json:"model_used"`
	ConfidenceScore float64 `json:"confidence_score"`
	ProcessingTime  float64 `json:"processing_time"`
	Escalated       bool    `json:"escalated"`
}
