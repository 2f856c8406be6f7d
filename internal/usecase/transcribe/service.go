// Package transcribe stubs voice-to-text. A real deployment would call an
// external speech-to-text provider with the same fallback contract as the
// vision service.
package transcribe

import (
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// Placeholder transcripts returned while no provider is wired.
const (
	placeholderMalayalam = "ഓഡിയോ ട്രാൻസ്ക്രിപ്ഷൻ സജ്ജമല്ല. താൽക്കാലിക മറുപടി."
	placeholderEnglish   = "Voice transcription service not configured. Returning placeholder."
)

// Result is the transcription outcome.
type Result struct {
	Status     string  `json:"status"`
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Filename   string  `json:"filename"`
	Confidence float64 `json:"confidence"`
}

// Service produces placeholder transcripts.
type Service struct{}

// New creates a transcription service.
func New() *Service {
	return &Service{}
}

// Transcribe returns the fixed placeholder for the requested language.
func (s *Service) Transcribe(language, filename string) Result {
	text := placeholderEnglish
	if language != domain.LanguageEnglish {
		language = domain.LanguageMalayalam
		text = placeholderMalayalam
	}
	return Result{
		Status:     "success",
		Text:       text,
		Language:   language,
		Filename:   filename,
		Confidence: 0.5,
	}
}
