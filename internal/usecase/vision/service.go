// Package vision proxies crop images to an external classification model
// and maps provider failures to structured statuses instead of errors.
package vision

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/transport/huggingface"
)

// Statuses reported to the caller.
const (
	StatusSuccess = "success"
	StatusLoading = "loading"
	StatusError   = "error"
)

const notConfiguredMessage = "Image classification token not configured. " +
	"Set vision.api_token to enable image analysis."

// Result is the structured classification outcome. DiseaseDetected is nil
// when no classification happened.
type Result struct {
	Status               string   `json:"status"`
	DiseaseDetected      *string  `json:"disease_detected"`
	Confidence           float64  `json:"confidence"`
	TreatmentSuggestions []string `json:"treatment_suggestions"`
	Message              string   `json:"message"`
}

// Service handles image classification requests.
type Service struct {
	classifier Classifier // nil when no token is configured
	logger     *zap.Logger
}

// New creates a vision service. classifier may be nil.
func New(classifier Classifier, logger *zap.Logger) *Service {
	return &Service{classifier: classifier, logger: logger}
}

// Process classifies the uploaded image. Empty uploads are the caller's
// fault and return domain.ErrEmptyUpload; every provider-side failure is
// absorbed into a structured status.
func (s *Service) Process(ctx context.Context, image []byte) (Result, error) {
	if len(image) == 0 {
		return Result{}, domain.ErrEmptyUpload
	}

	if s.classifier == nil {
		return Result{
			Status:               StatusSuccess,
			TreatmentSuggestions: []string{},
			Message:              notConfiguredMessage,
		}, nil
	}

	pred, err := s.classifier.Classify(ctx, image)
	if err != nil {
		if errors.Is(err, domain.ErrModelLoading) {
			return Result{Status: StatusLoading, Message: loadingMessage(err)}, nil
		}
		s.logger.Warn("image classification failed", zap.Error(err))
		return Result{
			Status:  StatusError,
			Message: fmt.Sprintf("Image analysis failed: %v", err),
		}, nil
	}

	label := pred.Label
	return Result{
		Status:               StatusSuccess,
		DiseaseDetected:      &label,
		Confidence:           pred.Score,
		TreatmentSuggestions: []string{},
	}, nil
}

func loadingMessage(err error) string {
	var le *huggingface.LoadingError
	if errors.As(err, &le) {
		return le.Message
	}
	return "Model loading"
}
