package vision

import (
	"context"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/transport/huggingface"
)

// Classifier labels an image via an external inference provider.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (huggingface.Prediction, error)
}
