package answer

import (
	"context"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/retrieval"
)

// Retriever returns the best-matching corpus documents for a query.
type Retriever interface {
	Query(text string, topK int) []retrieval.Match
}

// Generator produces a completion for the given model and prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
