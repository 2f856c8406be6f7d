// Package answer orchestrates one advisory request: retrieve context,
// compose the prompt, call the generation model, score confidence, and
// decide escalation. Generation failures never propagate — the caller
// always receives an advisory, falling back to a canned localized text.
package answer

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/metrics"
)

// OfflineModelSentinel is reported as model_used when no generator is
// configured at all.
const OfflineModelSentinel = "offline-fallback"

// Canned advisories returned when the model is unavailable.
const (
	fallbackMalayalam = "ഇപ്പോൾ ഡീഫോൾട്ട് മറുപടി നൽകുന്നു. കൂടുതൽ കൃത്യമായ മറുപടി ലഭിക്കാൻ AI കീ ചേർക്കുക.\n" +
		"1) പൊതു നിർദ്ദേശം: വിള പരിപാലനം മെച്ചപ്പെടുത്തുക.\n2) സുരക്ഷ: ലേബൽപ്രകാരം മാത്രം കീടനാശിനി ഉപയോഗിക്കുക."
	fallbackEnglish = "Default advisory. Add a generation API key for live AI.\n" +
		"1) Improve crop management.\n2) Safety: Follow label directions strictly."
)

// Options holds the orchestration knobs. The scoring constants are tuned
// heuristics; see config.RetrievalConfig for the deployed values.
type Options struct {
	TopK                int
	EscalationThreshold float64
	ConfidenceBoost     float64
	ConfidenceFloor     float64
	ConfidenceCeiling   float64
	DefaultSimilarity   float64
	Models              []string
	GenerationTimeout   time.Duration
	DefaultLanguage     string
}

// DefaultOptions returns the tuned heuristic constants.
func DefaultOptions() Options {
	return Options{
		TopK:                3,
		EscalationThreshold: 0.15,
		ConfidenceBoost:     0.3,
		ConfidenceFloor:     0.3,
		ConfidenceCeiling:   0.95,
		DefaultSimilarity:   0.4,
		Models:              []string{"gemini-1.5-flash"},
		GenerationTimeout:   30 * time.Second,
		DefaultLanguage:     domain.LanguageMalayalam,
	}
}

// Service is the answer orchestrator.
type Service struct {
	retriever Retriever
	generator Generator // nil when no credential is configured
	opts      Options
	logger    *zap.Logger
}

// New creates an answer service. generator may be nil; every request then
// receives the canned advisory.
func New(retriever Retriever, generator Generator, opts Options, logger *zap.Logger) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if len(opts.Models) == 0 {
		opts.Models = DefaultOptions().Models
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = DefaultOptions().GenerationTimeout
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = domain.LanguageMalayalam
	}
	return &Service{retriever: retriever, generator: generator, opts: opts, logger: logger}
}

// Answer runs the single-pass pipeline. It never returns an error: upstream
// failures are absorbed into the fallback advisory.
func (s *Service) Answer(ctx context.Context, req domain.AnswerRequest) domain.AnswerResponse {
	start := time.Now()

	language := req.Language
	if language != domain.LanguageEnglish {
		language = s.opts.DefaultLanguage
	}

	contexts := s.retriever.Query(req.QueryText, s.opts.TopK)

	topSimilarity := s.opts.DefaultSimilarity
	if len(contexts) > 0 {
		topSimilarity = contexts[0].Score
		metrics.RetrievalTopScore.Observe(topSimilarity)
	}

	prompt := buildPrompt(req, language, contexts)
	text, modelUsed, generated := s.generate(ctx, prompt, language)

	escalated := topSimilarity < s.opts.EscalationThreshold
	if escalated {
		metrics.EscalationsTotal.Inc()
	}

	outcome := "fallback"
	if generated {
		outcome = "generated"
	}
	metrics.AnswersTotal.WithLabelValues(language, outcome).Inc()

	s.logger.Info("answer served",
		zap.String("language", language),
		zap.String("model", modelUsed),
		zap.String("outcome", outcome),
		zap.Float64("top_similarity", topSimilarity),
		zap.Int("contexts", len(contexts)),
		zap.Bool("escalated", escalated),
	)

	return domain.AnswerResponse{
		ResponseText:    text,
		ModelUsed:       modelUsed,
		ConfidenceScore: s.confidence(topSimilarity),
		ProcessingTime:  roundMillis(time.Since(start)),
		Escalated:       escalated,
	}
}

// generate tries each candidate model once, in order, with a bounded
// per-candidate timeout. The first success wins. When every candidate fails
// (or no generator is configured) it returns the canned advisory.
func (s *Service) generate(ctx context.Context, prompt, language string) (text, model string, ok bool) {
	if s.generator == nil {
		return fallbackText(language), OfflineModelSentinel, false
	}

	for _, candidate := range s.opts.Models {
		callCtx, cancel := context.WithTimeout(ctx, s.opts.GenerationTimeout)
		out, err := s.generator.Generate(callCtx, candidate, prompt)
		cancel()
		if err != nil {
			s.logger.Warn("generation attempt failed",
				zap.String("model", candidate),
				zap.Error(err),
			)
			continue
		}
		return out, candidate, true
	}

	return fallbackText(language), s.opts.Models[0], false
}

// confidence derives the score from the top similarity:
// clamp(similarity + boost, floor, ceiling).
func (s *Service) confidence(topSimilarity float64) float64 {
	c := topSimilarity + s.opts.ConfidenceBoost
	return math.Min(s.opts.ConfidenceCeiling, math.Max(s.opts.ConfidenceFloor, c))
}

func fallbackText(language string) string {
	if language == domain.LanguageMalayalam {
		return fallbackMalayalam
	}
	return fallbackEnglish
}

// roundMillis reports elapsed seconds with millisecond precision.
func roundMillis(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
