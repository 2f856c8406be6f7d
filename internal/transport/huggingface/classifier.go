// Package huggingface calls the Hugging Face inference API for image
// classification.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// Prediction is the top classification result.
type Prediction struct {
	Label string
	Score float64
}

// Classifier submits raw image bytes to a hosted classification model.
type Classifier struct {
	httpClient *http.Client
	baseURL    string
	model      string
	token      string
	logger     *zap.Logger
}

// Config holds the inference API settings.
type Config struct {
	Token   string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClassifier creates an inference API client.
func NewClassifier(cfg *Config) *Classifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Classifier{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		token:      cfg.Token,
		logger:     cfg.Logger,
	}
}

// LoadingError carries the upstream message while the model warms up.
type LoadingError struct {
	Message string
}

func (e *LoadingError) Error() string { return "model loading: " + e.Message }

func (e *LoadingError) Unwrap() error { return domain.ErrModelLoading }

// Classify posts the image bytes and returns the highest-scoring label.
func (c *Classifier) Classify(ctx context.Context, image []byte) (Prediction, error) {
	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return Prediction{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("inference call: %w: %w", err, domain.ErrClassifierError)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Prediction{}, fmt.Errorf("read response: %w: %w", err, domain.ErrClassifierError)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return Prediction{}, &LoadingError{Message: loadingMessage(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Prediction{}, fmt.Errorf("inference API status %d: %w",
			resp.StatusCode, domain.ErrClassifierError)
	}

	pred, ok := topPrediction(body)
	if !ok {
		return Prediction{}, fmt.Errorf("unrecognized response shape: %w", domain.ErrClassifierError)
	}
	return pred, nil
}

type rawPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// topPrediction handles both response shapes the API is known to return:
// a flat list of predictions and a list wrapping one such list.
func topPrediction(body []byte) (Prediction, bool) {
	var flat []rawPrediction
	if err := json.Unmarshal(body, &flat); err != nil || len(flat) == 0 || flat[0].Label == "" {
		var nested [][]rawPrediction
		if err := json.Unmarshal(body, &nested); err != nil || len(nested) == 0 {
			return Prediction{}, false
		}
		flat = nested[0]
	}
	if len(flat) == 0 {
		return Prediction{}, false
	}

	best := flat[0]
	for _, p := range flat[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return Prediction{Label: best.Label, Score: best.Score}, true
}

func loadingMessage(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return "Model loading"
}
