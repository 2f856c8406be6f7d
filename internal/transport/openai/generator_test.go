package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGenerator(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Logger:  zap.NewNop(),
	})
}

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"model":  "gemini-1.5-flash",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	var gotModel string
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("Apply mancozeb as per label."))
	})

	text, err := g.Generate(context.Background(), "gemini-1.5-flash", "banana leaf spot?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Apply mancozeb as per label." {
		t.Errorf("text = %q", text)
	}
	if gotModel != "gemini-1.5-flash" {
		t.Errorf("model sent = %q", gotModel)
	}
}

func TestGenerator_EmptyCompletion(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := g.Generate(context.Background(), "gemini-1.5-flash", "q")
	if !errors.Is(err, domain.ErrEmptyCompletion) {
		t.Errorf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestGenerator_APIErrorWrapped(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "invalid api key"}`))
	})

	_, err := g.Generate(context.Background(), "gemini-1.5-flash", "q")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestGenerator_ContextTimeout(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, "gemini-1.5-flash", "q")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}
