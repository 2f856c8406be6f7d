package huggingface

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *Classifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClassifier(&Config{
		Token:   "hf-token",
		BaseURL: srv.URL,
		Model:   "microsoft/resnet-50",
		Timeout: 5 * time.Second,
		Logger:  zap.NewNop(),
	})
}

func TestClassifier_Classify(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer hf-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/models/microsoft/resnet-50" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"label":"leaf blight","score":0.91},{"label":"healthy","score":0.05}]`))
	})

	pred, err := g.Classify(context.Background(), []byte("imagebytes"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if pred.Label != "leaf blight" || pred.Score != 0.91 {
		t.Errorf("prediction = %+v", pred)
	}
}

func TestClassifier_NestedResponseShape(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"rust","score":0.4},{"label":"smut","score":0.6}]]`))
	})

	pred, err := g.Classify(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if pred.Label != "smut" {
		t.Errorf("label = %q, want smut (highest score)", pred.Label)
	}
}

func TestClassifier_ModelLoading(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model microsoft/resnet-50 is currently loading"}`))
	})

	_, err := g.Classify(context.Background(), []byte("img"))
	if !errors.Is(err, domain.ErrModelLoading) {
		t.Fatalf("err = %v, want ErrModelLoading", err)
	}
	var le *LoadingError
	if !errors.As(err, &le) {
		t.Fatalf("err is not a *LoadingError: %v", err)
	}
	if le.Message != "Model microsoft/resnet-50 is currently loading" {
		t.Errorf("loading message = %q", le.Message)
	}
}

func TestClassifier_UpstreamFailure(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := g.Classify(context.Background(), []byte("img"))
	if !errors.Is(err, domain.ErrClassifierError) {
		t.Errorf("err = %v, want ErrClassifierError", err)
	}
}

func TestClassifier_MalformedBody(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	})

	_, err := g.Classify(context.Background(), []byte("img"))
	if !errors.Is(err, domain.ErrClassifierError) {
		t.Errorf("err = %v, want ErrClassifierError", err)
	}
}
