// Package chi exposes the advisory HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
	answeruc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/answer"
	feedbackuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/feedback"
	healthuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/health"
	transcribeuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/transcribe"
	visionuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/vision"
)

// maxUploadBytes bounds multipart uploads (images, audio).
const maxUploadBytes = 10 << 20

// Error codes returned to callers.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DebugInfo reports which external credentials are configured.
// Key prefixes are masked; full keys never leave the process.
type DebugInfo struct {
	GenerationConfigured bool   `json:"generation_configured"`
	GenerationKeyPrefix  string `json:"generation_key_prefix,omitempty"`
	VisionConfigured     bool   `json:"vision_configured"`
	VisionKeyPrefix      string `json:"vision_key_prefix,omitempty"`
}

// Server wires the use case services to HTTP routes.
type Server struct {
	answers    *answeruc.Service
	vision     *visionuc.Service
	transcribe *transcribeuc.Service
	feedback   *feedbackuc.Service
	health     *healthuc.Service
	debug      DebugInfo
	logger     *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	answers *answeruc.Service,
	vision *visionuc.Service,
	transcribe *transcribeuc.Service,
	feedback *feedbackuc.Service,
	health *healthuc.Service,
	debug DebugInfo,
	logger *zap.Logger,
) *Server {
	return &Server{
		answers:    answers,
		vision:     vision,
		transcribe: transcribe,
		feedback:   feedback,
		health:     health,
		debug:      debug,
		logger:     logger,
	}
}

// Mount registers all routes on the router.
func (s *Server) Mount(r chi.Router) {
	r.Route("/ai", func(r chi.Router) {
		r.Post("/answer", s.handleAnswer)
		r.Post("/process-image", s.handleProcessImage)
		r.Post("/voice-to-text", s.handleVoiceToText)
		r.Post("/feedback", s.handleFeedback)
		r.Post("/escalate", s.handleEscalate)
		r.Get("/debug", s.handleDebug)
	})
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleAnswer serves POST /ai/answer. Generation failures are absorbed by
// the orchestrator, so a well-formed request always succeeds.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req domain.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.QueryText) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query_text is required")
		return
	}

	resp := s.answers.Answer(r.Context(), req)
	writeJSON(w, http.StatusOK, resp)
}

// handleProcessImage serves POST /ai/process-image.
func (s *Server) handleProcessImage(w http.ResponseWriter, r *http.Request) {
	image, _, err := readUpload(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Unable to read image upload")
		return
	}

	res, err := s.vision.Process(r.Context(), image)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyUpload) {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "Empty image content")
			return
		}
		s.logger.Error("process image", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeBadRequest, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleVoiceToText serves POST /ai/voice-to-text.
func (s *Server) handleVoiceToText(w http.ResponseWriter, r *http.Request) {
	_, filename, err := readUpload(r, "audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Unable to read audio upload")
		return
	}
	language := r.FormValue("language")
	if language == "" {
		language = domain.LanguageMalayalam
	}

	writeJSON(w, http.StatusOK, s.transcribe.Transcribe(language, filename))
}

// handleFeedback serves POST /ai/feedback.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var sub feedbackuc.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := s.feedback.Submit(r.Context(), sub)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"feedback_id": id,
	})
}

// handleEscalate serves POST /ai/escalate.
func (s *Server) handleEscalate(w http.ResponseWriter, r *http.Request) {
	var esc feedbackuc.Escalation
	if err := json.NewDecoder(r.Body).Decode(&esc); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(esc.QueryText) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query_text is required")
		return
	}

	ticketID := s.feedback.Escalate(r.Context(), esc)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "queued",
		"ticket_id": ticketID,
	})
}

// handleDebug serves GET /ai/debug.
func (s *Server) handleDebug(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.debug)
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

// readUpload extracts one multipart file field, bounded by maxUploadBytes.
func readUpload(r *http.Request, field string) (data []byte, filename string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = file.Close() }()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// MaskKey returns the first characters of a credential for debug output.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return key[:1] + "..."
	}
	return key[:6] + "..."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
