// Package feedback accepts answer feedback and escalation requests.
// Persistence failures are logged and swallowed: the caller's acknowledgment
// does not depend on the store being up.
package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// Submission is the caller-supplied feedback payload.
type Submission struct {
	ResponseID   *int   `json:"response_id,omitempty"`
	IsHelpful    *bool  `json:"is_helpful,omitempty"`
	Rating       *int   `json:"rating,omitempty"`
	FeedbackText string `json:"feedback_text,omitempty"`
}

// Escalation is the caller-supplied escalation payload.
type Escalation struct {
	QueryText string         `json:"query_text"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Service records feedback and issues escalation tickets.
type Service struct {
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a feedback service.
func New(recorder Recorder, logger *zap.Logger) *Service {
	return &Service{recorder: recorder, logger: logger, now: time.Now}
}

// Submit stores one feedback record and returns its identifier.
func (s *Service) Submit(ctx context.Context, sub Submission) string {
	rec := domain.FeedbackRecord{
		ID:           uuid.NewString(),
		ResponseID:   sub.ResponseID,
		IsHelpful:    sub.IsHelpful,
		Rating:       sub.Rating,
		FeedbackText: sub.FeedbackText,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.recorder.SaveFeedback(ctx, rec); err != nil {
		s.logger.Warn("feedback not persisted", zap.String("id", rec.ID), zap.Error(err))
	}
	return rec.ID
}

// Escalate issues a ticket derived from the current timestamp, persists it,
// and returns the ticket id. In production a notifier would alert the
// agricultural officer; here the ticket record is the queue.
func (s *Service) Escalate(ctx context.Context, esc Escalation) string {
	ticket := domain.EscalationTicket{
		ID:        fmt.Sprintf("ESC-%d", s.now().Unix()),
		QueryText: esc.QueryText,
		Metadata:  esc.Metadata,
		CreatedAt: s.now().UTC(),
	}

	if err := s.recorder.SaveEscalation(ctx, ticket); err != nil {
		s.logger.Warn("escalation not persisted", zap.String("ticket_id", ticket.ID), zap.Error(err))
	}
	return ticket.ID
}
