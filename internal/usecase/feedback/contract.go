package feedback

import (
	"context"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// Recorder persists feedback records and escalation tickets.
type Recorder interface {
	SaveFeedback(ctx context.Context, rec domain.FeedbackRecord) error
	SaveEscalation(ctx context.Context, ticket domain.EscalationTicket) error
}
