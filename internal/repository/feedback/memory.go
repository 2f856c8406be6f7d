package feedback

import (
	"context"
	"sync"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// Memory is an in-process fallback used when no database is configured.
// Records survive only for the lifetime of the process.
type Memory struct {
	mu          sync.Mutex
	feedback    []domain.FeedbackRecord
	escalations []domain.EscalationTicket
}

// NewMemory creates an in-memory feedback store.
func NewMemory() *Memory {
	return &Memory{}
}

// SaveFeedback appends a feedback record.
func (m *Memory) SaveFeedback(_ context.Context, rec domain.FeedbackRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, rec)
	return nil
}

// SaveEscalation appends an escalation ticket.
func (m *Memory) SaveEscalation(_ context.Context, ticket domain.EscalationTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.escalations = append(m.escalations, ticket)
	return nil
}

// FeedbackCount reports stored feedback records. Used in tests and debug.
func (m *Memory) FeedbackCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.feedback)
}

// EscalationCount reports stored escalation tickets.
func (m *Memory) EscalationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.escalations)
}
