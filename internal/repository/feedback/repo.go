// Package feedback persists feedback records and escalation tickets.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// store is the consumer interface for persistence operations (ISP).
type store interface {
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo implements feedback persistence on top of the KV store.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a feedback repository. Records expire after ttl so the store
// does not grow unbounded; the upstream web application keeps the durable
// copy.
func New(s store, prefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, prefix: prefix, ttl: ttl}
}

// SaveFeedback stores one feedback record as JSON.
func (r *Repo) SaveFeedback(ctx context.Context, rec domain.FeedbackRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal feedback %s: %w", rec.ID, err)
	}
	key := r.prefix + "feedback:" + rec.ID
	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		return fmt.Errorf("save feedback %s: %w", rec.ID, err)
	}
	return nil
}

// SaveEscalation stores one escalation ticket as JSON.
func (r *Repo) SaveEscalation(ctx context.Context, ticket domain.EscalationTicket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("marshal escalation %s: %w", ticket.ID, err)
	}
	key := r.prefix + "escalation:" + ticket.ID
	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		return fmt.Errorf("save escalation %s: %w", ticket.ID, err)
	}
	return nil
}
