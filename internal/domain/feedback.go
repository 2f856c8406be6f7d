package domain

import "time"

// FeedbackRecord is a stored reaction to a previous answer.
type FeedbackRecord struct {
	ID           string    `json:"id"`
	ResponseID   *int      `json:"response_id,omitempty"`
	IsHelpful    *bool     `json:"is_helpful,omitempty"`
	Rating       *int      `json:"rating,omitempty"`
	FeedbackText string    `json:"feedback_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EscalationTicket is a stored request for human officer follow-up.
type EscalationTicket struct {
	ID        string         `json:"id"`
	QueryText string         `json:"query_text"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
