package domain

import "time"

// Email delivery outcomes.
const (
	EmailStatusSent   = "SENT"
	EmailStatusFailed = "FAILED"
)

// Email kinds.
const (
	EmailKindReset = "RESET"
)

// EmailLog records one delivery attempt, successful or not.
type EmailLog struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	From      string    `json:"from"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body,omitempty"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
