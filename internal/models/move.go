package models

import "time"

// MoveOutcome is how a status move settled
type MoveOutcome string

const (
	OutcomeConfirmed  MoveOutcome = "confirmed"
	OutcomeRolledBack MoveOutcome = "rolled_back"
)

// MoveRecord is one settled status move, kept in the local move log
type MoveRecord struct {
	ID        string      `json:"id"`
	ItemID    int         `json:"item_id"`
	Title     string      `json:"title"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Outcome   MoveOutcome `json:"outcome"`
	Error     string      `json:"error,omitempty"`
	StartedAt time.Time   `json:"started_at"`
	SettledAt time.Time   `json:"settled_at"`
}

// Duration returns how long the move was in flight
func (m *MoveRecord) Duration() time.Duration {
	if m.SettledAt.Before(m.StartedAt) {
		return 0
	}
	return m.SettledAt.Sub(m.StartedAt)
}
