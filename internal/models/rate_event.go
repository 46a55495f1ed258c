package models

// RateUpdatedEvent is published whenever an administrator sets a rate.
type RateUpdatedEvent struct {
	EventID   string  `json:"event_id"`   // Unique identifier of the event
	Currency  string  `json:"currency"`   // Target currency code
	Rate      float64 `json:"rate"`       // New rate
	UpdatedAt int64   `json:"updated_at"` // Unix timestamp (seconds) of the update
}
