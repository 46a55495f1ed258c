package models

import "time"

// Rate is the current exchange rate stored for one target currency.
type Rate struct {
	Currency  string    `json:"currency" db:"currency"`     // Target currency code (PYG or USD)
	Rate      float64   `json:"rate" db:"rate"`             // Rate in the currency's own orientation
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // When the rate was last set
}

// RateValue is a single rate in an API response
// swagger:model RateValue
type RateValue struct {
	// Exchange rate
	// example: 1450
	Rate float64 `json:"rate"`

	// Last update time, absent when unknown
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// RatesResponse represents the current rates; a currency without a rate is null
// swagger:model RatesResponse
type RatesResponse struct {
	// Guaraníes bought by one real
	PYG *RateValue `json:"pyg"`

	// Reais needed for one dollar
	USD *RateValue `json:"usd"`
}

// SetRatesRequest represents the JSON body for updating rates
// swagger:model SetRatesRequest
type SetRatesRequest struct {
	// New PYG rate
	// example: 1450
	PYG *float64 `json:"pyg,omitempty" validate:"omitempty,gt=0"`

	// New USD rate
	// example: 5.5
	USD *float64 `json:"usd,omitempty" validate:"omitempty,gt=0"`
}

// RatesErrorResponse represents an error response for the rate endpoints
// swagger:model RatesErrorResponse
type RatesErrorResponse struct {
	// Error message
	// example: Rates not set
	Error string `json:"error"`
}

// NewRateValue converts a stored rate into its response form.
func NewRateValue(r *Rate) *RateValue {
	if r == nil {
		return nil
	}
	v := &RateValue{Rate: r.Rate}
	if !r.UpdatedAt.IsZero() {
		updatedAt := r.UpdatedAt
		v.UpdatedAt = &updatedAt
	}
	return v
}
