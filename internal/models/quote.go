package models

// Quote statuses
const (
	QuoteStatusOK          = "ok"
	QuoteStatusDeclined    = "declined"
	QuoteStatusUnavailable = "unavailable"
)

// Decline reasons
const (
	DeclineInvalidInput       = "invalid_input"
	DeclineAmbiguousDirection = "ambiguous_direction"
)

// QuoteRequest represents the JSON body for a quote.
// Exactly one of pay_amount and receive_amount must be set.
// swagger:model QuoteRequest
type QuoteRequest struct {
	// Target currency
	// required: true
	// example: PYG
	Currency string `json:"currency"`

	// Delivery option id, defaults to franco
	// example: km4
	Delivery string `json:"delivery"`

	// Amount in BRL the customer is willing to pay
	// example: 100.0
	PayAmount *float64 `json:"pay_amount,omitempty"`

	// Amount in the target currency the customer wants to receive
	// example: 150000
	ReceiveAmount *float64 `json:"receive_amount,omitempty"`
}

// QuoteResponse represents a reconciled quote, or a declined one with zero amounts
// swagger:model QuoteResponse
type QuoteResponse struct {
	// ok, declined or unavailable
	// example: ok
	Status string `json:"status"`

	// Why the quote was declined
	// example: invalid_input
	Reason string `json:"reason,omitempty"`

	// Target currency
	// example: PYG
	Currency string `json:"currency"`

	// Rate used for the quote
	// example: 1450
	Rate float64 `json:"rate,omitempty"`

	// Delivery option used for the quote
	Delivery *DeliveryOption `json:"delivery,omitempty"`

	// Total to pay in BRL
	// example: 113.45
	PayAmount float64 `json:"pay_amount"`

	// Amount disbursed in the target currency
	// example: 150000
	ReceiveAmount float64 `json:"receive_amount"`

	// Service fee in BRL
	// example: 10
	Fee float64 `json:"fee"`

	// Delivery fee in BRL
	// example: 0
	DeliveryFee float64 `json:"delivery_fee"`
}

// QuoteErrorResponse represents an error response for a quote
// swagger:model QuoteErrorResponse
type QuoteErrorResponse struct {
	// Error message
	// example: unknown currency
	Error string `json:"error"`
}
