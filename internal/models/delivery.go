package models

// DeliveryOption is a delivery region with its flat fee in reais
// swagger:model DeliveryOption
type DeliveryOption struct {
	// Option identifier
	// example: km4
	ID string `json:"id"`

	// Region name
	// example: Região do Km4
	Label string `json:"label"`

	// Flat fee in BRL
	// example: 5
	Fee float64 `json:"fee"`
}

// DefaultDeliveryID is used when a quote names no delivery option.
const DefaultDeliveryID = "franco"

// DeliveryOptions is the fixed delivery catalog, in display order.
var DeliveryOptions = []DeliveryOption{
	{ID: "franco", Label: "Presidente Franco", Fee: 0},
	{ID: "lago", Label: "Região do Lago", Fee: 0},
	{ID: "km4", Label: "Região do Km4", Fee: 5},
	{ID: "km7", Label: "Região do Km7", Fee: 10},
}

// LookupDeliveryOption returns the option with the given id.
// An empty id selects the default option.
func LookupDeliveryOption(id string) (DeliveryOption, bool) {
	if id == "" {
		id = DefaultDeliveryID
	}
	for _, o := range DeliveryOptions {
		if o.ID == id {
			return o, true
		}
	}
	return DeliveryOption{}, false
}

// DeliveryOptionsResponse lists the delivery catalog
// swagger:model DeliveryOptionsResponse
type DeliveryOptionsResponse struct {
	Options []DeliveryOption `json:"options"`
}
