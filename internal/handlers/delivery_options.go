package handlers

import (
	"net/http"

	"github.com/sbilibin2017/gw-cambio/internal/models"
)

// NewDeliveryOptionsHandler lists the delivery catalog
// @Summary List delivery options
// @Description Returns the delivery regions and their flat fees in BRL
// @Tags quote
// @Produce json
// @Success 200 {object} models.DeliveryOptionsResponse
// @Router /delivery-options [get]
func NewDeliveryOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.DeliveryOptionsResponse{
			Options: models.DeliveryOptions,
		})
	}
}
