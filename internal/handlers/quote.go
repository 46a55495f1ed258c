package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/models"
	"github.com/sbilibin2017/gw-cambio/internal/quote"
	"github.com/sbilibin2017/gw-cambio/internal/services"
)

//go:generate mockgen -source=quote.go -destination=quote_mock.go -package=handlers

// Quoter defines the interface that the quote service must implement.
type Quoter interface {
	Quote(ctx context.Context, currency, delivery string, pay, receive *float64) (*services.QuoteResult, error)
}

// NewQuoteHandler returns an HTTP handler that quotes a BRL conversion.
// @Summary Quote a conversion
// @Description Computes the BRL total, service fee and banknote-aligned amount for one side of a conversion.
// @Description A declined quote is a normal 200 response with zero amounts.
// @Tags quote
// @Accept json
// @Produce json
// @Param quoteRequest body models.QuoteRequest true "Quote Request"
// @Success 200 {object} models.QuoteResponse "Quote computed or declined"
// @Failure 400 {object} models.QuoteErrorResponse "Invalid request body, currency or delivery option"
// @Failure 500 {object} models.QuoteErrorResponse "Internal server error"
// @Failure 503 {object} models.QuoteResponse "Rate not available"
// @Router /quote [post]
func NewQuoteHandler(svc Quoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.QuoteRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.QuoteErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		result, err := svc.Quote(r.Context(), req.Currency, req.Delivery, req.PayAmount, req.ReceiveAmount)
		if err != nil {
			switch {
			case errors.Is(err, quote.ErrInvalidInput):
				writeJSON(w, http.StatusOK, newQuoteResponse(result, models.QuoteStatusDeclined, models.DeclineInvalidInput))
			case errors.Is(err, quote.ErrAmbiguousDirection):
				writeJSON(w, http.StatusOK, newQuoteResponse(result, models.QuoteStatusDeclined, models.DeclineAmbiguousDirection))
			case errors.Is(err, quote.ErrRateUnavailable):
				writeJSON(w, http.StatusServiceUnavailable, newQuoteResponse(result, models.QuoteStatusUnavailable, ""))
			case errors.Is(err, services.ErrUnknownCurrency),
				errors.Is(err, services.ErrUnknownDelivery),
				errors.Is(err, quote.ErrInvalidCurrency):
				writeJSON(w, http.StatusBadRequest, models.QuoteErrorResponse{
					Error: err.Error(),
				})
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeJSON(w, http.StatusInternalServerError, models.QuoteErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, newQuoteResponse(result, models.QuoteStatusOK, ""))
	}
}

func newQuoteResponse(result *services.QuoteResult, status, reason string) models.QuoteResponse {
	resp := models.QuoteResponse{
		Status: status,
		Reason: reason,
	}
	if result == nil {
		return resp
	}

	delivery := result.Delivery
	resp.Currency = result.Currency.Code
	resp.Rate = result.Rate
	resp.Delivery = &delivery
	resp.PayAmount = result.Quote.Pay
	resp.ReceiveAmount = result.Quote.Receive
	resp.Fee = result.Quote.Fee
	resp.DeliveryFee = result.Quote.DeliveryFee
	return resp
}
