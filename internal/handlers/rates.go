package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/models"
	"github.com/sbilibin2017/gw-cambio/internal/services"
)

//go:generate mockgen -source=rates.go -destination=rates_mock.go -package=handlers

var validate = validator.New()

// RateGetter defines the interface for reading the current rates.
type RateGetter interface {
	GetRates(ctx context.Context) (pyg, usd *models.Rate, err error)
}

// RateSetter defines the interface for updating the current rates.
type RateSetter interface {
	SetRates(ctx context.Context, pyg, usd *float64) (savedPYG, savedUSD *models.Rate, err error)
}

// NewGetRatesHandler handles fetching the current exchange rates
// @Summary Get exchange rates
// @Description Returns the current PYG and USD rates; a currency without a rate is null
// @Tags rates
// @Produce json
// @Success 200 {object} models.RatesResponse
// @Failure 404 {object} models.RatesErrorResponse "No rate set"
// @Failure 500 {object} models.RatesErrorResponse
// @Router /rates [get]
func NewGetRatesHandler(svc RateGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pyg, usd, err := svc.GetRates(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "error", err)
			writeJSON(w, http.StatusInternalServerError, models.RatesErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		if pyg == nil && usd == nil {
			writeJSON(w, http.StatusNotFound, models.RatesErrorResponse{
				Error: "Rates not set",
			})
			return
		}

		writeJSON(w, http.StatusOK, models.RatesResponse{
			PYG: models.NewRateValue(pyg),
			USD: models.NewRateValue(usd),
		})
	}
}

// NewSetRatesHandler handles updating the current exchange rates
// @Summary Set exchange rates
// @Description Stores new PYG and/or USD rates. Rates must be positive JSON numbers.
// @Tags rates
// @Accept json
// @Produce json
// @Param setRatesRequest body models.SetRatesRequest true "New rates"
// @Success 200 {object} models.RatesResponse "Rates stored"
// @Failure 400 {object} models.RatesErrorResponse "Invalid request body"
// @Failure 401 {object} models.RatesErrorResponse "Unauthorized"
// @Failure 500 {object} models.RatesErrorResponse
// @Router /rates [put]
// @Security BearerAuth
func NewSetRatesHandler(svc RateSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SetRatesRequest

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.RatesErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.RatesErrorResponse{
				Error: "rates must be positive numbers",
			})
			return
		}

		pyg, usd, err := svc.SetRates(r.Context(), req.PYG, req.USD)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRates):
				writeJSON(w, http.StatusBadRequest, models.RatesErrorResponse{
					Error: err.Error(),
				})
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeJSON(w, http.StatusInternalServerError, models.RatesErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.RatesResponse{
			PYG: models.NewRateValue(pyg),
			USD: models.NewRateValue(usd),
		})
	}
}
