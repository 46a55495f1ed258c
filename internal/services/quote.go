package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/models"
	"github.com/sbilibin2017/gw-cambio/internal/quote"
)

//go:generate mockgen -source=quote.go -destination=quote_mock.go -package=services

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrUnknownDelivery = errors.New("unknown delivery option")
)

// RateReader reads the current rate of a currency. A nil rate means none is set.
type RateReader interface {
	Get(ctx context.Context, currency string) (*models.Rate, error)
}

// QuoteResult is a quote together with the inputs it was computed from.
type QuoteResult struct {
	Quote    quote.Quote
	Currency quote.Currency
	Rate     float64
	Delivery models.DeliveryOption
}

// QuoteService reads current rates and runs the conversion engine.
type QuoteService struct {
	rates  RateReader
	solver quote.Solver
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(rates RateReader, solver quote.Solver) *QuoteService {
	return &QuoteService{
		rates:  rates,
		solver: solver,
	}
}

// Quote computes a quote for one side of a conversion.
// Declined quotes return the engine's decline reason (quote.ErrInvalidInput,
// quote.ErrAmbiguousDirection, quote.ErrRateUnavailable) with a result that
// still names the currency and delivery option.
func (svc *QuoteService) Quote(
	ctx context.Context,
	currencyCode, deliveryID string,
	pay, receive *float64,
) (*QuoteResult, error) {
	currency, ok := quote.LookupCurrency(currencyCode)
	if !ok {
		return nil, ErrUnknownCurrency
	}
	delivery, ok := models.LookupDeliveryOption(deliveryID)
	if !ok {
		return nil, ErrUnknownDelivery
	}

	result := &QuoteResult{Currency: currency, Delivery: delivery}

	req := quote.Request{
		Pay:         pay,
		Receive:     receive,
		Currency:    currency,
		DeliveryFee: delivery.Fee,
	}
	// Nothing to quote yet, so the store is not read.
	if _, err := req.Direction(); err != nil {
		return result, err
	}

	rate, err := svc.rates.Get(ctx, currency.Code)
	if err != nil {
		logger.Log.Errorw("failed to read rate", "currency", currency.Code, "error", err)
		return nil, fmt.Errorf("quote %s: %w", currency.Code, err)
	}
	if rate != nil {
		req.Rate = rate.Rate
		result.Rate = rate.Rate
	}

	q, err := svc.solver.Solve(req)
	if err != nil {
		logger.Log.Infow("quote declined", "currency", currency.Code, "delivery", delivery.ID, "reason", err)
		return result, err
	}
	result.Quote = q

	logger.Log.Infow("quote computed",
		"currency", currency.Code,
		"delivery", delivery.ID,
		"rate", result.Rate,
		"pay", q.Pay,
		"receive", q.Receive,
		"fee", q.Fee,
	)

	return result, nil
}
