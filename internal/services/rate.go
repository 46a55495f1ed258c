package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/models"
	"github.com/sbilibin2017/gw-cambio/internal/quote"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=rate.go -destination=rate_mock.go -package=services

// ErrInvalidRates is returned when a rate update carries no valid positive rate.
var ErrInvalidRates = errors.New("at least one positive rate is required")

// RateWriter stores current rates. SaveAll stores every rate or none.
type RateWriter interface {
	SaveAll(ctx context.Context, rates []models.Rate) error
}

// KafkaWriter publishes messages to Kafka.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// RateService reads and updates the current rates and announces updates.
type RateService struct {
	reader      RateReader
	writer      RateWriter
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// NewRateService creates a new RateService. kafkaWriter may be nil.
func NewRateService(reader RateReader, writer RateWriter, kafkaWriter KafkaWriter) *RateService {
	return &RateService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetRates returns the current PYG and USD rates; either may be nil.
func (s *RateService) GetRates(ctx context.Context) (pyg, usd *models.Rate, err error) {
	if pyg, err = s.reader.Get(ctx, quote.PYG.Code); err != nil {
		logger.Log.Errorw("failed to get rate", "currency", quote.PYG.Code, "error", err)
		return nil, nil, err
	}
	if usd, err = s.reader.Get(ctx, quote.USD.Code); err != nil {
		logger.Log.Errorw("failed to get rate", "currency", quote.USD.Code, "error", err)
		return nil, nil, err
	}
	return pyg, usd, nil
}

// SetRates stores the given rates in one atomic write. Nil rates are left
// unchanged, but at least one must be given and every given rate must be positive.
func (s *RateService) SetRates(ctx context.Context, pyg, usd *float64) (savedPYG, savedUSD *models.Rate, err error) {
	if pyg == nil && usd == nil {
		return nil, nil, ErrInvalidRates
	}
	for _, v := range []*float64{pyg, usd} {
		if v != nil && !validRate(*v) {
			return nil, nil, ErrInvalidRates
		}
	}

	updatedAt := s.now()

	var rates []models.Rate
	if pyg != nil {
		rates = append(rates, models.Rate{Currency: quote.PYG.Code, Rate: *pyg, UpdatedAt: updatedAt})
	}
	if usd != nil {
		rates = append(rates, models.Rate{Currency: quote.USD.Code, Rate: *usd, UpdatedAt: updatedAt})
	}

	if err := s.writer.SaveAll(ctx, rates); err != nil {
		logger.Log.Errorw("failed to save rates", "count", len(rates), "error", err)
		return nil, nil, err
	}

	// Events go out only once the whole update is stored.
	for i := range rates {
		rate := &rates[i]
		s.publishRateUpdated(ctx, models.RateUpdatedEvent{
			EventID:   uuid.NewString(),
			Currency:  rate.Currency,
			Rate:      rate.Rate,
			UpdatedAt: updatedAt.Unix(),
		})
		switch rate.Currency {
		case quote.PYG.Code:
			savedPYG = rate
		case quote.USD.Code:
			savedUSD = rate
		}
	}

	return savedPYG, savedUSD, nil
}

// publishRateUpdated publishes a rate update to Kafka.
func (s *RateService) publishRateUpdated(ctx context.Context, event models.RateUpdatedEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal rate event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Currency),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish rate event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Rate event published to Kafka", "event_id", event.EventID, "currency", event.Currency, "rate", event.Rate)
	}
}

func validRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
