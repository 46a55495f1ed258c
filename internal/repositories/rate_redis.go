package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/models"
)

// rateKeyPrefix namespaces rate keys in Redis.
const rateKeyPrefix = "cambio:rate:"

// RateRedisRepository stores the current rate of each currency in Redis.
// Rates never expire; a rate is valid until an administrator replaces it.
type RateRedisRepository struct {
	client *redis.Client
}

// NewRateRedisRepository creates a new repository instance
func NewRateRedisRepository(client *redis.Client) *RateRedisRepository {
	return &RateRedisRepository{client: client}
}

func rateKey(currency string) string {
	return rateKeyPrefix + currency
}

// Get returns the stored rate for a currency, or nil if none was set.
func (r *RateRedisRepository) Get(ctx context.Context, currency string) (*models.Rate, error) {
	key := rateKey(currency)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("rate not found", "key", key)
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to read rate", "key", key, "error", err)
		return nil, fmt.Errorf("read rate %s: %w", currency, err)
	}

	var rate models.Rate
	if err := json.Unmarshal([]byte(val), &rate); err != nil {
		logger.Log.Errorw("failed to decode rate", "key", key, "value", val, "error", err)
		return nil, fmt.Errorf("decode rate %s: %w", currency, err)
	}
	rate.Currency = currency

	logger.Log.Infow("rate read", "key", key, "rate", rate.Rate, "updated_at", rate.UpdatedAt)

	return &rate, nil
}

// SaveAll stores the rates in one MULTI/EXEC transaction, replacing the
// previous values. Either every rate is stored or none is.
func (r *RateRedisRepository) SaveAll(ctx context.Context, rates []models.Rate) error {
	values := make(map[string][]byte, len(rates))
	for _, rate := range rates {
		data, err := json.Marshal(rate)
		if err != nil {
			return fmt.Errorf("encode rate %s: %w", rate.Currency, err)
		}
		values[rateKey(rate.Currency)] = data
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range values {
			pipe.Set(ctx, key, data, 0)
		}
		return nil
	})

	logger.Log.Infow("rates saved",
		"count", len(rates),
		"error", err,
	)

	if err != nil {
		return fmt.Errorf("save rates: %w", err)
	}
	return nil
}
