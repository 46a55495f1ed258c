package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-cambio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRateRedisRepository(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewRateRedisRepository(rdb)

	t.Run("SaveAll and Get rate", func(t *testing.T) {
		updatedAt := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
		rate := models.Rate{Currency: "PYG", Rate: 1450, UpdatedAt: updatedAt}

		err := repo.SaveAll(ctx, []models.Rate{rate})
		assert.NoError(t, err)

		got, err := repo.Get(ctx, "PYG")
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, "PYG", got.Currency)
			assert.Equal(t, 1450.0, got.Rate)
			assert.True(t, updatedAt.Equal(got.UpdatedAt))
		}
	})

	t.Run("SaveAll stores every rate", func(t *testing.T) {
		now := time.Now().UTC()
		err := repo.SaveAll(ctx, []models.Rate{
			{Currency: "PYG", Rate: 1500, UpdatedAt: now},
			{Currency: "USD", Rate: 5.6, UpdatedAt: now},
		})
		assert.NoError(t, err)

		pyg, err := repo.Get(ctx, "PYG")
		assert.NoError(t, err)
		usd, err := repo.Get(ctx, "USD")
		assert.NoError(t, err)
		if assert.NotNil(t, pyg) && assert.NotNil(t, usd) {
			assert.Equal(t, 1500.0, pyg.Rate)
			assert.Equal(t, 5.6, usd.Rate)
		}
	})

	t.Run("SaveAll replaces previous rate", func(t *testing.T) {
		assert.NoError(t, repo.SaveAll(ctx, []models.Rate{{Currency: "USD", Rate: 5.4, UpdatedAt: time.Now().UTC()}}))
		assert.NoError(t, repo.SaveAll(ctx, []models.Rate{{Currency: "USD", Rate: 5.5, UpdatedAt: time.Now().UTC()}}))

		got, err := repo.Get(ctx, "USD")
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, 5.5, got.Rate)
		}
	})

	t.Run("Get missing rate returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, "EUR")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SaveAll on closed client stores nothing", func(t *testing.T) {
		closed := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
		assert.NoError(t, closed.Close())

		err := NewRateRedisRepository(closed).SaveAll(ctx, []models.Rate{
			{Currency: "GBP", Rate: 7.1, UpdatedAt: time.Now().UTC()},
		})
		assert.Error(t, err)

		got, err := repo.Get(ctx, "GBP")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Get corrupted value returns error", func(t *testing.T) {
		assert.NoError(t, rdb.Set(ctx, rateKey("XXX"), "not-json", 0).Err())

		got, err := repo.Get(ctx, "XXX")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
