package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/models"
)

// RatesSchema creates the table holding the current rate per currency.
const RatesSchema = `
	CREATE TABLE IF NOT EXISTS rates (
		currency VARCHAR(3) PRIMARY KEY,
		rate DOUBLE PRECISION NOT NULL CHECK (rate > 0),
		updated_at TIMESTAMPTZ NOT NULL
	)
`

// RatePostgresRepository stores the current rate of each currency in PostgreSQL.
// Only the latest value is kept.
type RatePostgresRepository struct {
	db *sqlx.DB
}

func NewRatePostgresRepository(db *sqlx.DB) *RatePostgresRepository {
	return &RatePostgresRepository{db: db}
}

// EnsureSchema creates the rates table if it does not exist.
func (r *RatePostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, RatesSchema)
	logger.Log.Infow("rates schema",
		"query", strings.Join(strings.Fields(RatesSchema), " "),
		"error", err,
	)
	if err != nil {
		return fmt.Errorf("create rates table: %w", err)
	}
	return nil
}

// Get returns the stored rate for a currency, or nil if none was set.
func (r *RatePostgresRepository) Get(ctx context.Context, currency string) (*models.Rate, error) {
	const query = `
		SELECT currency, rate, updated_at
		FROM rates
		WHERE currency = $1
	`

	var rate models.Rate
	err := r.db.GetContext(ctx, &rate, query, currency)

	logger.Log.Infow("rate query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{currency},
		"result", rate,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rate %s: %w", currency, err)
	}

	return &rate, nil
}

// SaveAll upserts the rates inside one transaction.
func (r *RatePostgresRepository) SaveAll(ctx context.Context, rates []models.Rate) (err error) {
	const query = `
		INSERT INTO rates (currency, rate, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (currency) DO UPDATE
		SET rate = EXCLUDED.rate,
		    updated_at = EXCLUDED.updated_at
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return fmt.Errorf("begin rates transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Log.Errorw("failed to roll back transaction", "error", rbErr)
			}
		}
	}()

	for _, rate := range rates {
		args := []any{rate.Currency, rate.Rate, rate.UpdatedAt}

		_, err = tx.ExecContext(ctx, query, args...)

		logger.Log.Infow("rate upsert",
			"query", strings.Join(strings.Fields(query), " "),
			"args", args,
			"error", err,
		)

		if err != nil {
			return fmt.Errorf("save rate %s: %w", rate.Currency, err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return fmt.Errorf("commit rates transaction: %w", err)
	}
	return nil
}
