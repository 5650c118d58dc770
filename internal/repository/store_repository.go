package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// storeRepository implements the StoreRepository interface using PostgreSQL.
type storeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(pool *pgxpool.Pool, logger zerolog.Logger) StoreRepository {
	return &storeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "store").Logger(),
	}
}

// GetByID retrieves a store by its ID.
func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	query := `
		SELECT id, account_id, name, slug, accepts_orders, min_order_value,
		       delivery_fee, prep_time_minutes, active, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var s model.Store
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.AccountID, &s.Name, &s.Slug, &s.AcceptsOrders,
		&s.MinOrderValue, &s.DeliveryFee, &s.PrepTimeMinutes, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("store_id", id.String()).Msg("store not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("store_id", id.String()).Msg("failed to query store")
		return nil, fmt.Errorf("failed to query store: %w", err)
	}

	return &s, nil
}
