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

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, store_id, code, type, value, min_order_value, starts_at, ends_at, usage_limit, total_used, active, created_at, updated_at`

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	return row.Scan(
		&c.ID, &c.StoreID, &c.Code, &c.Type, &c.Value, &c.MinOrderValue,
		&c.StartsAt, &c.EndsAt, &c.UsageLimit, &c.TotalUsed, &c.Active,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

// FindByCode looks up a coupon by upper-cased code within one store.
func (r *couponRepository) FindByCode(ctx context.Context, code string, storeID uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 AND store_id = $2`

	var c model.Coupon
	err := scanCoupon(r.pool.QueryRow(ctx, query, code, storeID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon by code")
		return nil, fmt.Errorf("failed to query coupon by code: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	var c model.Coupon
	err := scanCoupon(r.pool.QueryRow(ctx, query, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// ListByStore retrieves a store's coupons, optionally only active ones.
func (r *couponRepository) ListByStore(ctx context.Context, storeID uuid.UUID, onlyActive bool) ([]model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE store_id = $1`
	if onlyActive {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (` + couponColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.StoreID, c.Code, c.Type, c.Value, c.MinOrderValue,
		c.StartsAt, c.EndsAt, c.UsageLimit, c.TotalUsed, c.Active,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", c.ID.String()).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Debug().Str("coupon_id", c.ID.String()).Str("code", c.Code).Msg("coupon created")
	return nil
}

// Update rewrites a coupon's merchant-editable fields.
func (r *couponRepository) Update(ctx context.Context, c *model.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, type = $3, value = $4, min_order_value = $5,
		    starts_at = $6, ends_at = $7, usage_limit = $8, active = $9,
		    updated_at = $10
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Code, c.Type, c.Value, c.MinOrderValue,
		c.StartsAt, c.EndsAt, c.UsageLimit, c.Active, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", c.ID.String()).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	return nil
}

// Deactivate soft-deletes a coupon.
func (r *couponRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE coupons SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to deactivate coupon")
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}

	r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon deactivated")
	return nil
}

// IncrementUsage bumps a coupon's redemption counter. The increment runs as a
// single SQL statement, so concurrent redemptions cannot lose updates, though
// the cap check upstream remains best-effort.
func (r *couponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE coupons SET total_used = total_used + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to increment coupon usage")
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	return nil
}
