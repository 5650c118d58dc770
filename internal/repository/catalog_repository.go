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

// categoryRepository implements the CategoryRepository interface using
// PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// GetByID retrieves a category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `
		SELECT id, store_id, name, description, image_url, active, created_at, updated_at
		FROM categories WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.StoreID, &c.Name, &c.Description, &c.ImageURL, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("category_id", id.String()).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// CountByStore counts a store's categories.
func (r *categoryRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE store_id = $1`, storeID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to count categories")
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (id, store_id, name, description, image_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.StoreID, c.Name, c.Description, c.ImageURL, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", c.ID.String()).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	r.logger.Debug().Str("category_id", c.ID.String()).Msg("category created")
	return nil
}

// SetImage records a category's image URL.
func (r *categoryRepository) SetImage(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx, `UPDATE categories SET image_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to set category image")
		return fmt.Errorf("failed to set category image: %w", err)
	}
	return nil
}

// promotionRepository implements the PromotionRepository interface using
// PostgreSQL.
type promotionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromotionRepository creates a new PostgreSQL-backed promotion repository.
func NewPromotionRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromotionRepository {
	return &promotionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promotion").Logger(),
	}
}

// CountActiveByStore counts a store's active promotions.
func (r *promotionRepository) CountActiveByStore(ctx context.Context, storeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM promotions WHERE store_id = $1 AND active = TRUE`, storeID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to count promotions")
		return 0, fmt.Errorf("failed to count promotions: %w", err)
	}
	return count, nil
}

// Create inserts a new promotion.
func (r *promotionRepository) Create(ctx context.Context, p *model.Promotion) error {
	query := `
		INSERT INTO promotions (id, store_id, name, description, starts_at, ends_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.StoreID, p.Name, p.Description, p.StartsAt, p.EndsAt, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("promotion_id", p.ID.String()).Msg("failed to create promotion")
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	r.logger.Debug().Str("promotion_id", p.ID.String()).Msg("promotion created")
	return nil
}
