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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, store_id, category_id, name, description, price, promo_price, image_url, available, created_at, updated_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description,
		&p.Price, &p.PromoPrice, &p.ImageURL, &p.Available,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// ListByStore retrieves a store's products with pagination support.
func (r *productRepository) ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE store_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// CountByStore counts a store's products.
func (r *productRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE store_id = $1`, storeID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.StoreID, p.CategoryID, p.Name, p.Description,
		p.Price, p.PromoPrice, p.ImageURL, p.Available,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID.String()).Msg("product created")
	return nil
}

// SetImage records a product's image URL.
func (r *productRepository) SetImage(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx, `UPDATE products SET image_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to set product image")
		return fmt.Errorf("failed to set product image: %w", err)
	}
	return nil
}
