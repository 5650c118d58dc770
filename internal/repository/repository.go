package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// ListByStore retrieves a store's products with pagination support.
	ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]model.Product, error)

	// CountByStore counts a store's products, for plan-limit checks.
	CountByStore(ctx context.Context, storeID uuid.UUID) (int, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// SetImage records a product's image URL.
	SetImage(ctx context.Context, id uuid.UUID, url string) error
}

// CategoryRepository defines the interface for category data access
// operations touched by the plan gate.
type CategoryRepository interface {
	// GetByID retrieves a category by ID. Returns nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CountByStore(ctx context.Context, storeID uuid.UUID) (int, error)
	Create(ctx context.Context, c *model.Category) error
	SetImage(ctx context.Context, id uuid.UUID, url string) error
}

// PromotionRepository defines the interface for promotion data access
// operations touched by the plan gate.
type PromotionRepository interface {
	CountActiveByStore(ctx context.Context, storeID uuid.UUID) (int, error)
	Create(ctx context.Context, p *model.Promotion) error
}

// StoreRepository defines the interface for store configuration lookups.
type StoreRepository interface {
	// GetByID retrieves a store by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// FindByCode looks up a coupon by upper-cased code within one store.
	// Returns nil when absent.
	FindByCode(ctx context.Context, code string, storeID uuid.UUID) (*model.Coupon, error)

	// GetByID retrieves a coupon by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// ListByStore retrieves a store's coupons, optionally only active ones.
	ListByStore(ctx context.Context, storeID uuid.UUID, onlyActive bool) ([]model.Coupon, error)

	// Create inserts a new coupon.
	Create(ctx context.Context, c *model.Coupon) error

	// Update rewrites a coupon's merchant-editable fields.
	Update(ctx context.Context, c *model.Coupon) error

	// Deactivate soft-deletes a coupon.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// IncrementUsage bumps a coupon's redemption counter.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the order's priced lines within the provided
	// transaction.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.PricedLine) error

	// GetByID retrieves an order by its ID along with its priced lines.
	// Returns a nil order when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.PricedLine, error)

	// ListByStore retrieves a store's orders, optionally filtered by status.
	ListByStore(ctx context.Context, storeID uuid.UUID, status *model.Status, limit, offset int) ([]model.Order, error)

	// Update persists an order's mutable fields: status, status timestamps,
	// cancel reason and notes.
	Update(ctx context.Context, order *model.Order) error
}

// SubscriptionRepository resolves an account's active subscription plan.
type SubscriptionRepository interface {
	// GetActivePlan returns the plan name of the account's active
	// subscription, or an empty string when none exists.
	GetActivePlan(ctx context.Context, accountID uuid.UUID) (string, error)
}
