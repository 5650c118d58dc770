package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// OrderService defines order intake and lifecycle operations.
type OrderService interface {
	// Create prices and validates a raw cart submission and persists the
	// resulting order with its line items.
	Create(ctx context.Context, storeID uuid.UUID, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its priced lines. Returns nil when
	// absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// ListByStore retrieves a store's orders, optionally filtered by status.
	ListByStore(ctx context.Context, storeID uuid.UUID, status *model.Status, limit, offset int) ([]model.Order, error)

	// UpdateStatus advances an order through the status state machine on
	// behalf of the owning store.
	UpdateStatus(ctx context.Context, orderID, storeID uuid.UUID, next model.Status, cancelReason string) (*model.Order, error)

	// AddNote appends a timestamped merchant note to an order.
	AddNote(ctx context.Context, orderID, storeID uuid.UUID, note string) (*model.Order, error)
}

// CouponService defines merchant-facing coupon management.
type CouponService interface {
	ListByStore(ctx context.Context, storeID uuid.UUID, onlyActive bool) ([]model.Coupon, error)
	GetByID(ctx context.Context, id, storeID uuid.UUID) (*model.Coupon, error)
	Create(ctx context.Context, storeID uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)
	Update(ctx context.Context, id, storeID uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)
	Deactivate(ctx context.Context, id, storeID uuid.UUID) error
}

// CatalogService defines the catalogue mutations that consult the plan gate.
type CatalogService interface {
	CreateProduct(ctx context.Context, storeID uuid.UUID, req *model.ProductRequest) (*model.Product, error)
	CreateCategory(ctx context.Context, storeID uuid.UUID, req *model.CategoryRequest) (*model.Category, error)
	SetProductImage(ctx context.Context, storeID, productID uuid.UUID, url string) error
	SetCategoryImage(ctx context.Context, storeID, categoryID uuid.UUID, url string) error
}

// PromotionService defines promotion mutations that consult the plan gate.
type PromotionService interface {
	Create(ctx context.Context, storeID uuid.UUID, req *model.PromotionRequest) (*model.Promotion, error)
}
