package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/plan"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService. Every mutation consults the plan
// gate before writing; denials abort with no partial writes.
type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	stores     repository.StoreRepository
	gate       *plan.Gate
	now        func() time.Time
	logger     zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	stores repository.StoreRepository,
	gate *plan.Gate,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		stores:     stores,
		gate:       gate,
		now:        time.Now,
		logger:     logger.With().Str("service", "catalog").Logger(),
	}
}

// CreateProduct inserts a product after the products-per-store limit check.
func (s *catalogService) CreateProduct(ctx context.Context, storeID uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if req == nil || req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}

	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	count, err := s.products.CountByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.gate.CheckLimit(ctx, store.AccountID, plan.ResourceProductsPerStore, count); err != nil {
		return nil, err
	}

	now := s.now()
	p := &model.Product{
		ID:          uuid.New(),
		StoreID:     storeID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PromoPrice:  req.PromoPrice,
		Available:   req.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", p.ID.String()).
		Str("store_id", storeID.String()).
		Msg("product created")

	return p, nil
}

// CreateCategory inserts a category after the categories-per-store limit
// check.
func (s *catalogService) CreateCategory(ctx context.Context, storeID uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	if req == nil || req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Category name is required")
	}

	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	count, err := s.categories.CountByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.gate.CheckLimit(ctx, store.AccountID, plan.ResourceCategoriesPerStore, count); err != nil {
		return nil, err
	}

	now := s.now()
	c := &model.Category{
		ID:          uuid.New(),
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().
		Str("category_id", c.ID.String()).
		Str("store_id", storeID.String()).
		Msg("category created")

	return c, nil
}

// SetProductImage records a product image URL behind the product-images
// feature gate.
func (s *catalogService) SetProductImage(ctx context.Context, storeID, productID uuid.UUID, url string) error {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return err
	}
	if err := s.gate.CheckFeature(ctx, store.AccountID, plan.FeatureProductImages); err != nil {
		return err
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil || p.StoreID != storeID {
		return model.NewProductNotFound(productID.String())
	}

	return s.products.SetImage(ctx, productID, url)
}

// SetCategoryImage records a category image URL behind the category-images
// feature gate.
func (s *catalogService) SetCategoryImage(ctx context.Context, storeID, categoryID uuid.UUID, url string) error {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return err
	}
	if err := s.gate.CheckFeature(ctx, store.AccountID, plan.FeatureCategoryImages); err != nil {
		return err
	}

	c, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if c == nil || c.StoreID != storeID {
		return model.NewCategoryNotFound(categoryID.String())
	}

	return s.categories.SetImage(ctx, categoryID, url)
}

func (s *catalogService) loadStore(ctx context.Context, storeID uuid.UUID) (*model.Store, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	if store == nil {
		return nil, model.ErrStoreNotFound
	}
	return store, nil
}
