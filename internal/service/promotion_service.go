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

// promotionService implements PromotionService.
type promotionService struct {
	promotions repository.PromotionRepository
	stores     repository.StoreRepository
	gate       *plan.Gate
	now        func() time.Time
	logger     zerolog.Logger
}

// NewPromotionService creates a new promotion service.
func NewPromotionService(
	promotions repository.PromotionRepository,
	stores repository.StoreRepository,
	gate *plan.Gate,
	logger zerolog.Logger,
) PromotionService {
	return &promotionService{
		promotions: promotions,
		stores:     stores,
		gate:       gate,
		now:        time.Now,
		logger:     logger.With().Str("service", "promotion").Logger(),
	}
}

// Create inserts a promotion after the active-promotions limit check.
func (s *promotionService) Create(ctx context.Context, storeID uuid.UUID, req *model.PromotionRequest) (*model.Promotion, error) {
	if req == nil || req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Promotion name is required")
	}

	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	if store == nil {
		return nil, model.ErrStoreNotFound
	}

	count, err := s.promotions.CountActiveByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count promotions: %w", err)
	}
	if err := s.gate.CheckLimit(ctx, store.AccountID, plan.ResourcePromotionsActive, count); err != nil {
		return nil, err
	}

	now := s.now()
	p := &model.Promotion{
		ID:          uuid.New(),
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.promotions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.logger.Info().
		Str("promotion_id", p.ID.String()).
		Str("store_id", storeID.String()).
		Msg("promotion created")

	return p, nil
}
