package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	coupons repository.CouponRepository
	now     func() time.Time
	logger  zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(coupons repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		coupons: coupons,
		now:     time.Now,
		logger:  logger.With().Str("service", "coupon").Logger(),
	}
}

// ListByStore retrieves a store's coupons.
func (s *couponService) ListByStore(ctx context.Context, storeID uuid.UUID, onlyActive bool) ([]model.Coupon, error) {
	coupons, err := s.coupons.ListByStore(ctx, storeID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// GetByID retrieves a coupon and checks store ownership. Coupons of other
// stores surface as not found.
func (s *couponService) GetByID(ctx context.Context, id, storeID uuid.UUID) (*model.Coupon, error) {
	c, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if c == nil || c.StoreID != storeID {
		return nil, model.ErrCouponNotFound
	}
	return c, nil
}

// Create stores a new coupon. Codes are upper-cased and must be unique
// within the store.
func (s *couponService) Create(ctx context.Context, storeID uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	code := model.NormalizeCouponCode(req.Code)
	existing, err := s.coupons.FindByCode(ctx, code, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if existing != nil {
		return nil, model.ErrCouponCodeExists
	}

	now := s.now()
	c := &model.Coupon{
		ID:            uuid.New(),
		StoreID:       storeID,
		Code:          code,
		Type:          req.Type,
		Value:         req.Value,
		MinOrderValue: req.MinOrderValue,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		UsageLimit:    req.UsageLimit,
		TotalUsed:     0,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.coupons.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info().
		Str("coupon_id", c.ID.String()).
		Str("store_id", storeID.String()).
		Str("code", c.Code).
		Msg("coupon created")

	return c, nil
}

// Update rewrites a coupon's merchant-editable fields. A changed code must
// stay unique within the store.
func (s *couponService) Update(ctx context.Context, id, storeID uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	c, err := s.GetByID(ctx, id, storeID)
	if err != nil {
		return nil, err
	}

	code := model.NormalizeCouponCode(req.Code)
	if code != c.Code {
		existing, err := s.coupons.FindByCode(ctx, code, storeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check coupon code: %w", err)
		}
		if existing != nil {
			return nil, model.ErrCouponCodeExists
		}
	}

	c.Code = code
	c.Type = req.Type
	c.Value = req.Value
	c.MinOrderValue = req.MinOrderValue
	c.StartsAt = req.StartsAt
	c.EndsAt = req.EndsAt
	c.UsageLimit = req.UsageLimit
	c.UpdatedAt = s.now()

	if err := s.coupons.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return c, nil
}

// Deactivate soft-deletes a coupon after checking store ownership.
func (s *couponService) Deactivate(ctx context.Context, id, storeID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, storeID); err != nil {
		return err
	}

	if err := s.coupons.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deactivated")
	return nil
}

func validateCouponRequest(req *model.CouponRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Coupon request is required")
	}
	if model.NormalizeCouponCode(req.Code) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Coupon code is required")
	}
	if !req.Type.Valid() {
		return model.NewDomainError(model.ErrCodeMissingField, "A valid discount type is required")
	}
	if req.Value < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Coupon value must not be negative")
	}
	if req.EndsAt.Before(req.StartsAt) {
		return model.NewDomainError(model.ErrCodeMissingField, "Coupon end date must not precede its start date")
	}
	return nil
}
