package coupon

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Source is the coupon persistence boundary the evaluator reads through.
type Source interface {
	// FindByCode looks up a coupon by its upper-cased code within one store.
	// A nil coupon with a nil error means no such code.
	FindByCode(ctx context.Context, code string, storeID uuid.UUID) (*model.Coupon, error)

	// IncrementUsage bumps the coupon's redemption counter.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// Evaluator validates coupon codes against a store and an order subtotal.
// Validation is optimistic: the usage counter is only committed through
// Redeem, after the order has been persisted.
type Evaluator struct {
	coupons Source
	now     func() time.Time
	logger  zerolog.Logger
}

// NewEvaluator creates a coupon evaluator.
func NewEvaluator(coupons Source, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		coupons: coupons,
		now:     time.Now,
		logger:  logger.With().Str("component", "coupon-evaluator").Logger(),
	}
}

// Evaluate looks up the code within the store and runs the validity checks in
// order: existence, active flag, validity window, order minimum, usage cap.
// Each failure maps to its own domain error. On success the coupon record is
// returned for discount computation.
func (e *Evaluator) Evaluate(ctx context.Context, code string, storeID uuid.UUID, subtotal float64) (*model.Coupon, error) {
	normalized := model.NormalizeCouponCode(code)

	c, err := e.coupons.FindByCode(ctx, normalized, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon %s: %w", normalized, err)
	}
	if c == nil {
		e.logger.Debug().Str("code", normalized).Str("store_id", storeID.String()).Msg("coupon not found")
		return nil, model.ErrCouponNotFound
	}

	if !c.Active {
		return nil, model.ErrCouponInactive
	}
	if !c.WithinWindow(e.now()) {
		return nil, model.ErrCouponExpired
	}
	if subtotal < c.MinOrderValue {
		return nil, model.NewCouponMinimumNotMet(c.MinOrderValue)
	}
	if c.LimitReached() {
		return nil, model.ErrCouponLimitReached
	}

	e.logger.Debug().
		Str("code", normalized).
		Str("type", string(c.Type)).
		Float64("value", c.Value).
		Msg("coupon validated")

	return c, nil
}

// Redeem commits a validated coupon's usage by incrementing its counter.
// Callers invoke this only after the order has been durably created; a
// failure here must not fail the order.
func (e *Evaluator) Redeem(ctx context.Context, id uuid.UUID) error {
	if err := e.coupons.IncrementUsage(ctx, id); err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}
	return nil
}
