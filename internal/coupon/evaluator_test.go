package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSource is a mock implementation of Source.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FindByCode(ctx context.Context, code string, storeID uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, code, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockSource) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fixedClock pins the evaluator to a deterministic instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func validCoupon(storeID uuid.UUID) *model.Coupon {
	return &model.Coupon{
		ID:       uuid.New(),
		StoreID:  storeID,
		Code:     "PROMO10",
		Type:     model.DiscountPercentage,
		Value:    10,
		StartsAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Active:   true,
	}
}

func TestEvaluator_Evaluate_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()

	coupon := validCoupon(storeID)

	source := new(MockSource)
	source.On("FindByCode", ctx, "PROMO10", storeID).Return(coupon, nil)

	evaluator := NewEvaluator(source, logger)
	evaluator.now = fixedClock(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))

	// Lookup is case-insensitive.
	got, err := evaluator.Evaluate(ctx, "promo10", storeID, 24.00)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, coupon.ID, got.ID)

	source.AssertExpectations(t)
}

func TestEvaluator_Evaluate_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()

	source := new(MockSource)
	source.On("FindByCode", ctx, "NOSUCH", storeID).Return(nil, nil)

	evaluator := NewEvaluator(source, logger)

	got, err := evaluator.Evaluate(ctx, "nosuch", storeID, 100.00)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
	assert.Nil(t, got)
}

func TestEvaluator_Evaluate_ValidityChecks(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	limit := 50

	tests := []struct {
		name     string
		mutate   func(c *model.Coupon)
		subtotal float64
		wantErr  error
	}{
		{
			name:     "Inactive coupon",
			mutate:   func(c *model.Coupon) { c.Active = false },
			subtotal: 100.00,
			wantErr:  model.ErrCouponInactive,
		},
		{
			name:     "Not yet started",
			mutate:   func(c *model.Coupon) { c.StartsAt = now.AddDate(0, 1, 0); c.EndsAt = now.AddDate(0, 2, 0) },
			subtotal: 100.00,
			wantErr:  model.ErrCouponExpired,
		},
		{
			name:     "Already ended",
			mutate:   func(c *model.Coupon) { c.StartsAt = now.AddDate(0, -2, 0); c.EndsAt = now.AddDate(0, -1, 0) },
			subtotal: 100.00,
			wantErr:  model.ErrCouponExpired,
		},
		{
			name:     "Below order minimum",
			mutate:   func(c *model.Coupon) { c.MinOrderValue = 50.00 },
			subtotal: 24.00,
			wantErr:  model.ErrCouponMinimumNotMet,
		},
		{
			name:     "Usage limit exhausted",
			mutate:   func(c *model.Coupon) { c.UsageLimit = &limit; c.TotalUsed = 50 },
			subtotal: 100.00,
			wantErr:  model.ErrCouponLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := validCoupon(storeID)
			tt.mutate(coupon)

			source := new(MockSource)
			source.On("FindByCode", ctx, "PROMO10", storeID).Return(coupon, nil)

			evaluator := NewEvaluator(source, logger)
			evaluator.now = fixedClock(now)

			got, err := evaluator.Evaluate(ctx, "PROMO10", storeID, tt.subtotal)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestEvaluator_Evaluate_InactiveBeatsWindow(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()

	// Both inactive and expired: the active check runs first.
	coupon := validCoupon(storeID)
	coupon.Active = false

	source := new(MockSource)
	source.On("FindByCode", ctx, "PROMO10", storeID).Return(coupon, nil)

	evaluator := NewEvaluator(source, logger)
	evaluator.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := evaluator.Evaluate(ctx, "PROMO10", storeID, 100.00)
	assert.ErrorIs(t, err, model.ErrCouponInactive)
}

func TestEvaluator_Evaluate_SourceError(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()

	source := new(MockSource)
	source.On("FindByCode", ctx, "PROMO10", storeID).Return(nil, errors.New("database error"))

	evaluator := NewEvaluator(source, logger)

	got, err := evaluator.Evaluate(ctx, "PROMO10", storeID, 100.00)

	require.Error(t, err)
	assert.Nil(t, got)
}

func TestEvaluator_Redeem(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	couponID := uuid.New()

	source := new(MockSource)
	source.On("IncrementUsage", ctx, couponID).Return(nil)

	evaluator := NewEvaluator(source, logger)

	require.NoError(t, evaluator.Redeem(ctx, couponID))
	source.AssertExpectations(t)
}

func TestEvaluator_Redeem_Error(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	couponID := uuid.New()

	source := new(MockSource)
	source.On("IncrementUsage", ctx, couponID).Return(errors.New("database error"))

	evaluator := NewEvaluator(source, logger)

	assert.Error(t, evaluator.Redeem(ctx, couponID))
}
