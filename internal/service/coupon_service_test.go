package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCouponRepository is a mock implementation of
// repository.CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string, storeID uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, code, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ListByStore(ctx context.Context, storeID uuid.UUID, onlyActive bool) ([]model.Coupon, error) {
	args := m.Called(ctx, storeID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Create(ctx context.Context, c *model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) Update(ctx context.Context, c *model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func couponRequest() *model.CouponRequest {
	return &model.CouponRequest{
		Code:     "promo10",
		Type:     model.DiscountPercentage,
		Value:    10,
		StartsAt: time.Now(),
		EndsAt:   time.Now().AddDate(0, 1, 0),
	}
}

func TestCouponService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()

	repo := new(MockCouponRepository)
	repo.On("FindByCode", ctx, "PROMO10", storeID).Return(nil, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*model.Coupon")).Return(nil)

	service := NewCouponService(repo, logger)

	c, err := service.Create(ctx, storeID, couponRequest())

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "PROMO10", c.Code, "codes are stored upper-cased")
	assert.True(t, c.Active)
	assert.Equal(t, 0, c.TotalUsed)

	repo.AssertExpectations(t)
}

func TestCouponService_Create_DuplicateCode(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()

	existing := &model.Coupon{ID: uuid.New(), StoreID: storeID, Code: "PROMO10"}

	repo := new(MockCouponRepository)
	repo.On("FindByCode", ctx, "PROMO10", storeID).Return(existing, nil)

	service := NewCouponService(repo, logger)

	c, err := service.Create(ctx, storeID, couponRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCouponCodeExists)
	assert.Nil(t, c)
	repo.AssertNotCalled(t, "Create")
}

func TestCouponService_Create_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockCouponRepository)
	service := NewCouponService(repo, logger)

	tests := []struct {
		name   string
		mutate func(req *model.CouponRequest) *model.CouponRequest
	}{
		{"Nil request", func(req *model.CouponRequest) *model.CouponRequest { return nil }},
		{"Blank code", func(req *model.CouponRequest) *model.CouponRequest { req.Code = "   "; return req }},
		{"Unknown type", func(req *model.CouponRequest) *model.CouponRequest { req.Type = "bogof"; return req }},
		{"Negative value", func(req *model.CouponRequest) *model.CouponRequest { req.Value = -5; return req }},
		{"End before start", func(req *model.CouponRequest) *model.CouponRequest {
			req.StartsAt = time.Now()
			req.EndsAt = time.Now().AddDate(0, 0, -1)
			return req
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := service.Create(ctx, uuid.New(), tt.mutate(couponRequest()))

			require.Error(t, err)
			assert.Nil(t, c)
		})
	}

	repo.AssertNotCalled(t, "Create")
}

func TestCouponService_GetByID_WrongStore(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	couponID := uuid.New()
	existing := &model.Coupon{ID: couponID, StoreID: uuid.New(), Code: "PROMO10"}

	repo := new(MockCouponRepository)
	repo.On("GetByID", ctx, couponID).Return(existing, nil)

	service := NewCouponService(repo, logger)

	// Another store's coupon surfaces as not found.
	c, err := service.GetByID(ctx, couponID, uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
	assert.Nil(t, c)
}

func TestCouponService_Update_ChangedCodeMustBeUnique(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	couponID := uuid.New()
	existing := &model.Coupon{ID: couponID, StoreID: storeID, Code: "PROMO10"}
	conflicting := &model.Coupon{ID: uuid.New(), StoreID: storeID, Code: "PROMO20"}

	repo := new(MockCouponRepository)
	repo.On("GetByID", ctx, couponID).Return(existing, nil)
	repo.On("FindByCode", ctx, "PROMO20", storeID).Return(conflicting, nil)

	service := NewCouponService(repo, logger)

	req := couponRequest()
	req.Code = "promo20"

	c, err := service.Update(ctx, couponID, storeID, req)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCouponCodeExists)
	assert.Nil(t, c)
	repo.AssertNotCalled(t, "Update")
}

func TestCouponService_Update_SameCodeSkipsUniquenessCheck(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	couponID := uuid.New()
	existing := &model.Coupon{ID: couponID, StoreID: storeID, Code: "PROMO10"}

	repo := new(MockCouponRepository)
	repo.On("GetByID", ctx, couponID).Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*model.Coupon")).Return(nil)

	service := NewCouponService(repo, logger)

	req := couponRequest()
	req.Value = 15

	c, err := service.Update(ctx, couponID, storeID, req)

	require.NoError(t, err)
	assert.Equal(t, 15.0, c.Value)
	repo.AssertNotCalled(t, "FindByCode")
}

func TestCouponService_Deactivate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	couponID := uuid.New()
	existing := &model.Coupon{ID: couponID, StoreID: storeID, Code: "PROMO10", Active: true}

	repo := new(MockCouponRepository)
	repo.On("GetByID", ctx, couponID).Return(existing, nil)
	repo.On("Deactivate", ctx, couponID).Return(nil)

	service := NewCouponService(repo, logger)

	require.NoError(t, service.Deactivate(ctx, couponID, storeID))
	repo.AssertExpectations(t)
}
