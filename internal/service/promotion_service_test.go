package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"
	"storefront/internal/plan"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPromotionRepository is a mock implementation of
// repository.PromotionRepository.
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) CountActiveByStore(ctx context.Context, storeID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

func (m *MockPromotionRepository) Create(ctx context.Context, p *model.Promotion) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func TestPromotionService_Create_UnderLimit(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	store := openStore(storeID)

	promotions := new(MockPromotionRepository)
	stores := new(MockStoreRepository)
	subscriptions := new(MockSubscriptionSource)

	stores.On("GetByID", ctx, storeID).Return(store, nil)
	promotions.On("CountActiveByStore", ctx, storeID).Return(2, nil)
	subscriptions.On("GetActivePlan", ctx, store.AccountID).Return("simples", nil)
	promotions.On("Create", ctx, mock.AnythingOfType("*model.Promotion")).Return(nil)

	service := NewPromotionService(promotions, stores, plan.NewGate(subscriptions, logger), logger)

	p, err := service.Create(ctx, storeID, &model.PromotionRequest{
		Name:     "Terça da pizza",
		StartsAt: time.Now(),
		EndsAt:   time.Now().AddDate(0, 1, 0),
	})

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Active)

	promotions.AssertExpectations(t)
}

func TestPromotionService_Create_LimitReached(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	store := openStore(storeID)

	promotions := new(MockPromotionRepository)
	stores := new(MockStoreRepository)
	subscriptions := new(MockSubscriptionSource)

	stores.On("GetByID", ctx, storeID).Return(store, nil)
	promotions.On("CountActiveByStore", ctx, storeID).Return(3, nil)
	subscriptions.On("GetActivePlan", ctx, store.AccountID).Return("simples", nil)

	service := NewPromotionService(promotions, stores, plan.NewGate(subscriptions, logger), logger)

	p, err := service.Create(ctx, storeID, &model.PromotionRequest{Name: "Combo da casa"})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPlanLimitReached)
	assert.Nil(t, p)
	promotions.AssertNotCalled(t, "Create")
}
