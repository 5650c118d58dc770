package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductSource is a mock implementation of ProductSource.
type MockProductSource struct {
	mock.Mock
}

func (m *MockProductSource) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func TestPricer_Price_PromoPriceWins(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	productID := uuid.New()
	promo := 8.00

	product := &model.Product{
		ID:         productID,
		StoreID:    storeID,
		Name:       "Margherita",
		Price:      10.00,
		PromoPrice: &promo,
		Available:  true,
	}

	source := new(MockProductSource)
	source.On("GetByID", ctx, productID).Return(product, nil)

	pricer := NewPricer(source, logger)

	result, err := pricer.Price(ctx, storeID, []model.CartLine{
		{ProductID: productID, Quantity: 3},
	})

	require.NoError(t, err)
	require.Len(t, result.Lines, 1)

	line := result.Lines[0]
	assert.Equal(t, 8.00, line.UnitPrice)
	assert.Equal(t, 10.00, line.ListPrice)
	assert.Equal(t, 24.00, line.Subtotal)
	assert.Equal(t, 24.00, result.Subtotal)
	assert.Equal(t, "Margherita", line.ProductName)
	assert.NotEqual(t, uuid.Nil, line.ID)

	source.AssertExpectations(t)
}

func TestPricer_Price_MultipleLines(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	pizzaID := uuid.New()
	sodaID := uuid.New()

	pizza := &model.Product{ID: pizzaID, StoreID: storeID, Name: "Calabresa", Price: 32.50, Available: true}
	soda := &model.Product{ID: sodaID, StoreID: storeID, Name: "Guarana 2L", Price: 9.00, Available: true}

	source := new(MockProductSource)
	source.On("GetByID", ctx, pizzaID).Return(pizza, nil)
	source.On("GetByID", ctx, sodaID).Return(soda, nil)

	pricer := NewPricer(source, logger)

	result, err := pricer.Price(ctx, storeID, []model.CartLine{
		{ProductID: pizzaID, Quantity: 2, Note: "extra cheese"},
		{ProductID: sodaID, Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, 65.00, result.Lines[0].Subtotal)
	assert.Equal(t, "extra cheese", result.Lines[0].Note)
	assert.Equal(t, 9.00, result.Lines[1].Subtotal)
	assert.Equal(t, 74.00, result.Subtotal)
}

func TestPricer_Price_EmptyCart(t *testing.T) {
	pricer := NewPricer(new(MockProductSource), zerolog.Nop())

	result, err := pricer.Price(context.Background(), uuid.New(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Nil(t, result)
}

func TestPricer_Price_InvalidQuantity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	storeID := uuid.New()

	source := new(MockProductSource)
	pricer := NewPricer(source, logger)

	for _, qty := range []int{0, -1} {
		result, err := pricer.Price(ctx, storeID, []model.CartLine{
			{ProductID: uuid.New(), Quantity: qty},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidQuantity)
		assert.Nil(t, result)
	}

	// Quantity is checked before the catalogue is consulted.
	source.AssertNotCalled(t, "GetByID")
}

func TestPricer_Price_ProductNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	missingID := uuid.New()

	source := new(MockProductSource)
	source.On("GetByID", ctx, missingID).Return(nil, nil)

	pricer := NewPricer(source, logger)

	result, err := pricer.Price(ctx, storeID, []model.CartLine{
		{ProductID: missingID, Quantity: 1},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Nil(t, result)
}

func TestPricer_Price_ProductFromAnotherStore(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	productID := uuid.New()

	// Product exists but belongs to a different store.
	product := &model.Product{
		ID:        productID,
		StoreID:   uuid.New(),
		Name:      "Foreign item",
		Price:     5.00,
		Available: true,
	}

	source := new(MockProductSource)
	source.On("GetByID", ctx, productID).Return(product, nil)

	pricer := NewPricer(source, logger)

	result, err := pricer.Price(ctx, storeID, []model.CartLine{
		{ProductID: productID, Quantity: 1},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrProductNotOwned)
	assert.Nil(t, result)
}

func TestPricer_Price_ProductUnavailable(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	storeID := uuid.New()
	productID := uuid.New()

	product := &model.Product{
		ID:        productID,
		StoreID:   storeID,
		Name:      "Sold out special",
		Price:     15.00,
		Available: false,
	}

	source := new(MockProductSource)
	source.On("GetByID", ctx, productID).Return(product, nil)

	pricer := NewPricer(source, logger)

	result, err := pricer.Price(ctx, storeID, []model.CartLine{
		{ProductID: productID, Quantity: 1},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrProductUnavailable)
	assert.Nil(t, result)
}

func TestPricer_Price_SourceError(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productID := uuid.New()

	source := new(MockProductSource)
	source.On("GetByID", ctx, productID).Return(nil, errors.New("database error"))

	pricer := NewPricer(source, logger)

	result, err := pricer.Price(ctx, uuid.New(), []model.CartLine{
		{ProductID: productID, Quantity: 1},
	})

	require.Error(t, err)
	assert.Nil(t, result)

	var de *model.DomainError
	assert.False(t, errors.As(err, &de), "infrastructure errors must not surface as domain errors")
}
