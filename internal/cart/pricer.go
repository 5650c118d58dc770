package cart

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductSource resolves products by id. A nil product with a nil error
// means the product does not exist.
type ProductSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// Result is a fully priced cart: the ordered priced lines and their sum.
type Result struct {
	Lines    []model.PricedLine
	Subtotal float64
}

// Pricer resolves raw cart lines against the live catalogue and freezes them
// into priced lines. It is read-only; any single line failure aborts the
// whole cart.
type Pricer struct {
	products ProductSource
	logger   zerolog.Logger
}

// NewPricer creates a cart pricer.
func NewPricer(products ProductSource, logger zerolog.Logger) *Pricer {
	return &Pricer{
		products: products,
		logger:   logger.With().Str("component", "cart-pricer").Logger(),
	}
}

// Price validates and prices every cart line for the given store. Each line
// must reference an existing, available product owned by the store. The unit
// price is the promotional price when set, the list price otherwise; the line
// subtotal is unit price times quantity.
func (p *Pricer) Price(ctx context.Context, storeID uuid.UUID, lines []model.CartLine) (*Result, error) {
	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}

	result := &Result{
		Lines: make([]model.PricedLine, 0, len(lines)),
	}

	for i, line := range lines {
		if line.Quantity < 1 {
			p.logger.Warn().
				Int("line_index", i).
				Str("product_id", line.ProductID.String()).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return nil, model.ErrInvalidQuantity
		}

		product, err := p.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, model.NewProductNotFound(line.ProductID.String())
		}
		if product.StoreID != storeID {
			p.logger.Warn().
				Str("product_id", product.ID.String()).
				Str("product_store_id", product.StoreID.String()).
				Str("store_id", storeID.String()).
				Msg("product belongs to another store")
			return nil, model.NewProductNotOwned(line.ProductID.String())
		}
		if !product.Available {
			return nil, model.NewProductUnavailable(product.Name)
		}

		unitPrice := product.UnitPrice()
		lineSubtotal := unitPrice * float64(line.Quantity)

		result.Lines = append(result.Lines, model.PricedLine{
			ID:                 uuid.New(),
			ProductID:          product.ID,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			ListPrice:          product.Price,
			PromoPrice:         product.PromoPrice,
			UnitPrice:          unitPrice,
			Quantity:           line.Quantity,
			Subtotal:           lineSubtotal,
			Note:               line.Note,
		})
		result.Subtotal += lineSubtotal
	}

	p.logger.Debug().
		Str("store_id", storeID.String()).
		Int("line_count", len(result.Lines)).
		Float64("subtotal", result.Subtotal).
		Msg("cart priced")

	return result, nil
}
