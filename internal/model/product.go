package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a food product in a store's catalogue.
type Product struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	StoreID     uuid.UUID  `json:"storeId" db:"store_id"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	PromoPrice  *float64   `json:"promoPrice,omitempty" db:"promo_price"`
	ImageURL    *string    `json:"imageUrl,omitempty" db:"image_url"`
	Available   bool       `json:"available" db:"available"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// UnitPrice returns the promotional price when one is set, the list price
// otherwise.
func (p *Product) UnitPrice() float64 {
	if p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}

// Category groups products within a store.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StoreID     uuid.UUID `json:"storeId" db:"store_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// PromotionRequest is the merchant payload for creating a promotion.
type PromotionRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}

// ProductRequest is the merchant payload for creating a product.
type ProductRequest struct {
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	PromoPrice  *float64   `json:"promoPrice,omitempty"`
	Available   bool       `json:"available"`
}

// CategoryRequest is the merchant payload for creating a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Promotion is a time-boxed highlight owned by a store. Active promotions
// count against the plan's promotions_active limit.
type Promotion struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StoreID     uuid.UUID `json:"storeId" db:"store_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	StartsAt    time.Time `json:"startsAt" db:"starts_at"`
	EndsAt      time.Time `json:"endsAt" db:"ends_at"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
