package model

import (
	"time"

	"github.com/google/uuid"
)

// Store is a merchant tenant. The order-facing configuration (whether it
// accepts orders, minimum order value, flat delivery fee, preparation time)
// lives directly on the record.
type Store struct {
	ID              uuid.UUID `json:"id" db:"id"`
	AccountID       uuid.UUID `json:"accountId" db:"account_id"`
	Name            string    `json:"name" db:"name"`
	Slug            string    `json:"slug" db:"slug"`
	AcceptsOrders   bool      `json:"acceptsOrders" db:"accepts_orders"`
	MinOrderValue   float64   `json:"minOrderValue" db:"min_order_value"`
	DeliveryFee     float64   `json:"deliveryFee" db:"delivery_fee"`
	PrepTimeMinutes int       `json:"prepTimeMinutes" db:"prep_time_minutes"`
	Active          bool      `json:"active" db:"active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// CustomerInfo is the customer contact and address data copied onto an order
// at creation time. Orders keep their own snapshot, independent of later
// customer edits.
type CustomerInfo struct {
	Name       string `json:"name" db:"customer_name"`
	Phone      string `json:"phone" db:"customer_phone"`
	Email      string `json:"email,omitempty" db:"customer_email"`
	Postcode   string `json:"postcode,omitempty" db:"address_postcode"`
	Street     string `json:"street,omitempty" db:"address_street"`
	Number     string `json:"number,omitempty" db:"address_number"`
	Complement string `json:"complement,omitempty" db:"address_complement"`
	District   string `json:"district,omitempty" db:"address_district"`
	City       string `json:"city,omitempty" db:"address_city"`
	State      string `json:"state,omitempty" db:"address_state"`
	Reference  string `json:"reference,omitempty" db:"address_reference"`
}
