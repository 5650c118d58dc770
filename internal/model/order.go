package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how the customer pays on delivery/pickup. No online
// capture happens in-order.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentPix  PaymentMethod = "pix"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix:
		return true
	}
	return false
}

// DeliveryMode selects between courier delivery and counter pickup.
type DeliveryMode string

const (
	ModeDelivery DeliveryMode = "delivery"
	ModePickup   DeliveryMode = "pickup"
)

// Valid reports whether m is a known delivery mode.
func (m DeliveryMode) Valid() bool {
	return m == ModeDelivery || m == ModePickup
}

// CartLine is a single raw cart entry as submitted by the customer. It is
// transient; only the priced line derived from it is persisted.
type CartLine struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
}

// PricedLine is a cart line resolved against the live catalogue and frozen
// into the order. The price fields are a point-in-time snapshot owned by the
// order; they never change when the source product does.
type PricedLine struct {
	ID                 uuid.UUID `json:"-" db:"id"`
	OrderID            uuid.UUID `json:"-" db:"order_id"`
	ProductID          uuid.UUID `json:"productId" db:"product_id"`
	ProductName        string    `json:"productName" db:"product_name"`
	ProductDescription string    `json:"productDescription" db:"product_description"`
	ListPrice          float64   `json:"listPrice" db:"list_price"`
	PromoPrice         *float64  `json:"promoPrice,omitempty" db:"promo_price"`
	UnitPrice          float64   `json:"unitPrice" db:"unit_price"`
	Quantity           int       `json:"quantity" db:"quantity"`
	Subtotal           float64   `json:"subtotal" db:"subtotal"`
	Note               string    `json:"note,omitempty" db:"note"`
}

// Order is a priced, validated order owned by one store and one customer.
// Monetary fields and the customer snapshot are fixed at creation; afterwards
// the record changes only through status transitions and note appends.
type Order struct {
	ID         uuid.UUID `json:"id" db:"id"`
	StoreID    uuid.UUID `json:"storeId" db:"store_id"`
	CustomerID uuid.UUID `json:"customerId" db:"customer_id"`

	Customer CustomerInfo `json:"customer"`

	Subtotal    float64 `json:"subtotal" db:"subtotal"`
	Discount    float64 `json:"discount" db:"discount"`
	DeliveryFee float64 `json:"deliveryFee" db:"delivery_fee"`
	Total       float64 `json:"total" db:"total"`

	CouponCode     *string `json:"couponCode,omitempty" db:"coupon_code"`
	CouponDiscount float64 `json:"couponDiscount" db:"coupon_discount"`

	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	ChangeFor     *float64      `json:"changeFor,omitempty" db:"change_for"`
	DeliveryMode  DeliveryMode  `json:"deliveryMode" db:"delivery_mode"`

	Notes            string `json:"notes,omitempty" db:"notes"`
	EstimatedMinutes int    `json:"estimatedMinutes" db:"estimated_minutes"`

	Status       Status  `json:"status" db:"status"`
	CancelReason *string `json:"cancelReason,omitempty" db:"cancel_reason"`

	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
	ConfirmedAt      *time.Time `json:"confirmedAt,omitempty" db:"confirmed_at"`
	PreparingAt      *time.Time `json:"preparingAt,omitempty" db:"preparing_at"`
	OutForDeliveryAt *time.Time `json:"outForDeliveryAt,omitempty" db:"out_for_delivery_at"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty" db:"delivered_at"`
	CanceledAt       *time.Time `json:"canceledAt,omitempty" db:"canceled_at"`
}

// Transition moves the order to next, stamping the status-specific timestamp
// and recording the cancel reason when transitioning to canceled. An illegal
// transition returns InvalidTransition and leaves the order untouched.
func (o *Order) Transition(next Status, cancelReason string, now time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return NewInvalidTransition(o.Status, next)
	}

	switch next {
	case StatusConfirmed:
		o.ConfirmedAt = &now
	case StatusPreparing:
		o.PreparingAt = &now
	case StatusOutForDelivery:
		o.OutForDeliveryAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCanceled:
		o.CanceledAt = &now
		if cancelReason != "" {
			o.CancelReason = &cancelReason
		}
	case StatusPending:
		// unreachable: pending has no incoming transitions
	}

	o.Status = next
	o.UpdatedAt = now
	return nil
}

// AppendNote adds a timestamped merchant note to the order's append-only
// note log.
func (o *Order) AppendNote(note string, now time.Time) {
	entry := fmt.Sprintf("[%s] %s", now.UTC().Format("2006-01-02 15:04:05"), note)
	if o.Notes == "" {
		o.Notes = entry
	} else {
		o.Notes += "\n" + entry
	}
	o.UpdatedAt = now
}

// OrderRequest is the public order-intake payload: raw cart lines plus the
// customer snapshot, payment and delivery selections.
type OrderRequest struct {
	CustomerID uuid.UUID    `json:"customerId"`
	Customer   CustomerInfo `json:"customer"`

	Items      []CartLine `json:"items"`
	CouponCode string     `json:"couponCode,omitempty"`

	PaymentMethod PaymentMethod `json:"paymentMethod"`
	ChangeFor     *float64      `json:"changeFor,omitempty"`
	DeliveryMode  DeliveryMode  `json:"deliveryMode"`
	Notes         string        `json:"notes,omitempty"`
}

// OrderResponse is an order together with its priced lines.
type OrderResponse struct {
	Order *Order       `json:"order"`
	Items []PricedLine `json:"items"`
}

// StatusUpdateRequest advances an order through the lifecycle.
type StatusUpdateRequest struct {
	Status       Status `json:"status"`
	CancelReason string `json:"cancelReason,omitempty"`
}

// NoteRequest appends a merchant note to an order.
type NoteRequest struct {
	Note string `json:"note"`
}
