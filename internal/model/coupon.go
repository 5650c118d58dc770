package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiscountType is a closed enumeration of coupon discount kinds.
type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixedAmount  DiscountType = "fixed_amount"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	switch t {
	case DiscountPercentage, DiscountFixedAmount, DiscountFreeShipping:
		return true
	}
	return false
}

// Coupon is a redeemable discount code scoped to one store. Codes are stored
// upper-cased and matched case-insensitively. A nil UsageLimit means
// unlimited redemptions. Coupons are deactivated, never hard-deleted.
type Coupon struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	StoreID       uuid.UUID    `json:"storeId" db:"store_id"`
	Code          string       `json:"code" db:"code"`
	Type          DiscountType `json:"type" db:"type"`
	Value         float64      `json:"value" db:"value"`
	MinOrderValue float64      `json:"minOrderValue" db:"min_order_value"`
	StartsAt      time.Time    `json:"startsAt" db:"starts_at"`
	EndsAt        time.Time    `json:"endsAt" db:"ends_at"`
	UsageLimit    *int         `json:"usageLimit,omitempty" db:"usage_limit"`
	TotalUsed     int          `json:"totalUsed" db:"total_used"`
	Active        bool         `json:"active" db:"active"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}

// NormalizeCouponCode upper-cases and trims a coupon code for storage and
// lookup.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// WithinWindow reports whether at falls inside the coupon's [start, end]
// validity window, inclusive at calendar-date granularity in UTC.
func (c *Coupon) WithinWindow(at time.Time) bool {
	day := at.UTC().Truncate(24 * time.Hour)
	start := c.StartsAt.UTC().Truncate(24 * time.Hour)
	end := c.EndsAt.UTC().Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}

// LimitReached reports whether the usage cap has been hit. Unlimited coupons
// never reach it.
func (c *Coupon) LimitReached() bool {
	return c.UsageLimit != nil && c.TotalUsed >= *c.UsageLimit
}

// CouponRequest is the merchant payload for creating or updating a coupon.
type CouponRequest struct {
	Code          string       `json:"code"`
	Type          DiscountType `json:"type"`
	Value         float64      `json:"value"`
	MinOrderValue float64      `json:"minOrderValue"`
	StartsAt      time.Time    `json:"startsAt"`
	EndsAt        time.Time    `json:"endsAt"`
	UsageLimit    *int         `json:"usageLimit,omitempty"`
}
