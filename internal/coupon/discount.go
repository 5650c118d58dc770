package coupon

import "storefront/internal/model"

// Discount computes the monetary discount a coupon grants on a subtotal.
// Percentage coupons take value as a percent of the subtotal; fixed-amount
// coupons take value directly; free-shipping coupons discount nothing here,
// their effect is applied at the delivery-fee stage. The result is clamped so
// it never exceeds the subtotal.
func Discount(c *model.Coupon, subtotal float64) float64 {
	var discount float64

	switch c.Type {
	case model.DiscountPercentage:
		discount = subtotal * (c.Value / 100)
	case model.DiscountFixedAmount:
		discount = c.Value
	case model.DiscountFreeShipping:
		discount = 0
	}

	if discount > subtotal {
		return subtotal
	}
	return discount
}
