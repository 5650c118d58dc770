package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternalError = "INTERNAL_ERROR"

	// Cart pricing
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeProductNotOwned    = "PRODUCT_NOT_OWNED"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"

	// Coupon evaluation
	ErrCodeCouponNotFound      = "COUPON_NOT_FOUND"
	ErrCodeCouponInactive      = "COUPON_INACTIVE"
	ErrCodeCouponExpired       = "COUPON_EXPIRED"
	ErrCodeCouponMinimumNotMet = "COUPON_MINIMUM_NOT_MET"
	ErrCodeCouponLimitReached  = "COUPON_LIMIT_REACHED"
	ErrCodeCouponCodeExists    = "COUPON_CODE_EXISTS"

	// Order assembly
	ErrCodeStoreNotFound           = "STORE_NOT_FOUND"
	ErrCodeStoreNotAcceptingOrders = "STORE_NOT_ACCEPTING_ORDERS"
	ErrCodeMinimumOrderNotMet      = "MINIMUM_ORDER_NOT_MET"
	ErrCodeInsufficientChange      = "INSUFFICIENT_CHANGE_AMOUNT"

	// Plan gate
	ErrCodePlanLimitReached       = "PLAN_LIMIT_REACHED"
	ErrCodePlanFeatureUnavailable = "PLAN_FEATURE_UNAVAILABLE"

	// Catalogue
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"

	// Order lifecycle
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
)

// DomainError is a recoverable, user-facing business error. Handlers map its
// Code to an HTTP status; the Message is safe to surface to callers.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so call
// sites can match parameterised errors against the exported sentinels with
// errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart               = NewDomainError(ErrCodeEmptyCart, "Order must contain at least one item")
	ErrInvalidQuantity         = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrProductNotFound         = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductNotOwned         = NewDomainError(ErrCodeProductNotOwned, "Product does not belong to this store")
	ErrProductUnavailable      = NewDomainError(ErrCodeProductUnavailable, "Product is unavailable")
	ErrCouponNotFound          = NewDomainError(ErrCodeCouponNotFound, "Coupon not found")
	ErrCouponInactive          = NewDomainError(ErrCodeCouponInactive, "Coupon is inactive")
	ErrCouponExpired           = NewDomainError(ErrCodeCouponExpired, "Coupon is outside its validity period")
	ErrCouponMinimumNotMet     = NewDomainError(ErrCodeCouponMinimumNotMet, "Order value is below the coupon minimum")
	ErrCouponLimitReached      = NewDomainError(ErrCodeCouponLimitReached, "Coupon usage limit reached")
	ErrCouponCodeExists        = NewDomainError(ErrCodeCouponCodeExists, "Coupon code already exists for this store")
	ErrStoreNotFound           = NewDomainError(ErrCodeStoreNotFound, "Store not found")
	ErrStoreNotAcceptingOrders = NewDomainError(ErrCodeStoreNotAcceptingOrders, "Store is not accepting orders right now")
	ErrMinimumOrderNotMet      = NewDomainError(ErrCodeMinimumOrderNotMet, "Order value is below the store minimum")
	ErrInsufficientChange      = NewDomainError(ErrCodeInsufficientChange, "Change amount must cover the order total")
	ErrPlanLimitReached        = NewDomainError(ErrCodePlanLimitReached, "Plan limit reached for this resource")
	ErrPlanFeatureUnavailable  = NewDomainError(ErrCodePlanFeatureUnavailable, "Feature not available on the current plan")
	ErrCategoryNotFound        = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrOrderNotFound           = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidTransition       = NewDomainError(ErrCodeInvalidTransition, "Invalid order status transition")
)

// NewProductNotFound returns a ProductNotFound error naming the product.
func NewProductNotFound(id string) *DomainError {
	return NewDomainError(ErrCodeProductNotFound, fmt.Sprintf("Product not found: %s", id))
}

// NewProductNotOwned returns a ProductNotOwned error naming the product.
func NewProductNotOwned(id string) *DomainError {
	return NewDomainError(ErrCodeProductNotOwned, fmt.Sprintf("Product does not belong to this store: %s", id))
}

// NewProductUnavailable returns a ProductUnavailable error naming the product.
func NewProductUnavailable(name string) *DomainError {
	return NewDomainError(ErrCodeProductUnavailable, fmt.Sprintf("Product is unavailable: %s", name))
}

// NewCategoryNotFound returns a CategoryNotFound error naming the category.
func NewCategoryNotFound(id string) *DomainError {
	return NewDomainError(ErrCodeCategoryNotFound, fmt.Sprintf("Category not found: %s", id))
}

// NewMinimumOrderNotMet returns a MinimumOrderNotMet error carrying the
// required minimum.
func NewMinimumOrderNotMet(minimum float64) *DomainError {
	return NewDomainError(ErrCodeMinimumOrderNotMet, fmt.Sprintf("Minimum order value is %.2f", minimum))
}

// NewCouponMinimumNotMet returns a CouponMinimumNotMet error carrying the
// coupon's required minimum.
func NewCouponMinimumNotMet(minimum float64) *DomainError {
	return NewDomainError(ErrCodeCouponMinimumNotMet, fmt.Sprintf("Minimum order value for this coupon is %.2f", minimum))
}

// NewInvalidTransition returns an InvalidTransition error naming both statuses.
func NewInvalidTransition(from, to Status) *DomainError {
	return NewDomainError(ErrCodeInvalidTransition, fmt.Sprintf("Invalid status transition: %s -> %s", from, to))
}

// NewPlanLimitReached returns a PlanLimitReached error naming the resource.
func NewPlanLimitReached(resource string, limit int) *DomainError {
	return NewDomainError(ErrCodePlanLimitReached, fmt.Sprintf("Limit of %d reached for %s on the current plan", limit, resource))
}

// NewPlanFeatureUnavailable returns a PlanFeatureUnavailable error naming the
// feature.
func NewPlanFeatureUnavailable(feature string) *DomainError {
	return NewDomainError(ErrCodePlanFeatureUnavailable, fmt.Sprintf("Feature %s is not available on the current plan", feature))
}
