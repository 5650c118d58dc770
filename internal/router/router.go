package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Public routes cover order intake and tracking; merchant routes cover the
// order lifecycle, coupons and plan-gated catalogue mutations.
func New(
	orderHandler *handler.OrderHandler,
	merchantOrderHandler *handler.MerchantOrderHandler,
	couponHandler *handler.CouponHandler,
	catalogHandler *handler.CatalogHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public storefront routes
	mux.HandleFunc("POST /api/stores/{storeID}/orders", orderHandler.Create)
	mux.HandleFunc("GET /api/orders/{orderID}", orderHandler.GetByID)

	// Merchant order lifecycle
	mux.HandleFunc("GET /api/merchant/stores/{storeID}/orders", merchantOrderHandler.List)
	mux.HandleFunc("PATCH /api/merchant/stores/{storeID}/orders/{orderID}/status", merchantOrderHandler.UpdateStatus)
	mux.HandleFunc("POST /api/merchant/stores/{storeID}/orders/{orderID}/notes", merchantOrderHandler.AddNote)

	// Merchant coupons
	mux.HandleFunc("GET /api/merchant/stores/{storeID}/coupons", couponHandler.List)
	mux.HandleFunc("POST /api/merchant/stores/{storeID}/coupons", couponHandler.Create)
	mux.HandleFunc("PUT /api/merchant/stores/{storeID}/coupons/{couponID}", couponHandler.Update)
	mux.HandleFunc("DELETE /api/merchant/stores/{storeID}/coupons/{couponID}", couponHandler.Deactivate)

	// Merchant catalogue (plan-gated)
	mux.HandleFunc("POST /api/merchant/stores/{storeID}/products", catalogHandler.CreateProduct)
	mux.HandleFunc("POST /api/merchant/stores/{storeID}/categories", catalogHandler.CreateCategory)
	mux.HandleFunc("POST /api/merchant/stores/{storeID}/promotions", catalogHandler.CreatePromotion)
	mux.HandleFunc("PUT /api/merchant/stores/{storeID}/products/{productID}/image", catalogHandler.SetProductImage)
	mux.HandleFunc("PUT /api/merchant/stores/{storeID}/categories/{categoryID}/image", catalogHandler.SetCategoryImage)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
