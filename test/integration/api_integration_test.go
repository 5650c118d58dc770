package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/coupon"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/notify"
	"storefront/internal/plan"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	// Initialize repositories
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	categoryRepo := repository.NewCategoryRepository(testDB.Pool, logger)
	promotionRepo := repository.NewPromotionRepository(testDB.Pool, logger)
	storeRepo := repository.NewStoreRepository(testDB.Pool, logger)
	couponRepo := repository.NewCouponRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	subscriptionRepo := repository.NewSubscriptionRepository(testDB.Pool, logger)

	pricer := cart.NewPricer(productRepo, logger)
	evaluator := coupon.NewEvaluator(couponRepo, logger)
	gate := plan.NewGate(subscriptionRepo, logger)
	notifier := notify.NewLogNotifier(logger)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, storeRepo, pricer, evaluator, notifier, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, storeRepo, gate, logger)
	promotionService := service.NewPromotionService(promotionRepo, storeRepo, gate, logger)

	// Initialize handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	merchantOrderHandler := handler.NewMerchantOrderHandler(orderService, logger)
	couponHandler := handler.NewCouponHandler(couponService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, promotionService, logger)

	return router.New(orderHandler, merchantOrderHandler, couponHandler, catalogHandler, "test-api-key", logger)
}

func postOrder(t *testing.T, server http.Handler, body *model.OrderRequest) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/stores/"+SeedStoreID.String()+"/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	return w
}

func validOrderBody() *model.OrderRequest {
	return &model.OrderRequest{
		CustomerID: uuid.New(),
		Customer: model.CustomerInfo{
			Name:  "Ana Souza",
			Phone: "+55 11 99999-0000",
		},
		Items:         []model.CartLine{{ProductID: SeedPizzaID, Quantity: 3}},
		PaymentMethod: model.PaymentCard,
		DeliveryMode:  model.ModeDelivery,
	}
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("POST order prices the cart and persists it", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w := postOrder(t, server, validOrderBody())

		require.Equal(t, http.StatusCreated, w.Code)

		var resp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 24.00, resp.Order.Subtotal)
		assert.Equal(t, 6.00, resp.Order.DeliveryFee)
		assert.Equal(t, 30.00, resp.Order.Total)
		assert.Equal(t, model.StatusPending, resp.Order.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 8.00, resp.Items[0].UnitPrice)

		// The order is publicly retrievable without an API key.
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+resp.Order.ID.String(), nil)
		getRec := httptest.NewRecorder()
		server.ServeHTTP(getRec, req)
		assert.Equal(t, http.StatusOK, getRec.Code)
	})

	t.Run("POST order with coupon applies the discount and redeems it", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
		SeedCoupon(t, testDB.Pool)

		body := validOrderBody()
		body.CouponCode = "promo10"
		body.DeliveryMode = model.ModePickup

		w := postOrder(t, server, body)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.InDelta(t, 2.40, resp.Order.Discount, 0.0001)
		assert.InDelta(t, 21.60, resp.Order.Total, 0.0001)

		couponRepo := repository.NewCouponRepository(testDB.Pool, zerolog.Nop())
		c, err := couponRepo.GetByID(context.Background(), SeedCouponID)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, 1, c.TotalUsed)
	})

	t.Run("POST order below store minimum is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		body := validOrderBody()
		body.Items = []model.CartLine{{ProductID: SeedSodaID, Quantity: 1}}

		w := postOrder(t, server, body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, model.ErrCodeMinimumOrderNotMet, errResp.Error)
	})

	t.Run("Merchant status transition walks the lifecycle", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w := postOrder(t, server, validOrderBody())
		require.Equal(t, http.StatusCreated, w.Code)

		var resp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		orderID := resp.Order.ID.String()

		patchStatus := func(status model.Status) *httptest.ResponseRecorder {
			payload, err := json.Marshal(model.StatusUpdateRequest{Status: status})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPatch,
				"/api/merchant/stores/"+SeedStoreID.String()+"/orders/"+orderID+"/status",
				bytes.NewReader(payload))
			req.Header.Set("X-API-Key", "test-api-key")
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)
			return rec
		}

		assert.Equal(t, http.StatusOK, patchStatus(model.StatusConfirmed).Code)
		assert.Equal(t, http.StatusOK, patchStatus(model.StatusPreparing).Code)

		// Jumping back is rejected and nothing changes.
		conflict := patchStatus(model.StatusConfirmed)
		assert.Equal(t, http.StatusConflict, conflict.Code)

		assert.Equal(t, http.StatusOK, patchStatus(model.StatusOutForDelivery).Code)
		assert.Equal(t, http.StatusOK, patchStatus(model.StatusDelivered).Code)

		// Delivered is terminal.
		assert.Equal(t, http.StatusConflict, patchStatus(model.StatusCanceled).Code)
	})

	t.Run("Merchant routes require the API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/merchant/stores/"+SeedStoreID.String()+"/orders", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /health returns 200 without API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPlanGateAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	createProduct := func(name string) *httptest.ResponseRecorder {
		payload, err := json.Marshal(model.ProductRequest{Name: name, Price: 20.00, Available: true})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost,
			"/api/merchant/stores/"+SeedStoreID.String()+"/products",
			bytes.NewReader(payload))
		req.Header.Set("X-API-Key", "test-api-key")
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Product creation stops at the plan cap", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)

		// The seeded account is on duplo: 50 products per store.
		for i := 0; i < 50; i++ {
			rec := createProduct("Produto")
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := createProduct("Um a mais")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
		assert.Equal(t, model.ErrCodePlanLimitReached, errResp.Error)
	})
}
