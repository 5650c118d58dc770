package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CouponHandler handles merchant coupon management requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// List handles GET /api/merchant/stores/{storeID}/coupons requests.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(r.PathValue("storeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid store ID format", h.logger)
		return
	}

	onlyActive := r.URL.Query().Get("active") == "true"

	coupons, err := h.service.ListByStore(r.Context(), storeID, onlyActive)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupons)
}

// Create handles POST /api/merchant/stores/{storeID}/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(r.PathValue("storeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid store ID format", h.logger)
		return
	}

	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	c, err := h.service.Create(r.Context(), storeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/merchant/stores/{storeID}/coupons/{couponID}
// requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	storeID, couponID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	c, err := h.service.Update(r.Context(), couponID, storeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Deactivate handles DELETE /api/merchant/stores/{storeID}/coupons/{couponID}
// requests.
func (h *CouponHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	storeID, couponID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), couponID, storeID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CouponHandler) pathIDs(w http.ResponseWriter, r *http.Request) (storeID, couponID uuid.UUID, ok bool) {
	storeID, err := uuid.Parse(r.PathValue("storeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid store ID format", h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	couponID, err = uuid.Parse(r.PathValue("couponID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid coupon ID format", h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	return storeID, couponID, true
}
