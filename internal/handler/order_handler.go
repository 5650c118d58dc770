package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles public (customer-facing) order requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/stores/{storeID}/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(r.PathValue("storeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid store ID format", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), storeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{orderID} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
