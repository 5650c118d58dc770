package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MerchantOrderHandler handles the merchant-facing order lifecycle:
// listing, status transitions and note appends.
type MerchantOrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewMerchantOrderHandler creates a new merchant order handler.
func NewMerchantOrderHandler(service service.OrderService, logger zerolog.Logger) *MerchantOrderHandler {
	return &MerchantOrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "merchant-order").Logger(),
	}
}

// List handles GET /api/merchant/stores/{storeID}/orders requests. Supports
// ?status=, ?limit= and ?offset= query parameters.
func (h *MerchantOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(r.PathValue("storeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid store ID format", h.logger)
		return
	}

	var status *model.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := model.Status(raw)
		if !s.Valid() {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid status filter", h.logger)
			return
		}
		status = &s
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	orders, err := h.service.ListByStore(r.Context(), storeID, status, limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /api/merchant/stores/{storeID}/orders/{orderID}/status
// requests.
func (h *MerchantOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	storeID, orderID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, storeID, req.Status, req.CancelReason)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// AddNote handles POST /api/merchant/stores/{storeID}/orders/{orderID}/notes
// requests.
func (h *MerchantOrderHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	storeID, orderID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req model.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.AddNote(r.Context(), orderID, storeID, req.Note)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *MerchantOrderHandler) pathIDs(w http.ResponseWriter, r *http.Request) (storeID, orderID uuid.UUID, ok bool) {
	storeID, err := uuid.Parse(r.PathValue("storeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid store ID format", h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	orderID, err = uuid.Parse(r.PathValue("orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	return storeID, orderID, true
}

// queryInt reads an integer query parameter, falling back to a default.
func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}
