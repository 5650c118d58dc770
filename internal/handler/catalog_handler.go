package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CatalogHandler handles merchant catalogue mutations: products, categories,
// promotions and their plan-gated image uploads.
type CatalogHandler struct {
	catalog    service.CatalogService
	promotions service.PromotionService
	logger     zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog service.CatalogService, promotions service.PromotionService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:    catalog,
		promotions: promotions,
		logger:     logger.With().Str("handler", "catalog").Logger(),
	}
}

// imageRequest carries an already-uploaded image URL. The upload pipeline
// itself lives outside this service.
type imageRequest struct {
	URL string `json:"url"`
}

// CreateProduct handles POST /api/merchant/stores/{storeID}/products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), storeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// CreateCategory handles POST /api/merchant/stores/{storeID}/categories.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}

	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	c, err := h.catalog.CreateCategory(r.Context(), storeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// CreatePromotion handles POST /api/merchant/stores/{storeID}/promotions.
func (h *CatalogHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}

	var req model.PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	p, err := h.promotions.Create(r.Context(), storeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// SetProductImage handles PUT /api/merchant/stores/{storeID}/products/{productID}/image.
func (h *CatalogHandler) SetProductImage(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}
	productID, err := uuid.Parse(r.PathValue("productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid product ID format", h.logger)
		return
	}

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.catalog.SetProductImage(r.Context(), storeID, productID, req.URL); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetCategoryImage handles PUT /api/merchant/stores/{storeID}/categories/{categoryID}/image.
func (h *CatalogHandler) SetCategoryImage(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}
	categoryID, err := uuid.Parse(r.PathValue("categoryID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid category ID format", h.logger)
		return
	}

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.catalog.SetCategoryImage(r.Context(), storeID, categoryID, req.URL); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) storeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	storeID, err := uuid.Parse(r.PathValue("storeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid store ID format", h.logger)
		return uuid.Nil, false
	}
	return storeID, true
}
