package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error to an HTTP response. Domain errors
// surface with their code and message; anything else becomes a 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	writeError(w, statusForCode(de.Code), de.Code, de.Message, logger)
}

// statusForCode maps domain error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound,
		model.ErrCodeCategoryNotFound,
		model.ErrCodeCouponNotFound,
		model.ErrCodeStoreNotFound,
		model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodePlanLimitReached,
		model.ErrCodePlanFeatureUnavailable:
		return http.StatusForbidden
	case model.ErrCodeCouponCodeExists,
		model.ErrCodeInvalidTransition:
		return http.StatusConflict
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		// Remaining codes are validation failures on the caller's input.
		return http.StatusUnprocessableEntity
	}
}
