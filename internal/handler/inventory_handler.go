package handler

import (
	"net/http"
	"time"

	"shop-kart/internal/model"
	"shop-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InventoryHandler handles inventory ledger HTTP requests.
type InventoryHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "inventory").Logger(),
	}
}

// List handles GET /api/inventory requests. Supported query parameters:
// productId, type, from, to (RFC 3339 timestamps).
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.MovementFilter

	if v := r.URL.Query().Get("productId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "invalid product ID format", h.logger)
			return
		}
		filter.ProductID = &id
	}

	if v := r.URL.Query().Get("type"); v != "" {
		movementType := model.MovementType(v)
		if !movementType.Valid() {
			writeError(w, http.StatusBadRequest, "INVALID_MOVEMENT_TYPE", "invalid movement type", h.logger)
			return
		}
		filter.Type = &movementType
	}

	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_DATE", "invalid 'from' timestamp", h.logger)
			return
		}
		filter.From = &from
	}

	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_DATE", "invalid 'to' timestamp", h.logger)
			return
		}
		filter.To = &to
	}

	movements, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, movements)
}
