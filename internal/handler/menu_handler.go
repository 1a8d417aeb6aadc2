package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
	"cafe-counter/internal/service"
)

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// GetMenu handles GET /api/menu requests. Only available items are returned
// unless ?all=true is passed (used by the back office).
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	availableOnly := r.URL.Query().Get("all") != "true"

	items, err := h.service.GetMenu(r.Context(), availableOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve menu", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /api/menu/{itemID} requests.
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid menu item ID", h.logger)
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve menu item", h.logger)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeItemNotFound, "menu item not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/admin/menu requests.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/admin/menu/{itemID} requests.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid menu item ID", h.logger)
		return
	}

	var req model.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), itemID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// List handles GET /api/admin/menu requests. Unlike the public listing it
// always includes unavailable items.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetMenu(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve menu", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Delete handles DELETE /api/admin/menu/{itemID} requests.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid menu item ID", h.logger)
		return
	}

	if err := h.service.DeleteItem(r.Context(), itemID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
