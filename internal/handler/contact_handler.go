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

// ContactHandler handles the public contact form and its back-office inbox.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("handler", "contact").Logger(),
	}
}

// Submit handles POST /api/contact requests.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	msg, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// GetAll handles GET /api/admin/messages requests.
func (h *ContactHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve messages", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// UpdateRead handles PATCH /api/admin/messages/{messageID}/read requests.
func (h *ContactHandler) UpdateRead(w http.ResponseWriter, r *http.Request) {
	messageID, ok := h.messageID(w, r)
	if !ok {
		return
	}

	var req model.ReadUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.SetRead(r.Context(), messageID, req.IsRead); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/messages/{messageID} requests.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	messageID, ok := h.messageID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), messageID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ContactHandler) messageID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid message ID", h.logger)
		return uuid.Nil, false
	}
	return messageID, true
}
