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

// CouponHandler handles back-office coupon management.
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

// GetAll handles GET /api/admin/coupons requests.
func (h *CouponHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve coupons", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupons)
}

// Create handles POST /api/admin/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, coupon)
}

// Update handles PUT /api/admin/coupons/{couponID} requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	couponID, err := uuid.Parse(chi.URLParam(r, "couponID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid coupon ID", h.logger)
		return
	}

	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	coupon, err := h.service.Update(r.Context(), couponID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon)
}

// Delete handles DELETE /api/admin/coupons/{couponID} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	couponID, err := uuid.Parse(chi.URLParam(r, "couponID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid coupon ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), couponID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TableHandler handles back-office café table management.
type TableHandler struct {
	service service.TableService
	logger  zerolog.Logger
}

// NewTableHandler creates a new table handler.
func NewTableHandler(service service.TableService, logger zerolog.Logger) *TableHandler {
	return &TableHandler{
		service: service,
		logger:  logger.With().Str("handler", "table").Logger(),
	}
}

// GetAll handles GET /api/admin/tables requests.
func (h *TableHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve tables", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tables)
}

// Create handles POST /api/admin/tables requests.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CafeTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	table, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, table)
}

// Update handles PUT /api/admin/tables/{tableID} requests.
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "tableID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid table ID", h.logger)
		return
	}

	var req model.CafeTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	table, err := h.service.Update(r.Context(), tableID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, table)
}

// Delete handles DELETE /api/admin/tables/{tableID} requests.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "tableID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid table ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), tableID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
