package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/middleware"
	"cafe-counter/internal/model"
	"cafe-counter/internal/service"
)

// CartHandler handles session cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

type cartCreatedResponse struct {
	CartID uuid.UUID `json:"cartId"`
}

type addItemRequest struct {
	ItemID uuid.UUID `json:"itemId"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

// Create handles POST /api/cart requests and opens a new session.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	cartID := h.service.CreateCart()
	writeJSON(w, http.StatusCreated, cartCreatedResponse{CartID: cartID})
}

// Get handles GET /api/cart/{cartID} requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetCart(cartID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/cart/{cartID}/items requests. Adding an item that
// is already in the cart increments its quantity.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == uuid.Nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	view, err := h.service.AddItem(r.Context(), cartID, req.ItemID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// UpdateQuantity handles PATCH /api/cart/{cartID}/items/{itemID} requests.
// A quantity of zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid item ID", h.logger)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	view, err := h.service.UpdateQuantity(cartID, itemID, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/{cartID}/items/{itemID} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid item ID", h.logger)
		return
	}

	view, err := h.service.RemoveItem(cartID, itemID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Clear handles DELETE /api/cart/{cartID} requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(cartID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyCoupon handles POST /api/cart/{cartID}/coupon requests. Coupons are
// only available to logged-in customers.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	var userID *uuid.UUID
	if principal, ok := middleware.PrincipalFrom(r.Context()); ok {
		userID = &principal.UserID
	}

	view, err := h.service.ApplyCoupon(r.Context(), cartID, req.Code, userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveCoupon handles DELETE /api/cart/{cartID}/coupon requests.
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	view, err := h.service.RemoveCoupon(cartID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	cartID, err := uuid.Parse(chi.URLParam(r, "cartID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid cart ID", h.logger)
		return uuid.Nil, false
	}
	return cartID, true
}
