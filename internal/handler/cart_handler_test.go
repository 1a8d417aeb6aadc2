package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cafe-counter/internal/cart"
	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/middleware"
	"cafe-counter/internal/model"
)

func newCartRouter(h *CartHandler, principal *middleware.Principal) http.Handler {
	r := chi.NewRouter()
	if principal != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithPrincipal(req.Context(), principal)))
			})
		})
	}
	r.Post("/api/cart", h.Create)
	r.Route("/api/cart/{cartID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{itemID}", h.UpdateQuantity)
		r.Delete("/items/{itemID}", h.RemoveItem)
		r.Post("/coupon", h.ApplyCoupon)
		r.Delete("/coupon", h.RemoveCoupon)
	})
	return r
}

func testCartView() *cart.View {
	return &cart.View{
		Items: []cart.Item{
			{ID: uuid.New(), Name: "Latte", Price: 4.00, Quantity: 2},
		},
		ItemCount: 2,
		Subtotal:  8.00,
		Total:     8.00,
	}
}

func TestCartHandler_Create(t *testing.T) {
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, zerolog.Nop())
	router := newCartRouter(handler, nil)

	cartID := uuid.New()
	mockService.On("CreateCart").Return(cartID)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp cartCreatedResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, cartID, resp.CartID)
}

func TestCartHandler_Get(t *testing.T) {
	cartID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockCartService)
		handler := NewCartHandler(mockService, zerolog.Nop())
		router := newCartRouter(handler, nil)

		mockService.On("GetCart", cartID).Return(testCartView(), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/cart/"+cartID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		mockService := new(MockCartService)
		handler := NewCartHandler(mockService, zerolog.Nop())
		router := newCartRouter(handler, nil)

		mockService.On("GetCart", cartID).Return(nil, model.ErrCartNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/cart/"+cartID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid cart ID", func(t *testing.T) {
		mockService := new(MockCartService)
		handler := NewCartHandler(mockService, zerolog.Nop())
		router := newCartRouter(handler, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/cart/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetCart", mock.Anything)
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	cartID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockErr        error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "success",
			body:           `{"itemId":"` + itemID.String() + `"}`,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "unknown menu item",
			body:           `{"itemId":"` + itemID.String() + `"}`,
			mockErr:        model.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "unavailable item",
			body:           `{"itemId":"` + itemID.String() + `"}`,
			mockErr:        model.ErrItemUnavailable,
			expectedStatus: http.StatusUnprocessableEntity,
			expectService:  true,
		},
		{
			name:           "missing item ID",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "invalid JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			handler := NewCartHandler(mockService, zerolog.Nop())
			router := newCartRouter(handler, nil)

			if tt.expectService {
				var view *cart.View
				if tt.mockErr == nil {
					view = testCartView()
				}
				mockService.On("AddItem", mock.Anything, cartID, itemID).Return(view, tt.mockErr)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/cart/"+cartID.String()+"/items", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	cartID := uuid.New()
	itemID := uuid.New()

	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, zerolog.Nop())
	router := newCartRouter(handler, nil)

	mockService.On("UpdateQuantity", cartID, itemID, 3).Return(testCartView(), nil)

	body := []byte(`{"quantity":3}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/cart/"+cartID.String()+"/items/"+itemID.String(), bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_ApplyCoupon(t *testing.T) {
	cartID := uuid.New()
	userID := uuid.New()

	t.Run("guest gets login required", func(t *testing.T) {
		mockService := new(MockCartService)
		handler := NewCartHandler(mockService, zerolog.Nop())
		router := newCartRouter(handler, nil)

		mockService.On("ApplyCoupon", mock.Anything, cartID, "SAVE20", (*uuid.UUID)(nil)).
			Return(nil, model.ErrLoginRequired)

		body := []byte(`{"code":"SAVE20"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/cart/"+cartID.String()+"/coupon", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logged-in user passes user ID through", func(t *testing.T) {
		mockService := new(MockCartService)
		handler := NewCartHandler(mockService, zerolog.Nop())
		router := newCartRouter(handler, &middleware.Principal{UserID: userID, Role: lifecycle.RoleCustomer})

		discounted := testCartView()
		discounted.Discount = 1.60
		discounted.Total = 6.40
		code := "SAVE20"
		discounted.CouponCode = &code

		mockService.On("ApplyCoupon", mock.Anything, cartID, "SAVE20", &userID).
			Return(discounted, nil)

		body := []byte(`{"code":"SAVE20"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/cart/"+cartID.String()+"/coupon", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("minimum order not met", func(t *testing.T) {
		mockService := new(MockCartService)
		handler := NewCartHandler(mockService, zerolog.Nop())
		router := newCartRouter(handler, &middleware.Principal{UserID: userID, Role: lifecycle.RoleCustomer})

		mockService.On("ApplyCoupon", mock.Anything, cartID, "BIG10", &userID).
			Return(nil, model.NewDomainError(model.ErrCodeMinOrderNotMet, "order minimum not met"))

		body := []byte(`{"code":"BIG10"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/cart/"+cartID.String()+"/coupon", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCartHandler_Clear(t *testing.T) {
	cartID := uuid.New()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, zerolog.Nop())
	router := newCartRouter(handler, nil)

	mockService.On("ClearCart", cartID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/"+cartID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_RemoveCoupon(t *testing.T) {
	cartID := uuid.New()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, zerolog.Nop())
	router := newCartRouter(handler, nil)

	mockService.On("RemoveCoupon", cartID).Return(testCartView(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/"+cartID.String()+"/coupon", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
