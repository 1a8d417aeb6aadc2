package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cafe-counter/internal/model"
)

func newMenuRouter(h *MenuHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/menu", h.GetMenu)
	r.Get("/api/menu/{itemID}", h.GetItem)
	r.Get("/api/admin/menu", h.List)
	r.Post("/api/admin/menu", h.Create)
	r.Put("/api/admin/menu/{itemID}", h.Update)
	r.Delete("/api/admin/menu/{itemID}", h.Delete)
	return r
}

func TestMenuHandler_GetMenu(t *testing.T) {
	items := []model.MenuItem{
		{ID: uuid.New(), Name: "Espresso", Price: 2.80, Category: "coffee", IsAvailable: true, CreatedAt: time.Now()},
	}

	t.Run("defaults to available items", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		mockService.On("GetMenu", mock.Anything, true).Return(items, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("all=true includes unavailable items", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		mockService.On("GetMenu", mock.Anything, false).Return(items, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/menu?all=true", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestMenuHandler_List_IncludesUnavailable(t *testing.T) {
	mockService := new(MockMenuService)
	handler := NewMenuHandler(mockService, zerolog.Nop())
	router := newMenuRouter(handler)

	items := []model.MenuItem{
		{ID: uuid.New(), Name: "Espresso", Price: 2.80, Category: "coffee", IsAvailable: true},
		{ID: uuid.New(), Name: "Seasonal Special", Price: 5.00, Category: "special", IsAvailable: false},
	}
	mockService.On("GetMenu", mock.Anything, false).Return(items, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/menu", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestMenuHandler_GetItem(t *testing.T) {
	itemID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		item := &model.MenuItem{ID: itemID, Name: "Espresso", Price: 2.80, Category: "coffee", IsAvailable: true}
		mockService.On("GetItem", mock.Anything, itemID).Return(item, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/menu/"+itemID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		mockService.On("GetItem", mock.Anything, itemID).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/menu/"+itemID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid ID", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/menu/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
	})
}

func TestMenuHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		created := &model.MenuItem{ID: uuid.New(), Name: "Cortado", Price: 3.20, Category: "coffee", IsAvailable: true}
		mockService.On("CreateItem", mock.Anything, mock.AnythingOfType("*model.MenuItemRequest")).
			Return(created, nil)

		body := []byte(`{"name":"Cortado","price":3.2,"category":"coffee","isAvailable":true}`)
		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		mockService.On("CreateItem", mock.Anything, mock.AnythingOfType("*model.MenuItemRequest")).
			Return(nil, model.NewDomainError(model.ErrCodeMissingField, "name is required"))

		body := []byte(`{"price":3.2,"category":"coffee"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewBufferString("nope"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	})
}

func TestMenuHandler_Delete(t *testing.T) {
	itemID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		mockService.On("DeleteItem", mock.Anything, itemID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/menu/"+itemID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		mockService.On("DeleteItem", mock.Anything, itemID).Return(model.ErrItemNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/menu/"+itemID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid ID", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, zerolog.Nop())
		router := newMenuRouter(handler)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/menu/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})
}
