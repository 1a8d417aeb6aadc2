package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cafe-counter/internal/cart"
	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/model"
)

// MockMenuService is a mock implementation of service.MenuService.
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) GetMenu(ctx context.Context, availableOnly bool) ([]model.MenuItem, error) {
	args := m.Called(ctx, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuService) GetItem(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuService) CreateItem(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuService) UpdateItem(ctx context.Context, id uuid.UUID, req *model.MenuItemRequest) (*model.MenuItem, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) CreateCart() uuid.UUID {
	args := m.Called()
	return args.Get(0).(uuid.UUID)
}

func (m *MockCartService) GetCart(cartID uuid.UUID) (*cart.View, error) {
	args := m.Called(cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID, itemID uuid.UUID) (*cart.View, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(cartID, itemID uuid.UUID, qty int) (*cart.View, error) {
	args := m.Called(cartID, itemID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCartService) RemoveItem(cartID, itemID uuid.UUID) (*cart.View, error) {
	args := m.Called(cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCartService) ClearCart(cartID uuid.UUID) error {
	args := m.Called(cartID)
	return args.Error(0)
}

func (m *MockCartService) ApplyCoupon(ctx context.Context, cartID uuid.UUID, code string, userID *uuid.UUID) (*cart.View, error) {
	args := m.Called(ctx, cartID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCartService) RemoveCoupon(cartID uuid.UUID) (*cart.View, error) {
	args := m.Called(cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, req *model.CheckoutRequest, userID *uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByStatuses(ctx context.Context, statuses []lifecycle.Status) ([]model.OrderResponse, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) AdvanceStatus(ctx context.Context, id uuid.UUID, target lifecycle.Status, role lifecycle.Role) (*model.Order, error) {
	args := m.Called(ctx, id, target, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) UpdatePayment(ctx context.Context, id uuid.UUID, paymentStatus string) (*model.Order, error) {
	args := m.Called(ctx, id, paymentStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) SalesReport(ctx context.Context) (*model.SalesReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesReport), args.Error(1)
}

// MockContactService is a mock implementation of service.ContactService.
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, req *model.ContactMessageRequest) (*model.ContactMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactMessage), args.Error(1)
}

func (m *MockContactService) GetAll(ctx context.Context) ([]model.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactMessage), args.Error(1)
}

func (m *MockContactService) SetRead(ctx context.Context, id uuid.UUID, isRead bool) error {
	args := m.Called(ctx, id, isRead)
	return args.Error(0)
}

func (m *MockContactService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCouponService is a mock implementation of service.CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) GetAll(ctx context.Context) ([]model.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTableService is a mock implementation of service.TableService.
type MockTableService struct {
	mock.Mock
}

func (m *MockTableService) GetAll(ctx context.Context) ([]model.CafeTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CafeTable), args.Error(1)
}

func (m *MockTableService) Create(ctx context.Context, req *model.CafeTableRequest) (*model.CafeTable, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CafeTable), args.Error(1)
}

func (m *MockTableService) Update(ctx context.Context, id uuid.UUID, req *model.CafeTableRequest) (*model.CafeTable, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CafeTable), args.Error(1)
}

func (m *MockTableService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
