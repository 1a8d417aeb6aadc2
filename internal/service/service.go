package service

import (
	"context"

	"github.com/google/uuid"

	"cafe-counter/internal/cart"
	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/model"
)

// MenuService defines operations for menu management.
type MenuService interface {
	// GetMenu retrieves menu items; availableOnly filters to orderable ones.
	GetMenu(ctx context.Context, availableOnly bool) ([]model.MenuItem, error)

	// GetItem retrieves a single menu item. Returns nil when absent.
	GetItem(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// CreateItem adds a new menu item.
	CreateItem(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error)

	// UpdateItem replaces the mutable fields of a menu item.
	UpdateItem(ctx context.Context, id uuid.UUID, req *model.MenuItemRequest) (*model.MenuItem, error)

	// DeleteItem removes a menu item. Past orders keep their frozen line items.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// CartService defines operations on session carts, including coupon
// application against the coupon store.
type CartService interface {
	// CreateCart opens a new shopping session and returns its token.
	CreateCart() uuid.UUID

	// GetCart returns a snapshot of the session cart.
	GetCart(cartID uuid.UUID) (*cart.View, error)

	// AddItem adds one unit of a menu item to the cart, freezing its name and
	// price at add-time.
	AddItem(ctx context.Context, cartID, itemID uuid.UUID) (*cart.View, error)

	// UpdateQuantity sets the quantity for a cart line; qty <= 0 removes it.
	UpdateQuantity(cartID, itemID uuid.UUID, qty int) (*cart.View, error)

	// RemoveItem removes a cart line.
	RemoveItem(cartID, itemID uuid.UUID) (*cart.View, error)

	// ClearCart empties the cart and drops any coupon.
	ClearCart(cartID uuid.UUID) error

	// ApplyCoupon validates a coupon against the store (active, unexpired,
	// per-user usage) and applies it to the cart. Coupons require a logged-in
	// customer.
	ApplyCoupon(ctx context.Context, cartID uuid.UUID, code string, userID *uuid.UUID) (*cart.View, error)

	// RemoveCoupon drops the applied coupon.
	RemoveCoupon(cartID uuid.UUID) (*cart.View, error)
}

// OrderService defines checkout and order lifecycle operations.
type OrderService interface {
	// Checkout snapshots a session cart into a persisted order with its line
	// items, atomically with any coupon-usage increment. The session cart is
	// destroyed only when the order is committed.
	Checkout(ctx context.Context, req *model.CheckoutRequest, userID *uuid.UUID) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// GetByStatuses retrieves orders for the kitchen/staff/admin boards.
	GetByStatuses(ctx context.Context, statuses []lifecycle.Status) ([]model.OrderResponse, error)

	// GetByCustomer retrieves a customer's own order history.
	GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error)

	// AdvanceStatus moves an order to the target status when the lifecycle
	// table permits the transition for the given role. Requesting the current
	// non-terminal status again is an idempotent no-op.
	AdvanceStatus(ctx context.Context, id uuid.UUID, target lifecycle.Status, role lifecycle.Role) (*model.Order, error)

	// UpdatePayment sets an order's payment status.
	UpdatePayment(ctx context.Context, id uuid.UUID, paymentStatus string) (*model.Order, error)

	// SalesReport aggregates revenue figures for the back-office dashboard.
	SalesReport(ctx context.Context) (*model.SalesReport, error)
}

// CouponService defines back-office coupon management.
type CouponService interface {
	// GetAll retrieves every coupon, newest first.
	GetAll(ctx context.Context) ([]model.Coupon, error)

	// Create adds a new coupon with a canonical upper-case code.
	Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error)

	// Update replaces the mutable fields of a coupon.
	Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)

	// Delete removes a coupon and its usage records.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TableService defines back-office café table management.
type TableService interface {
	// GetAll retrieves every table ordered by number.
	GetAll(ctx context.Context) ([]model.CafeTable, error)

	// Create adds a new table.
	Create(ctx context.Context, req *model.CafeTableRequest) (*model.CafeTable, error)

	// Update replaces the mutable fields of a table.
	Update(ctx context.Context, id uuid.UUID, req *model.CafeTableRequest) (*model.CafeTable, error)

	// Delete removes a table; orders that referenced it survive.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactService defines the public contact form and its back-office inbox.
type ContactService interface {
	// Submit stores a message from the public contact form.
	Submit(ctx context.Context, req *model.ContactMessageRequest) (*model.ContactMessage, error)

	// GetAll retrieves every message, newest first.
	GetAll(ctx context.Context) ([]model.ContactMessage, error)

	// SetRead sets a message's read flag.
	SetRead(ctx context.Context, id uuid.UUID, isRead bool) error

	// Delete removes a message from the inbox.
	Delete(ctx context.Context, id uuid.UUID) error
}
