package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/model"
)

// MenuRepository defines the interface for menu item data access operations.
type MenuRepository interface {
	// GetAll retrieves menu items. When availableOnly is true, unavailable
	// items are filtered out.
	GetAll(ctx context.Context, availableOnly bool) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// GetByIDs retrieves multiple menu items by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error)

	// Create inserts a new menu item.
	Create(ctx context.Context, item *model.MenuItem) error

	// Update replaces the mutable fields of a menu item.
	Update(ctx context.Context, item *model.MenuItem) error

	// Delete removes a menu item. Past order lines keep their frozen name and
	// price, so deleting an item never rewrites history.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetActiveByCode retrieves an active coupon by its canonical upper-case
	// code. Expiry is NOT checked here; callers decide against current time.
	// Returns nil when no active coupon matches.
	GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error)

	// GetAll retrieves every coupon, newest first.
	GetAll(ctx context.Context) ([]model.Coupon, error)

	// Create inserts a new coupon.
	Create(ctx context.Context, coupon *model.Coupon) error

	// Update replaces the mutable fields of a coupon.
	Update(ctx context.Context, coupon *model.Coupon) error

	// Delete removes a coupon along with its usage records.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetUsageCount retrieves how many times a user has redeemed a coupon.
	GetUsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error)

	// IncrementUsage records one more redemption for a user within the
	// provided transaction.
	IncrementUsage(ctx context.Context, tx pgx.Tx, couponID, userID uuid.UUID) error
}

// TableRepository defines the interface for café table data access operations.
type TableRepository interface {
	// GetAll retrieves every table ordered by number.
	GetAll(ctx context.Context) ([]model.CafeTable, error)

	// GetActiveByNumber resolves an active table by its number. Returns nil
	// when no active table matches.
	GetActiveByNumber(ctx context.Context, number int) (*model.CafeTable, error)

	// Create inserts a new table.
	Create(ctx context.Context, table *model.CafeTable) error

	// Update replaces the mutable fields of a table.
	Update(ctx context.Context, table *model.CafeTable) error

	// Delete removes a table. Orders that referenced it keep their snapshot
	// totals; the table reference is nulled out.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository defines the interface for contact message data access
// operations.
type ContactRepository interface {
	// Create inserts a new contact message.
	Create(ctx context.Context, msg *model.ContactMessage) error

	// GetAll retrieves every contact message, newest first.
	GetAll(ctx context.Context) ([]model.ContactMessage, error)

	// SetRead sets a message's read flag.
	SetRead(ctx context.Context, id uuid.UUID, isRead bool) error

	// Delete removes a contact message.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns a nil
	// order when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByStatuses retrieves orders in any of the given statuses, oldest
	// first, each joined with its items.
	GetByStatuses(ctx context.Context, statuses []lifecycle.Status) ([]model.OrderResponse, error)

	// GetByCustomer retrieves a customer's own orders, newest first.
	GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error)

	// UpdateStatus sets an order's status and returns the stored row.
	UpdateStatus(ctx context.Context, id uuid.UUID, status lifecycle.Status) (*model.Order, error)

	// UpdatePaymentStatus sets an order's payment status.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentStatus string) (*model.Order, error)

	// GetSalesReport aggregates revenue, order count and average order value
	// across every order, with the ten most recent orders attached.
	GetSalesReport(ctx context.Context) (*model.SalesReport, error)
}
