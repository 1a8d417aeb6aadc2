package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/model"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
// Every write that changes an order row also raises a NOTIFY on the configured
// channel, inside the same transaction, so subscribers only ever observe
// committed state.
type orderRepository struct {
	pool    *pgxpool.Pool
	channel string // empty disables change notifications
	logger  zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository. channel
// names the Postgres NOTIFY channel for order changes; pass "" to disable.
func NewOrderRepository(pool *pgxpool.Pool, channel string, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:    pool,
		channel: channel,
		logger:  logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `id, customer_id, customer_name, customer_phone, delivery_address,
		order_type, table_id, is_guest, subtotal, discount, coupon_code, grand_total,
		notes, payment_method, payment_status, status, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress,
		&o.OrderType, &o.TableID, &o.IsGuest, &o.Subtotal, &o.Discount, &o.CouponCode, &o.GrandTotal,
		&o.Notes, &o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction and queues
// a change notification for it.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.CustomerID, order.CustomerName, order.CustomerPhone, order.DeliveryAddress,
		order.OrderType, order.TableID, order.IsGuest, order.Subtotal, order.Discount, order.CouponCode, order.GrandTotal,
		order.Notes, order.PaymentMethod, order.PaymentStatus, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := r.notify(ctx, tx, order.ID); err != nil {
		return err
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_type", order.OrderType).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, item_id, item_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ItemID, item.ItemName, item.Quantity, item.Price)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("item_id", items[i].ItemID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	orderQuery := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, orderQuery, id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.itemsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, nil, err
	}

	return &order, items[id], nil
}

// GetByStatuses retrieves orders in any of the given statuses, oldest first.
func (r *orderRepository) GetByStatuses(ctx context.Context, statuses []lifecycle.Status) ([]model.OrderResponse, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ANY($1)
		ORDER BY created_at
	`

	return r.queryOrders(ctx, query, values)
}

// GetByCustomer retrieves a customer's own orders, newest first.
func (r *orderRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	return r.queryOrders(ctx, query, customerID)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, arg any) ([]model.OrderResponse, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	itemsByOrder, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = model.OrderResponse{Order: o, Items: itemsByOrder[o.ID]}
	}
	return out, nil
}

// itemsFor fetches line items for a set of orders in one query.
func (r *orderRepository) itemsFor(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	query := `
		SELECT id, order_id, item_id, item_name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemID, &item.ItemName, &item.Quantity, &item.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// UpdateStatus sets an order's status and returns the stored row.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status lifecycle.Status) (*model.Order, error) {
	return r.updateOrder(ctx, id, `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns, string(status))
}

// UpdatePaymentStatus sets an order's payment status.
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentStatus string) (*model.Order, error) {
	return r.updateOrder(ctx, id, `
		UPDATE orders
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns, paymentStatus)
}

func (r *orderRepository) updateOrder(ctx context.Context, id uuid.UUID, query, value string) (*model.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var order model.Order
	err = scanOrder(tx.QueryRow(ctx, query, id, value), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found for update")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := r.notify(ctx, tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit order update")
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	return &order, nil
}

// GetSalesReport aggregates revenue across every order and fetches the ten
// most recent ones. Cancelled orders count too; the report mirrors what was
// rung up, not what was fulfilled.
func (r *orderRepository) GetSalesReport(ctx context.Context) (*model.SalesReport, error) {
	report := &model.SalesReport{}

	statsQuery := `
		SELECT COALESCE(SUM(grand_total), 0), COUNT(*)
		FROM orders
	`
	if err := r.pool.QueryRow(ctx, statsQuery).Scan(&report.TotalRevenue, &report.TotalOrders); err != nil {
		r.logger.Error().Err(err).Msg("failed to query sales totals")
		return nil, fmt.Errorf("failed to query sales totals: %w", err)
	}
	if report.TotalOrders > 0 {
		report.AvgOrderValue = report.TotalRevenue / float64(report.TotalOrders)
	}

	recentQuery := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT 10
	`
	rows, err := r.pool.Query(ctx, recentQuery)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recent orders")
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		report.RecentOrders = append(report.RecentOrders, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return report, nil
}

// notify queues an order-change notification on the configured channel. The
// payload is the order ID; subscribers re-fetch rather than diff it.
func (r *orderRepository) notify(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if r.channel == "" {
		return nil
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, r.channel, id.String()); err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to queue order notification")
		return fmt.Errorf("failed to queue order notification: %w", err)
	}
	return nil
}
