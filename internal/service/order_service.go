package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/cart"
	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/model"
	"cafe-counter/internal/repository"
)

// orderService implements OrderService.
type orderService struct {
	carts      *cart.Store
	orderRepo  repository.OrderRepository
	couponRepo repository.CouponRepository
	tableRepo  repository.TableRepository
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	carts *cart.Store,
	orderRepo repository.OrderRepository,
	couponRepo repository.CouponRepository,
	tableRepo repository.TableRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		carts:      carts,
		orderRepo:  orderRepo,
		couponRepo: couponRepo,
		tableRepo:  tableRepo,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// Checkout snapshots a session cart into a persisted order. The order insert,
// line-item inserts and coupon-usage increment run in one transaction; on any
// failure the cart is left intact so the customer can retry.
func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest, userID *uuid.UUID) (*model.OrderResponse, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "checkout request is required")
	}

	c, err := s.carts.Get(req.CartID)
	if err != nil {
		return nil, err
	}

	snapshot := c.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, model.ErrEmptyCart
	}
	if snapshot.Total <= 0 {
		return nil, model.ErrZeroTotal
	}

	tableID, err := s.validateFulfilment(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	// Revalidate any applied coupon server-side: the cart's copy may have
	// expired or been exhausted since it was applied.
	var coupon *model.Coupon
	if snapshot.CouponCode != nil {
		coupon, err = s.revalidateCoupon(ctx, *snapshot.CouponCode, snapshot.Subtotal, userID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		CustomerID:      userID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		OrderType:       req.OrderType,
		TableID:         tableID,
		IsGuest:         userID == nil,
		Subtotal:        snapshot.Subtotal,
		Discount:        snapshot.Discount,
		CouponCode:      snapshot.CouponCode,
		GrandTotal:      snapshot.Total,
		Notes:           req.Notes,
		PaymentMethod:   model.PaymentMethodCash,
		PaymentStatus:   model.PaymentStatusUnpaid,
		Status:          lifecycle.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]model.OrderItem, len(snapshot.Items))
	for i, it := range snapshot.Items {
		items[i] = model.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			ItemID:   it.ID,
			ItemName: it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if coupon != nil && userID != nil {
		if err = s.couponRepo.IncrementUsage(ctx, tx, coupon.ID, *userID); err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit checkout")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Only a committed order consumes the session cart.
	s.carts.Delete(req.CartID)

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_type", order.OrderType).
		Bool("is_guest", order.IsGuest).
		Int("item_count", len(items)).
		Float64("grand_total", order.GrandTotal).
		Msg("order placed")

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// validateFulfilment checks the contact and location fields demanded by the
// order type and resolves the table for dine-in orders.
func (s *orderService) validateFulfilment(ctx context.Context, req *model.CheckoutRequest, userID *uuid.UUID) (*uuid.UUID, error) {
	switch req.OrderType {
	case model.OrderTypeDineIn:
		if req.TableNumber == nil {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "Please enter a table number for dine-in orders")
		}
		table, err := s.tableRepo.GetActiveByNumber(ctx, *req.TableNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve table: %w", err)
		}
		if table == nil {
			return nil, model.ErrTableNotFound
		}
		return &table.ID, nil

	case model.OrderTypePickup, model.OrderTypeDelivery:
		// Guest checkout is allowed for pickup and delivery, but guests must
		// supply a name and phone number.
		if userID == nil {
			if req.CustomerName == nil || *req.CustomerName == "" ||
				req.CustomerPhone == nil || *req.CustomerPhone == "" {
				return nil, model.NewDomainError(model.ErrCodeMissingField, "Name and phone are required")
			}
		}
		if req.OrderType == model.OrderTypeDelivery {
			if req.DeliveryAddress == nil || *req.DeliveryAddress == "" {
				return nil, model.NewDomainError(model.ErrCodeMissingField, "Delivery address is required")
			}
		}
		return nil, nil

	default:
		return nil, model.NewDomainError(model.ErrCodeInvalidOrderType,
			fmt.Sprintf("unknown order type %q", req.OrderType))
	}
}

// revalidateCoupon re-checks an applied coupon at checkout time.
func (s *orderService) revalidateCoupon(ctx context.Context, code string, subtotal float64, userID *uuid.UUID) (*model.Coupon, error) {
	if userID == nil {
		return nil, model.ErrLoginRequired
	}

	coupon, err := s.couponRepo.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil {
		return nil, model.ErrInvalidCoupon
	}
	if coupon.IsExpired(time.Now()) {
		return nil, model.ErrCouponExpired
	}
	if coupon.MinOrder != nil && subtotal < *coupon.MinOrder {
		return nil, model.NewDomainError(model.ErrCodeMinOrderNotMet,
			fmt.Sprintf("Minimum order of %.2f required", *coupon.MinOrder))
	}
	if coupon.UsageLimitPerUser != nil {
		used, err := s.couponRepo.GetUsageCount(ctx, coupon.ID, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check coupon usage: %w", err)
		}
		if used >= *coupon.UsageLimitPerUser {
			return nil, model.ErrCouponLimitReached
		}
	}

	return coupon, nil
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}
	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// GetByStatuses retrieves orders for the boards.
func (s *orderService) GetByStatuses(ctx context.Context, statuses []lifecycle.Status) ([]model.OrderResponse, error) {
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, model.NewDomainError(model.ErrCodeInvalidTransition,
				fmt.Sprintf("unknown order status %q", st))
		}
	}

	orders, err := s.orderRepo.GetByStatuses(ctx, statuses)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get orders by status")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetByCustomer retrieves a customer's own order history.
func (s *orderService) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to get customer orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// AdvanceStatus moves an order to the target status. Two actors racing to the
// same target are harmless: the second request observes the target already
// stored and succeeds without writing.
func (s *orderService) AdvanceStatus(ctx context.Context, id uuid.UUID, target lifecycle.Status, role lifecycle.Role) (*model.Order, error) {
	if !target.IsValid() {
		return nil, model.NewDomainError(model.ErrCodeInvalidTransition,
			fmt.Sprintf("unknown order status %q", target))
	}

	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.Status == target && !order.Status.IsTerminal() {
		s.logger.Debug().
			Str("order_id", id.String()).
			Str("status", string(target)).
			Msg("status already applied, treating as no-op")
		return order, nil
	}

	if err := lifecycle.Transition(order.Status, target, role); err != nil {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(target)).
			Str("role", string(role)).
			Msg("rejected status transition")
		return nil, model.NewDomainError(model.ErrCodeInvalidTransition, err.Error())
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if updated == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(order.Status)).
		Str("to", string(target)).
		Str("role", string(role)).
		Msg("order status updated")

	return updated, nil
}

// SalesReport aggregates revenue figures for the back-office dashboard.
func (s *orderService) SalesReport(ctx context.Context) (*model.SalesReport, error) {
	report, err := s.orderRepo.GetSalesReport(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build sales report")
		return nil, fmt.Errorf("failed to build sales report: %w", err)
	}
	return report, nil
}

// UpdatePayment sets an order's payment status.
func (s *orderService) UpdatePayment(ctx context.Context, id uuid.UUID, paymentStatus string) (*model.Order, error) {
	if paymentStatus != model.PaymentStatusPaid && paymentStatus != model.PaymentStatusUnpaid {
		return nil, model.NewDomainError(model.ErrCodeMissingField,
			fmt.Sprintf("unknown payment status %q", paymentStatus))
	}

	updated, err := s.orderRepo.UpdatePaymentStatus(ctx, id, paymentStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if updated == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("payment_status", paymentStatus).
		Msg("payment status updated")

	return updated, nil
}
