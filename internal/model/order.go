package model

import (
	"time"

	"github.com/google/uuid"

	"cafe-counter/internal/lifecycle"
)

// Order types supported at checkout.
const (
	OrderTypeDineIn   = "dine_in"
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// Payment constants. Cash at the counter is the single supported method.
const (
	PaymentMethodCash   = "cash"
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Order is the snapshot taken at checkout time. It is mutated only by status
// transitions and payment-status updates, never deleted by normal flow.
type Order struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	CustomerID      *uuid.UUID       `json:"customerId,omitempty" db:"customer_id"`
	CustomerName    *string          `json:"customerName,omitempty" db:"customer_name"`
	CustomerPhone   *string          `json:"customerPhone,omitempty" db:"customer_phone"`
	DeliveryAddress *string          `json:"deliveryAddress,omitempty" db:"delivery_address"`
	OrderType       string           `json:"orderType" db:"order_type"`
	TableID         *uuid.UUID       `json:"tableId,omitempty" db:"table_id"`
	IsGuest         bool             `json:"isGuest" db:"is_guest"`
	Subtotal        float64          `json:"subtotal" db:"subtotal"`
	Discount        float64          `json:"discount" db:"discount"`
	CouponCode      *string          `json:"couponCode,omitempty" db:"coupon_code"`
	GrandTotal      float64          `json:"grandTotal" db:"grand_total"`
	Notes           *string          `json:"notes,omitempty" db:"notes"`
	PaymentMethod   string           `json:"paymentMethod" db:"payment_method"`
	PaymentStatus   string           `json:"paymentStatus" db:"payment_status"`
	Status          lifecycle.Status `json:"status" db:"status"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item with name and unit price frozen at add-time.
type OrderItem struct {
	ID       uuid.UUID `json:"-" db:"id"`
	OrderID  uuid.UUID `json:"-" db:"order_id"`
	ItemID   uuid.UUID `json:"itemId" db:"item_id"`
	ItemName string    `json:"itemName" db:"item_name"`
	Quantity int       `json:"quantity" db:"quantity"`
	Price    float64   `json:"price" db:"price"`
}

// CheckoutRequest represents the payload for placing an order from a session cart.
type CheckoutRequest struct {
	CartID        uuid.UUID `json:"cartId"`
	OrderType     string    `json:"orderType"`
	TableNumber   *int      `json:"tableNumber,omitempty"`
	CustomerName  *string   `json:"customerName,omitempty"`
	CustomerPhone *string   `json:"customerPhone,omitempty"`
	// Required for delivery orders.
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// OrderResponse represents an order together with its line items.
type OrderResponse struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// SalesReport aggregates revenue figures across every order, with the most
// recent orders attached for the back-office dashboard.
type SalesReport struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalOrders   int     `json:"totalOrders"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	RecentOrders  []Order `json:"recentOrders"`
}

// StatusUpdateRequest represents a requested lifecycle transition.
type StatusUpdateRequest struct {
	Status lifecycle.Status `json:"status"`
}

// PaymentUpdateRequest represents a payment-status change.
type PaymentUpdateRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}
