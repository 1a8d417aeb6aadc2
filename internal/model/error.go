package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeCartNotFound       = "CART_NOT_FOUND"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeInvalidCoupon      = "INVALID_COUPON"
	ErrCodeCouponExpired      = "COUPON_EXPIRED"
	ErrCodeCouponLimitReached = "COUPON_LIMIT_REACHED"
	ErrCodeMinOrderNotMet     = "MIN_ORDER_NOT_MET"
	ErrCodeItemNotFound       = "ITEM_NOT_FOUND"
	ErrCodeItemUnavailable    = "ITEM_UNAVAILABLE"
	ErrCodeTableNotFound      = "TABLE_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeMessageNotFound    = "MESSAGE_NOT_FOUND"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeInvalidOrderType   = "INVALID_ORDER_TYPE"
	ErrCodeZeroTotal          = "ZERO_TOTAL"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeLoginRequired      = "LOGIN_REQUIRED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrCartNotFound       = NewDomainError(ErrCodeCartNotFound, "Cart session not found")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidCoupon      = NewDomainError(ErrCodeInvalidCoupon, "This coupon code is not valid")
	ErrCouponExpired      = NewDomainError(ErrCodeCouponExpired, "This coupon has expired")
	ErrCouponLimitReached = NewDomainError(ErrCodeCouponLimitReached, "You have already used this coupon the maximum number of times")
	ErrItemNotFound       = NewDomainError(ErrCodeItemNotFound, "Menu item not found")
	ErrItemUnavailable    = NewDomainError(ErrCodeItemUnavailable, "One or more items are currently unavailable")
	ErrTableNotFound      = NewDomainError(ErrCodeTableNotFound, "No active table with that number")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrMessageNotFound    = NewDomainError(ErrCodeMessageNotFound, "Message not found")
	ErrZeroTotal          = NewDomainError(ErrCodeZeroTotal, "Order total must be greater than zero")
	ErrLoginRequired      = NewDomainError(ErrCodeLoginRequired, "Please login to use coupons")
)
