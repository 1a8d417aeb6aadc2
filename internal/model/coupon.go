package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Discount types supported by coupons.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Coupon represents a named discount rule, optionally gated by minimum order
// value, expiry and a per-user usage limit.
type Coupon struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Code              string     `json:"code" db:"code"`
	Description       *string    `json:"description,omitempty" db:"description"`
	DiscountType      string     `json:"discountType" db:"discount_type"`
	DiscountValue     float64    `json:"discountValue" db:"discount_value"`
	MinOrder          *float64   `json:"minOrder,omitempty" db:"min_order"`
	IsActive          bool       `json:"isActive" db:"is_active"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	UsageLimitPerUser *int       `json:"usageLimitPerUser,omitempty" db:"usage_limit_per_user"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
}

// IsExpired reports whether the coupon has passed its expiry at the given time.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// CanonicalCouponCode normalises a coupon code for lookup and storage.
// Codes are matched case-insensitively and stored upper-cased.
func CanonicalCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CouponRequest represents the payload for creating or updating a coupon.
type CouponRequest struct {
	Code              string     `json:"code"`
	Description       *string    `json:"description,omitempty"`
	DiscountType      string     `json:"discountType"`
	DiscountValue     float64    `json:"discountValue"`
	MinOrder          *float64   `json:"minOrder,omitempty"`
	IsActive          bool       `json:"isActive"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	UsageLimitPerUser *int       `json:"usageLimitPerUser,omitempty"`
}

// Validate checks the request fields.
func (r *CouponRequest) Validate() error {
	if CanonicalCouponCode(r.Code) == "" {
		return NewDomainError(ErrCodeMissingField, "coupon code is required")
	}
	if r.DiscountType != DiscountTypePercentage && r.DiscountType != DiscountTypeFixed {
		return NewDomainError(ErrCodeInvalidCoupon, "discount type must be percentage or fixed")
	}
	if r.DiscountValue <= 0 {
		return NewDomainError(ErrCodeInvalidCoupon, "discount value must be positive")
	}
	if r.DiscountType == DiscountTypePercentage && r.DiscountValue > 100 {
		return NewDomainError(ErrCodeInvalidCoupon, "percentage discount cannot exceed 100")
	}
	if r.MinOrder != nil && *r.MinOrder < 0 {
		return NewDomainError(ErrCodeInvalidCoupon, "minimum order cannot be negative")
	}
	if r.UsageLimitPerUser != nil && *r.UsageLimitPerUser <= 0 {
		return NewDomainError(ErrCodeInvalidCoupon, "usage limit must be positive")
	}
	return nil
}
