package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/cart"
	"cafe-counter/internal/model"
	"cafe-counter/internal/repository"
)

// cartService implements CartService on top of the session cart store and the
// coupon repository.
type cartService struct {
	carts      *cart.Store
	menuRepo   repository.MenuRepository
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	carts *cart.Store,
	menuRepo repository.MenuRepository,
	couponRepo repository.CouponRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		carts:      carts,
		menuRepo:   menuRepo,
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "cart").Logger(),
	}
}

// CreateCart opens a new shopping session.
func (s *cartService) CreateCart() uuid.UUID {
	id := s.carts.Create()
	s.logger.Debug().Str("cart_id", id.String()).Msg("cart session created")
	return id
}

// GetCart returns a snapshot of the session cart.
func (s *cartService) GetCart(cartID uuid.UUID) (*cart.View, error) {
	c, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}
	v := c.Snapshot()
	return &v, nil
}

// AddItem adds one unit of a menu item to the cart.
func (s *cartService) AddItem(ctx context.Context, cartID, itemID uuid.UUID) (*cart.View, error) {
	c, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}

	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to look up menu item")
		return nil, fmt.Errorf("failed to look up menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrItemNotFound
	}
	if !item.IsAvailable {
		return nil, model.ErrItemUnavailable
	}

	c.AddItem(item.ID, item.Name, item.Price)
	v := c.Snapshot()
	return &v, nil
}

// UpdateQuantity sets the quantity for a cart line.
func (s *cartService) UpdateQuantity(cartID, itemID uuid.UUID, qty int) (*cart.View, error) {
	c, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(itemID, qty)
	v := c.Snapshot()
	return &v, nil
}

// RemoveItem removes a cart line.
func (s *cartService) RemoveItem(cartID, itemID uuid.UUID) (*cart.View, error) {
	c, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(itemID)
	v := c.Snapshot()
	return &v, nil
}

// ClearCart empties the cart and drops any coupon.
func (s *cartService) ClearCart(cartID uuid.UUID) error {
	c, err := s.carts.Get(cartID)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

// ApplyCoupon validates a coupon against the store and applies it to the cart.
// Coupons require a logged-in customer; guests are told to sign in.
func (s *cartService) ApplyCoupon(ctx context.Context, cartID uuid.UUID, code string, userID *uuid.UUID) (*cart.View, error) {
	c, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}

	if userID == nil {
		return nil, model.ErrLoginRequired
	}

	canonical := model.CanonicalCouponCode(code)
	if canonical == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Enter a coupon code")
	}

	coupon, err := s.couponRepo.GetActiveByCode(ctx, canonical)
	if err != nil {
		s.logger.Error().Err(err).Str("code", canonical).Msg("failed to look up coupon")
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil {
		s.logger.Debug().Str("code", canonical).Msg("coupon not found or inactive")
		return nil, model.ErrInvalidCoupon
	}
	if coupon.IsExpired(time.Now()) {
		return nil, model.ErrCouponExpired
	}

	if coupon.UsageLimitPerUser != nil {
		used, err := s.couponRepo.GetUsageCount(ctx, coupon.ID, *userID)
		if err != nil {
			s.logger.Error().Err(err).Str("code", canonical).Msg("failed to check coupon usage")
			return nil, fmt.Errorf("failed to check coupon usage: %w", err)
		}
		if used >= *coupon.UsageLimitPerUser {
			return nil, model.ErrCouponLimitReached
		}
	}

	// The cart enforces the minimum-order threshold against its own subtotal.
	if err := c.ApplyCoupon(coupon.Code, coupon.DiscountType, coupon.DiscountValue, coupon.MinOrder); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("cart_id", cartID.String()).
		Str("code", coupon.Code).
		Str("discount_type", coupon.DiscountType).
		Msg("coupon applied")

	v := c.Snapshot()
	return &v, nil
}

// RemoveCoupon drops the applied coupon.
func (s *cartService) RemoveCoupon(cartID uuid.UUID) (*cart.View, error) {
	c, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}

	c.RemoveCoupon()
	v := c.Snapshot()
	return &v, nil
}
