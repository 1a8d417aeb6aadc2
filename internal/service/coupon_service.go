package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
	"cafe-counter/internal/repository"
)

// couponService implements CouponService for the back office.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// GetAll retrieves every coupon, newest first.
func (s *couponService) GetAll(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get coupons")
		return nil, fmt.Errorf("failed to get coupons: %w", err)
	}
	return coupons, nil
}

// Create adds a new coupon with a canonical upper-case code.
func (s *couponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		ID:                uuid.New(),
		Code:              model.CanonicalCouponCode(req.Code),
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinOrder:          req.MinOrder,
		IsActive:          req.IsActive,
		ExpiresAt:         req.ExpiresAt,
		UsageLimitPerUser: req.UsageLimitPerUser,
		CreatedAt:         time.Now(),
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		s.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to create coupon")
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info().Str("code", coupon.Code).Msg("coupon created")
	return coupon, nil
}

// Update replaces the mutable fields of a coupon.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		ID:                id,
		Code:              model.CanonicalCouponCode(req.Code),
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinOrder:          req.MinOrder,
		IsActive:          req.IsActive,
		ExpiresAt:         req.ExpiresAt,
		UsageLimitPerUser: req.UsageLimitPerUser,
	}

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to update coupon")
		return nil, err
	}

	return coupon, nil
}

// Delete removes a coupon and its usage records.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return err
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")
	return nil
}
