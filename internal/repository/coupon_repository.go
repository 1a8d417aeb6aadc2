package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = "id, code, description, discount_type, discount_value, min_order, is_active, expires_at, usage_limit_per_user, created_at"

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	return row.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
		&c.MinOrder, &c.IsActive, &c.ExpiresAt, &c.UsageLimitPerUser, &c.CreatedAt)
}

// GetActiveByCode retrieves an active coupon by its canonical code.
func (r *couponRepository) GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE code = $1 AND is_active = TRUE
	`

	var c model.Coupon
	err := scanCoupon(r.pool.QueryRow(ctx, query, model.CanonicalCouponCode(code)), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("active coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// GetAll retrieves every coupon, newest first.
func (r *couponRepository) GetAll(ctx context.Context) ([]model.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, description, discount_type, discount_value, min_order, is_active, expires_at, usage_limit_per_user, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		coupon.ID, coupon.Code, coupon.Description, coupon.DiscountType, coupon.DiscountValue,
		coupon.MinOrder, coupon.IsActive, coupon.ExpiresAt, coupon.UsageLimitPerUser, coupon.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Debug().Str("code", coupon.Code).Msg("coupon created")
	return nil
}

// Update replaces the mutable fields of a coupon.
func (r *couponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, description = $3, discount_type = $4, discount_value = $5,
		    min_order = $6, is_active = $7, expires_at = $8, usage_limit_per_user = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		coupon.ID, coupon.Code, coupon.Description, coupon.DiscountType, coupon.DiscountValue,
		coupon.MinOrder, coupon.IsActive, coupon.ExpiresAt, coupon.UsageLimitPerUser)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", coupon.ID.String()).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvalidCoupon
	}

	return nil
}

// Delete removes a coupon. Usage records go with it via the cascade.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvalidCoupon
	}

	r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon deleted")
	return nil
}

// GetUsageCount retrieves how many times a user has redeemed a coupon.
func (r *couponRepository) GetUsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	query := `
		SELECT used_count
		FROM coupon_usages
		WHERE coupon_id = $1 AND user_id = $2
	`

	var count int
	err := r.pool.QueryRow(ctx, query, couponID, userID).Scan(&count)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		r.logger.Error().Err(err).
			Str("coupon_id", couponID.String()).
			Str("user_id", userID.String()).
			Msg("failed to query coupon usage")
		return 0, fmt.Errorf("failed to query coupon usage: %w", err)
	}

	return count, nil
}

// IncrementUsage records one more redemption for a user. The upsert runs in
// the caller's transaction so checkout stays atomic.
func (r *couponRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, couponID, userID uuid.UUID) error {
	query := `
		INSERT INTO coupon_usages (coupon_id, user_id, used_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (coupon_id, user_id)
		DO UPDATE SET used_count = coupon_usages.used_count + 1
	`

	_, err := tx.Exec(ctx, query, couponID, userID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("coupon_id", couponID.String()).
			Str("user_id", userID.String()).
			Msg("failed to increment coupon usage")
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	return nil
}
