package repository

import (
	"context"
	"fmt"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	FindAllPublished(ctx context.Context) ([]*entity.Coupon, error)
}

type couponRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCouponRepository(db database.PgxIface, log *zap.Logger) CouponRepository {
	return &couponRepository{
		db:  db,
		log: log.With(zap.String("repository", "coupon")),
	}
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	query := `
		SELECT id, code, description, discount_type, discount_value, max_discount,
		       min_order_value, valid_from, valid_to, is_active, created_at, updated_at
		FROM coupons
		WHERE code = $1
	`

	var coupon entity.Coupon
	err := r.db.QueryRow(ctx, query, strings.ToUpper(code)).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Description,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MaxDiscount,
		&coupon.MinOrderValue,
		&coupon.ValidFrom,
		&coupon.ValidTo,
		&coupon.IsActive,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find coupon by code %s: %w", code, err)
	}

	return &coupon, nil
}

func (r *couponRepository) FindAllPublished(ctx context.Context) ([]*entity.Coupon, error) {
	query := `
		SELECT id, code, description, discount_type, discount_value, max_discount,
		       min_order_value, valid_from, valid_to, is_active, created_at, updated_at
		FROM coupons
		WHERE is_active = true AND valid_to > NOW()
		ORDER BY valid_to
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find published coupons", zap.Error(err))
		return nil, fmt.Errorf("find published coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*entity.Coupon
	for rows.Next() {
		var coupon entity.Coupon
		err := rows.Scan(
			&coupon.ID,
			&coupon.Code,
			&coupon.Description,
			&coupon.DiscountType,
			&coupon.DiscountValue,
			&coupon.MaxDiscount,
			&coupon.MinOrderValue,
			&coupon.ValidFrom,
			&coupon.ValidTo,
			&coupon.IsActive,
			&coupon.CreatedAt,
			&coupon.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan coupon row", zap.Error(err))
			return nil, fmt.Errorf("scan coupon row: %w", err)
		}
		coupons = append(coupons, &coupon)
	}

	return coupons, nil
}
