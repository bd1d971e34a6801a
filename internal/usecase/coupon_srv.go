package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type CouponService interface {
	ListPublished(ctx context.Context) ([]*response.CouponOfferResponse, error)
	Validate(ctx context.Context, req *request.ValidateCouponRequest) (*response.CouponApplicationResponse, error)
}

type couponService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCouponService(repo *repository.Repository, log *zap.Logger) CouponService {
	return &couponService{
		repo: repo,
		log:  log.With(zap.String("service", "coupon")),
	}
}

func (s *couponService) ListPublished(ctx context.Context) ([]*response.CouponOfferResponse, error) {
	coupons, err := s.repo.Coupon.FindAllPublished(ctx)
	if err != nil {
		s.log.Error("Failed to list published coupons", zap.Error(err))
		return nil, fmt.Errorf("list published coupons: %w", err)
	}

	offers := make([]*response.CouponOfferResponse, len(coupons))
	for i, coupon := range coupons {
		offer := response.CouponToOfferResponse(coupon)
		offers[i] = &offer
	}

	return offers, nil
}

// Validate is the authoritative gate: minimum purchase, validity window and
// the discount amount are all decided here, never on the client.
func (s *couponService) Validate(ctx context.Context, req *request.ValidateCouponRequest) (*response.CouponApplicationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Coupon validation request invalid", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	coupon, err := s.repo.Coupon.FindByCode(ctx, req.Code)
	if err != nil {
		s.log.Error("Failed to look up coupon", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("look up coupon: %w", err)
	}
	if coupon == nil {
		return nil, fmt.Errorf("coupon %s not found", req.Code)
	}

	if err := checkCouponEligibility(coupon, req.Subtotal, time.Now()); err != nil {
		s.log.Info("Coupon rejected",
			zap.String("code", coupon.Code),
			zap.Int64("subtotal", req.Subtotal),
			zap.String("reason", err.Error()),
		)
		return nil, err
	}

	discount := couponDiscount(coupon, req.Subtotal)

	s.log.Info("Coupon validated",
		zap.String("code", coupon.Code),
		zap.Int64("subtotal", req.Subtotal),
		zap.Int64("discount", discount),
	)

	return &response.CouponApplicationResponse{
		CouponID: coupon.ID.String(),
		Code:     coupon.Code,
		Discount: discount,
	}, nil
}

func checkCouponEligibility(coupon *entity.Coupon, subtotal int64, now time.Time) error {
	if !coupon.IsActive {
		return fmt.Errorf("coupon %s is no longer available", coupon.Code)
	}
	if now.Before(coupon.ValidFrom) {
		return fmt.Errorf("coupon %s is not active yet", coupon.Code)
	}
	if now.After(coupon.ValidTo) {
		return fmt.Errorf("coupon %s has expired", coupon.Code)
	}
	if subtotal < coupon.MinOrderValue {
		return fmt.Errorf("coupon %s requires a minimum order of %d", coupon.Code, coupon.MinOrderValue)
	}
	return nil
}

// couponDiscount computes the discount amount, bounded by the subtotal.
func couponDiscount(coupon *entity.Coupon, subtotal int64) int64 {
	var discount int64

	switch coupon.DiscountType {
	case entity.DiscountTypePercent:
		discount = subtotal * coupon.DiscountValue / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	default:
		discount = coupon.DiscountValue
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	return discount
}
