package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCoupon(
	r chi.Router,
	couponHandler *adaptor.CouponHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// GET /api/coupons - published offers for optimistic display (public)
	r.Get("/api/coupons", couponHandler.ListCoupons)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/coupons/validate - authoritative coupon check
		r.Post("/api/coupons/validate", couponHandler.ValidateCoupon)
	})
}
