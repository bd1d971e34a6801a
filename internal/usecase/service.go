package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Trip    TripService
	Coupon  CouponService
	Payment PaymentService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Trip:    NewTripService(repo, log),
		Coupon:  NewCouponService(repo, log),
		Payment: NewPaymentService(repo, config, log),
		Booking: NewBookingService(repo, config, log),
	}
}
