package adaptor

import (
	"travel-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Trip    *TripHandler
	Coupon  *CouponHandler
	Payment *PaymentHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Trip:    NewTripHandler(service.Trip, log),
		Coupon:  NewCouponHandler(service.Coupon, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
