package repository

import (
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Trip         TripRepository
	AddOn        AddOnRepository
	Coupon       CouponRepository
	PaymentOrder PaymentOrderRepository
	Booking      BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Trip:         NewTripRepository(db, log),
		AddOn:        NewAddOnRepository(db, log),
		Coupon:       NewCouponRepository(db, log),
		PaymentOrder: NewPaymentOrderRepository(db, log),
		Booking:      NewBookingRepository(db, log),
	}
}
