package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/booking - create booking from a verified payment
		r.Post("/api/booking", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - confirmation view lookup
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// GET /api/user/bookings - booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})
}
