package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/payment/order - issue a one-time gateway order
		r.Post("/api/payment/order", paymentHandler.CreateOrder)

		// POST /api/payment/verify - server-side signature verification
		r.Post("/api/payment/verify", paymentHandler.VerifyPayment)
	})
}
