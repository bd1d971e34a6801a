package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTrip(r chi.Router, tripHandler *adaptor.TripHandler) {
	// GET /api/trips - list active trips (public)
	r.Get("/api/trips", tripHandler.ListTrips)

	// GET /api/trips/{id} - trip details with add-ons (public)
	r.Get("/api/trips/{id}", tripHandler.GetTrip)
}
