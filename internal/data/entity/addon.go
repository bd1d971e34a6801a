package entity

import (
	"github.com/google/uuid"
)

// AddOn is an optional extra attached to a trip. PerPerson add-ons are
// charged once per traveler, the rest once per booking.
type AddOn struct {
	BaseSimple
	TripID    uuid.UUID `db:"trip_id"`
	Name      string    `db:"name"`
	Price     int64     `db:"price"`
	PerPerson bool      `db:"per_person"`
	IsActive  bool      `db:"is_active"`
}
