package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type RoomTier string

const (
	RoomTierShared RoomTier = "shared"
	RoomTierSingle RoomTier = "single"
)

type GenderType string

const (
	GenderMale   GenderType = "male"
	GenderFemale GenderType = "female"
	GenderOther  GenderType = "other"
)

// Traveler rows are stored as a JSONB array on the booking.
type Traveler struct {
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	Gender           GenderType `json:"gender"`
	EmergencyContact string     `json:"emergency_contact"`
}

// Booking is the durable record written exactly once per verified payment.
type Booking struct {
	Base
	Reference       string        `db:"reference"`
	UserID          uuid.UUID     `db:"user_id"`
	TripID          uuid.UUID     `db:"trip_id"`
	DepartureDate   time.Time     `db:"departure_date"`
	TravelerCount   int           `db:"traveler_count"`
	Travelers       []Traveler    `db:"travelers"` // JSONB
	RoomTier        RoomTier      `db:"room_tier"`
	AddOnIDs        []uuid.UUID   `db:"addon_ids"`
	SpecialRequests string        `db:"special_requests"`
	CouponCode      *string       `db:"coupon_code"`
	Subtotal        int64         `db:"subtotal"`
	Discount        int64         `db:"discount"`
	Taxes           int64         `db:"taxes"`
	GrandTotal      int64         `db:"grand_total"`
	OrderID         string        `db:"order_id"`
	PaymentID       string        `db:"payment_id"`
	Status          BookingStatus `db:"status"`
}
