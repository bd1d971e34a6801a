// Package flow implements the booking session: the draft aggregate, the
// three-step sequencer, pricing, coupon application and the payment
// orchestration against the external gateway. Browser-coupled state
// (history stack, session storage) enters through ports so the whole flow
// runs and tests without a browser.
package flow

import (
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/pricing"
)

type Step int

const (
	StepTravelerInfo Step = 1
	StepReview       Step = 2
	StepPayment      Step = 3
)

// CouponApplication carries the server-issued discount verbatim. It is
// never recomputed locally; removal is the only local coupon operation.
type CouponApplication struct {
	CouponID string `json:"coupon_id"`
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
}

// BookingDraft is the single mutable aggregate for one booking in
// progress, keyed by trip. Price is always the engine's output for the
// current field values.
type BookingDraft struct {
	TripID          string             `json:"trip_id"`
	DepartureDate   string             `json:"departure_date"`
	TravelerCount   int                `json:"traveler_count"`
	Travelers       []entity.Traveler  `json:"travelers"`
	RoomTier        entity.RoomTier    `json:"room_tier"`
	AddOnIDs        []string           `json:"addon_ids"`
	SpecialRequests string             `json:"special_requests"`
	Coupon          *CouponApplication `json:"coupon,omitempty"`
	Price           pricing.Breakdown  `json:"price"`
}

// NewDraft starts an empty draft for a trip: one traveler, shared room.
func NewDraft(tripID string) *BookingDraft {
	return &BookingDraft{
		TripID:        tripID,
		TravelerCount: 1,
		Travelers:     make([]entity.Traveler, 1),
		RoomTier:      entity.RoomTierShared,
	}
}

// ValidateTravelers checks the traveler-step required fields. Returns a
// field-keyed error map; empty means the step may advance.
func (d *BookingDraft) ValidateTravelers() map[string]string {
	errs := make(map[string]string)

	if len(d.Travelers) != d.TravelerCount {
		errs["travelers"] = fmt.Sprintf("expected %d travelers, got %d", d.TravelerCount, len(d.Travelers))
		return errs
	}

	for i, t := range d.Travelers {
		key := func(field string) string { return fmt.Sprintf("travelers[%d].%s", i, field) }

		if t.Name == "" {
			errs[key("name")] = "Name is required"
		}
		if t.Age < 1 || t.Age > 120 {
			errs[key("age")] = "Age must be between 1 and 120"
		}
		if t.EmergencyContact == "" {
			errs[key("emergency_contact")] = "Emergency contact is required"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Clone deep-copies the draft so a failed merge can be discarded without
// touching the original.
func (d *BookingDraft) Clone() *BookingDraft {
	clone := *d

	clone.Travelers = make([]entity.Traveler, len(d.Travelers))
	copy(clone.Travelers, d.Travelers)

	clone.AddOnIDs = make([]string, len(d.AddOnIDs))
	copy(clone.AddOnIDs, d.AddOnIDs)

	if d.Coupon != nil {
		coupon := *d.Coupon
		clone.Coupon = &coupon
	}

	return &clone
}
