// Package pricing turns a booking draft into a price breakdown. It is pure:
// same input, bit-identical output.
package pricing

import (
	"travel-booking/internal/data/entity"
)

// AddOn is one selected add-on with its catalog price.
type AddOn struct {
	ID        string
	Price     int64
	PerPerson bool
}

// Input carries everything the engine is allowed to look at. Discount is the
// server-issued coupon amount, never a client-side computation.
type Input struct {
	UnitPrice     int64
	SingleRoomFee int64
	TravelerCount int
	RoomTier      entity.RoomTier
	AddOns        []AddOn
	Discount      int64
	TaxRateBps    int64
}

// Breakdown is the full price decomposition in minor currency units.
type Breakdown struct {
	BasePrice        int64 `json:"base_price"`
	RoomUpgradeTotal int64 `json:"room_upgrade_total"`
	AddOnsTotal      int64 `json:"addons_total"`
	Subtotal         int64 `json:"subtotal"`
	Discount         int64 `json:"discount"`
	Taxable          int64 `json:"taxable"`
	Taxes            int64 `json:"taxes"`
	GrandTotal       int64 `json:"grand_total"`
}

// Compute prices the draft. All arithmetic stays integral; rounding happens
// exactly once, at the tax step, half-up.
func Compute(in Input) Breakdown {
	travelers := int64(in.TravelerCount)

	var b Breakdown
	b.BasePrice = in.UnitPrice * travelers

	if in.RoomTier == entity.RoomTierSingle {
		b.RoomUpgradeTotal = in.SingleRoomFee * travelers
	}

	for _, addon := range in.AddOns {
		if addon.PerPerson {
			b.AddOnsTotal += addon.Price * travelers
		} else {
			b.AddOnsTotal += addon.Price
		}
	}

	b.Subtotal = b.BasePrice + b.RoomUpgradeTotal + b.AddOnsTotal

	b.Discount = in.Discount
	if b.Discount > b.Subtotal {
		b.Discount = b.Subtotal
	}
	if b.Discount < 0 {
		b.Discount = 0
	}

	b.Taxable = b.Subtotal - b.Discount
	b.Taxes = roundHalfUpBps(b.Taxable, in.TaxRateBps)
	b.GrandTotal = b.Taxable + b.Taxes

	return b
}

// roundHalfUpBps computes amount * rateBps / 10000 rounded half-up.
func roundHalfUpBps(amount, rateBps int64) int64 {
	return (amount*rateBps + 5000) / 10000
}
