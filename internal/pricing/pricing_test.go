package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travel-booking/internal/data/entity"
)

func baseInput() Input {
	return Input{
		UnitPrice:     10000,
		SingleRoomFee: 2000,
		TravelerCount: 2,
		RoomTier:      entity.RoomTierSingle,
		AddOns: []AddOn{
			{ID: "addon-1", Price: 500, PerPerson: true},
		},
		TaxRateBps: 1800,
	}
}

func TestComputeWithoutCoupon(t *testing.T) {
	b := Compute(baseInput())

	assert.Equal(t, int64(20000), b.BasePrice)
	assert.Equal(t, int64(4000), b.RoomUpgradeTotal)
	assert.Equal(t, int64(1000), b.AddOnsTotal)
	assert.Equal(t, int64(25000), b.Subtotal)
	assert.Equal(t, int64(0), b.Discount)
	assert.Equal(t, int64(25000), b.Taxable)
	assert.Equal(t, int64(4500), b.Taxes)
	assert.Equal(t, int64(29500), b.GrandTotal)
}

func TestComputeWithCoupon(t *testing.T) {
	in := baseInput()
	in.Discount = 2500

	b := Compute(in)

	assert.Equal(t, int64(25000), b.Subtotal)
	assert.Equal(t, int64(2500), b.Discount)
	assert.Equal(t, int64(22500), b.Taxable)
	assert.Equal(t, int64(4050), b.Taxes)
	assert.Equal(t, int64(26550), b.GrandTotal)
}

func TestComputeIsIdempotent(t *testing.T) {
	in := baseInput()

	first := Compute(in)
	second := Compute(in)

	assert.Equal(t, first, second)
}

func TestComputeSharedRoomHasNoUpgrade(t *testing.T) {
	in := baseInput()
	in.RoomTier = entity.RoomTierShared

	b := Compute(in)

	assert.Equal(t, int64(0), b.RoomUpgradeTotal)
	assert.Equal(t, int64(21000), b.Subtotal)
}

func TestComputeFlatAddOnIsNotScaled(t *testing.T) {
	in := baseInput()
	in.AddOns = []AddOn{{ID: "addon-flat", Price: 750, PerPerson: false}}

	b := Compute(in)

	assert.Equal(t, int64(750), b.AddOnsTotal)
}

func TestComputeDiscountClampedToSubtotal(t *testing.T) {
	in := baseInput()
	in.Discount = 1000000

	b := Compute(in)

	assert.Equal(t, b.Subtotal, b.Discount)
	assert.Equal(t, int64(0), b.Taxable)
	assert.Equal(t, int64(0), b.Taxes)
	assert.Equal(t, int64(0), b.GrandTotal)
}

func TestComputeNegativeDiscountTreatedAsZero(t *testing.T) {
	in := baseInput()
	in.Discount = -500

	b := Compute(in)

	assert.Equal(t, int64(0), b.Discount)
	assert.Equal(t, int64(29500), b.GrandTotal)
}

func TestComputeTaxRoundsHalfUp(t *testing.T) {
	in := Input{
		UnitPrice:     103,
		TravelerCount: 1,
		RoomTier:      entity.RoomTierShared,
		TaxRateBps:    1800,
	}

	// 103 * 0.18 = 18.54, rounds to 19.
	b := Compute(in)

	assert.Equal(t, int64(19), b.Taxes)
	assert.Equal(t, int64(122), b.GrandTotal)
}

func TestComputeGrandTotalIdentity(t *testing.T) {
	in := baseInput()
	in.Discount = 2500

	b := Compute(in)

	assert.Equal(t, b.BasePrice+b.RoomUpgradeTotal+b.AddOnsTotal-b.Discount+b.Taxes, b.GrandTotal)
}
