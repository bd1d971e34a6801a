package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"
)

// In-memory repository fakes backing the service tests.

type fakeTripRepo struct {
	trips map[uuid.UUID]*entity.Trip
}

func (f *fakeTripRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Trip, error) {
	return f.trips[id], nil
}

func (f *fakeTripRepo) FindAllActive(_ context.Context) ([]*entity.Trip, error) {
	var active []*entity.Trip
	for _, trip := range f.trips {
		if trip.IsActive {
			active = append(active, trip)
		}
	}
	return active, nil
}

type fakeAddOnRepo struct {
	addons map[uuid.UUID]*entity.AddOn
}

func (f *fakeAddOnRepo) FindByTripID(_ context.Context, tripID uuid.UUID) ([]*entity.AddOn, error) {
	var found []*entity.AddOn
	for _, addon := range f.addons {
		if addon.TripID == tripID {
			found = append(found, addon)
		}
	}
	return found, nil
}

func (f *fakeAddOnRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.AddOn, error) {
	var found []*entity.AddOn
	for _, id := range ids {
		if addon, ok := f.addons[id]; ok {
			found = append(found, addon)
		}
	}
	return found, nil
}

type fakeCouponRepo struct {
	coupons map[string]*entity.Coupon
}

func (f *fakeCouponRepo) FindByCode(_ context.Context, code string) (*entity.Coupon, error) {
	return f.coupons[code], nil
}

func (f *fakeCouponRepo) FindAllPublished(_ context.Context) ([]*entity.Coupon, error) {
	var published []*entity.Coupon
	for _, coupon := range f.coupons {
		if coupon.IsActive {
			published = append(published, coupon)
		}
	}
	return published, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.PaymentOrder
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.PaymentOrder) error {
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeOrderRepo) FindByOrderID(_ context.Context, orderID string) (*entity.PaymentOrder, error) {
	return f.orders[orderID], nil
}

func (f *fakeOrderRepo) MarkPaid(_ context.Context, orderID, paymentID string) error {
	order, ok := f.orders[orderID]
	if !ok || order.Status != entity.PaymentOrderStatusCreated {
		return errors.New("order not in created state")
	}
	order.Status = entity.PaymentOrderStatusPaid
	order.PaymentID = &paymentID
	return nil
}

func (f *fakeOrderRepo) Consume(_ context.Context, orderID string) (bool, error) {
	order, ok := f.orders[orderID]
	if !ok || order.Status != entity.PaymentOrderStatusPaid {
		return false, nil
	}
	order.Status = entity.PaymentOrderStatusConsumed
	return true, nil
}

func (f *fakeOrderRepo) MarkFailed(_ context.Context, orderID string) error {
	if order, ok := f.orders[orderID]; ok {
		order.Status = entity.PaymentOrderStatusFailed
	}
	return nil
}

type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*entity.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) FindByOrderID(_ context.Context, orderID string) (*entity.Booking, error) {
	for _, booking := range f.bookings {
		if booking.OrderID == orderID {
			return booking, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var found []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			found = append(found, booking)
		}
	}
	if offset > len(found) {
		return nil, nil
	}
	found = found[offset:]
	if limit < len(found) {
		found = found[:limit]
	}
	return found, nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return errors.New("booking not found")
	}
	booking.Status = status
	return nil
}

// fixture wires the fakes into a repository with one active trip, one
// per-person add-on and one fixed coupon.
type fixture struct {
	repo    *repository.Repository
	config  *utils.Config
	trip    *entity.Trip
	addon   *entity.AddOn
	coupon  *entity.Coupon
	orders  *fakeOrderRepo
	booking *fakeBookingRepo
}

func newFixture() *fixture {
	now := time.Now()

	trip := &entity.Trip{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:         "Ladakh Expedition",
		Destination:   "Leh",
		DurationDays:  7,
		UnitPrice:     10000,
		SingleRoomFee: 2000,
		Currency:      "INR",
		MaxTravelers:  10,
		IsActive:      true,
	}

	addon := &entity.AddOn{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		TripID:     trip.ID,
		Name:       "Airport transfer",
		Price:      500,
		PerPerson:  true,
		IsActive:   true,
	}

	coupon := &entity.Coupon{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Code:          "SAVE25",
		DiscountType:  entity.DiscountTypeFixed,
		DiscountValue: 2500,
		MinOrderValue: 10000,
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidTo:       now.Add(24 * time.Hour),
		IsActive:      true,
	}

	orders := &fakeOrderRepo{orders: make(map[string]*entity.PaymentOrder)}
	bookings := &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}

	repo := &repository.Repository{
		Trip:         &fakeTripRepo{trips: map[uuid.UUID]*entity.Trip{trip.ID: trip}},
		AddOn:        &fakeAddOnRepo{addons: map[uuid.UUID]*entity.AddOn{addon.ID: addon}},
		Coupon:       &fakeCouponRepo{coupons: map[string]*entity.Coupon{coupon.Code: coupon}},
		PaymentOrder: orders,
		Booking:      bookings,
	}

	config := &utils.Config{
		Gateway: utils.GatewayConfig{
			KeyID:     "rzp_test_key",
			KeySecret: "test_key_secret",
			Currency:  "INR",
		},
		Pricing: utils.PricingConfig{TaxRateBps: 1800},
	}

	return &fixture{
		repo:    repo,
		config:  config,
		trip:    trip,
		addon:   addon,
		coupon:  coupon,
		orders:  orders,
		booking: bookings,
	}
}
