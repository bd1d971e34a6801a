package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/utils"
)

func draftPayload(f *fixture) request.DraftPayload {
	return request.DraftPayload{
		TripID:        f.trip.ID.String(),
		DepartureDate: "2026-10-01",
		TravelerCount: 2,
		Travelers: []request.TravelerPayload{
			{Name: "Asha Rao", Age: 31, Gender: "female", EmergencyContact: "+91-9000000001"},
			{Name: "Vikram Rao", Age: 33, Gender: "male", EmergencyContact: "+91-9000000002"},
		},
		RoomTier: "single",
		AddOnIDs: []string{f.addon.ID.String()},
	}
}

func TestCreateOrderPricesDraftServerSide(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())
	userID := uuid.New().String()

	resp, err := svc.CreateOrder(context.Background(), userID, &request.CreateOrderRequest{
		DraftPayload: draftPayload(f),
	})
	require.NoError(t, err)

	assert.Equal(t, "rzp_test_key", resp.KeyID)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, int64(29500), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)

	order := f.orders.orders[resp.OrderID]
	require.NotNil(t, order)
	assert.Equal(t, entity.PaymentOrderStatusCreated, order.Status)
	assert.Equal(t, int64(29500), order.Amount)
}

func TestCreateOrderAppliesCoupon(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	payload := draftPayload(f)
	payload.CouponCode = "SAVE25"

	resp, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		DraftPayload: payload,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(26550), resp.Amount)
}

func TestCreateOrderRejectsInactiveTrip(t *testing.T) {
	f := newFixture()
	f.trip.IsActive = false
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		DraftPayload: draftPayload(f),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not open for booking")
}

func TestCreateOrderRejectsTravelerCountMismatch(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	payload := draftPayload(f)
	payload.TravelerCount = 3

	_, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		DraftPayload: payload,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match traveler count")
}

func TestCreateOrderRejectsForeignAddOn(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	payload := draftPayload(f)
	payload.AddOnIDs = []string{uuid.New().String()}

	_, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		DraftPayload: payload,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add-ons not found")
}

func createPaidOrder(t *testing.T, f *fixture, userID string) (orderID, paymentID, signature string) {
	t.Helper()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	resp, err := svc.CreateOrder(context.Background(), userID, &request.CreateOrderRequest{
		DraftPayload: draftPayload(f),
	})
	require.NoError(t, err)

	paymentID = "pay_456"
	signature = utils.SignPayment(resp.OrderID, paymentID, f.config.Gateway.KeySecret)

	_, err = svc.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		OrderID:   resp.OrderID,
		PaymentID: paymentID,
		Signature: signature,
	})
	require.NoError(t, err)

	return resp.OrderID, paymentID, signature
}

func TestVerifyPaymentMarksOrderPaid(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	orderID, paymentID, _ := createPaidOrder(t, f, userID)

	order := f.orders.orders[orderID]
	require.NotNil(t, order)
	assert.Equal(t, entity.PaymentOrderStatusPaid, order.Status)
	require.NotNil(t, order.PaymentID)
	assert.Equal(t, paymentID, *order.PaymentID)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	resp, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		DraftPayload: draftPayload(f),
	})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		OrderID:   resp.OrderID,
		PaymentID: "pay_456",
		Signature: "forged",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verification failed")

	// The order is burned; it can never be settled with a later callback.
	assert.Equal(t, entity.PaymentOrderStatusFailed, f.orders.orders[resp.OrderID].Status)

	goodSig := utils.SignPayment(resp.OrderID, "pay_456", f.config.Gateway.KeySecret)
	_, err = svc.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		OrderID:   resp.OrderID,
		PaymentID: "pay_456",
		Signature: goodSig,
	})
	require.Error(t, err)
}

func TestVerifyPaymentIsIdempotentForSamePayment(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	orderID, paymentID, signature := createPaidOrder(t, f, uuid.New().String())

	resp, err := svc.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: signature,
	})
	require.NoError(t, err)
	assert.True(t, resp.Verified)
}

func TestVerifyPaymentRejectsDifferentPaymentOnSettledOrder(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	orderID, _, _ := createPaidOrder(t, f, uuid.New().String())

	otherSig := utils.SignPayment(orderID, "pay_999", f.config.Gateway.KeySecret)
	_, err := svc.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		OrderID:   orderID,
		PaymentID: "pay_999",
		Signature: otherSig,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already settled")
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.repo, f.config, zap.NewNop())

	_, err := svc.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		OrderID:   "order_missing",
		PaymentID: "pay_456",
		Signature: "sig",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
