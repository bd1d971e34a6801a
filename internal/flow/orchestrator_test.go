package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBookingAPI struct {
	orderErr   error
	verifyErr  error
	bookingErr error

	orderCalls   int
	verifyCalls  int
	bookingCalls int

	verifiedOrder   string
	verifiedPayment string
	verifiedSig     string
}

func (f *fakeBookingAPI) CreateOrder(_ context.Context, draft *BookingDraft) (*CheckoutConfig, error) {
	f.orderCalls++
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return &CheckoutConfig{
		KeyID:    "rzp_test_key",
		OrderID:  "order_123",
		Amount:   draft.Price.GrandTotal,
		Currency: "INR",
	}, nil
}

func (f *fakeBookingAPI) VerifyPayment(_ context.Context, orderID, paymentID, signature string) error {
	f.verifyCalls++
	f.verifiedOrder = orderID
	f.verifiedPayment = paymentID
	f.verifiedSig = signature
	return f.verifyErr
}

func (f *fakeBookingAPI) CreateBooking(_ context.Context, _ *BookingDraft, _ *PaymentConfirmation) (string, error) {
	f.bookingCalls++
	if f.bookingErr != nil {
		return "", f.bookingErr
	}
	return "booking-1", nil
}

type fakeGateway struct {
	confirmation *PaymentConfirmation
	err          error
	calls        int
	onCheckout   func()
}

func (f *fakeGateway) Checkout(_ context.Context, _ CheckoutConfig) (*PaymentConfirmation, error) {
	f.calls++
	if f.onCheckout != nil {
		f.onCheckout()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.confirmation, nil
}

func paidConfirmation() *PaymentConfirmation {
	return &PaymentConfirmation{
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: "sig_789",
	}
}

func payableDraft() *BookingDraft {
	draft := sampleDraft("trip-1")
	draft.Price.Subtotal = 25000
	draft.Price.Taxable = 25000
	draft.Price.Taxes = 4500
	draft.Price.GrandTotal = 29500
	return draft
}

func newTestOrchestrator(api *fakeBookingAPI, gateway *fakeGateway) (*Orchestrator, *SessionDraftStore) {
	store := NewSessionDraftStore()
	return NewOrchestrator(api, gateway, store, zap.NewNop()), store
}

func TestPayHappyPath(t *testing.T) {
	api := &fakeBookingAPI{}
	gateway := &fakeGateway{confirmation: paidConfirmation()}
	orch, store := newTestOrchestrator(api, gateway)

	draft := payableDraft()
	store.Save(draft.TripID, StepPayment, draft)

	bookingID, err := orch.Pay(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "booking-1", bookingID)
	assert.Equal(t, StateBookingCreated, orch.State())
	assert.Equal(t, AttemptSucceeded, orch.Attempt().Status)

	// Verification happened with the gateway's exact values, before the
	// booking call.
	assert.Equal(t, 1, api.verifyCalls)
	assert.Equal(t, "order_123", api.verifiedOrder)
	assert.Equal(t, "pay_456", api.verifiedPayment)
	assert.Equal(t, "sig_789", api.verifiedSig)
	assert.Equal(t, 1, api.bookingCalls)

	// Terminal success clears the stored draft.
	_, _, ok := store.Load(draft.TripID)
	assert.False(t, ok)
}

func TestPayRejectsIncompleteDraft(t *testing.T) {
	api := &fakeBookingAPI{}
	orch, _ := newTestOrchestrator(api, &fakeGateway{})

	draft := payableDraft()
	draft.Travelers[0].Name = ""

	_, err := orch.Pay(context.Background(), draft)
	assert.ErrorIs(t, err, ErrDraftIncomplete)
	assert.Equal(t, 0, api.orderCalls)
}

func TestPayRejectsZeroTotal(t *testing.T) {
	api := &fakeBookingAPI{}
	orch, _ := newTestOrchestrator(api, &fakeGateway{})

	draft := payableDraft()
	draft.Price.GrandTotal = 0

	_, err := orch.Pay(context.Background(), draft)
	assert.ErrorIs(t, err, ErrDraftIncomplete)
	assert.Equal(t, 0, api.orderCalls)
}

func TestPayOrderCreationFailureIsRetryable(t *testing.T) {
	api := &fakeBookingAPI{orderErr: errors.New("connection refused")}
	gateway := &fakeGateway{}
	orch, _ := newTestOrchestrator(api, gateway)

	_, err := orch.Pay(context.Background(), payableDraft())
	require.Error(t, err)

	assert.Equal(t, StateIdle, orch.State())
	assert.Equal(t, 0, gateway.calls)

	// A second attempt is allowed.
	api.orderErr = nil
	gateway.confirmation = paidConfirmation()
	_, err = orch.Pay(context.Background(), payableDraft())
	assert.NoError(t, err)
}

func TestPayCancellationReturnsToIdle(t *testing.T) {
	api := &fakeBookingAPI{}
	gateway := &fakeGateway{err: ErrCheckoutCancelled}
	orch, store := newTestOrchestrator(api, gateway)

	draft := payableDraft()
	store.Save(draft.TripID, StepPayment, draft)

	_, err := orch.Pay(context.Background(), draft)
	assert.ErrorIs(t, err, ErrCheckoutCancelled)

	assert.Equal(t, StateIdle, orch.State())
	assert.Equal(t, AttemptAbandoned, orch.Attempt().Status)
	assert.Equal(t, 0, api.verifyCalls)
	assert.Equal(t, 0, api.bookingCalls)

	// Cancelling leaves the stored draft alone.
	_, _, ok := store.Load(draft.TripID)
	assert.True(t, ok)
}

func TestPayVerificationFailureIsRetryable(t *testing.T) {
	api := &fakeBookingAPI{verifyErr: errors.New("verification failed")}
	gateway := &fakeGateway{confirmation: paidConfirmation()}
	orch, _ := newTestOrchestrator(api, gateway)

	_, err := orch.Pay(context.Background(), payableDraft())
	require.Error(t, err)

	assert.Equal(t, StateIdle, orch.State())
	assert.Equal(t, 0, api.bookingCalls)

	api.verifyErr = nil
	_, err = orch.Pay(context.Background(), payableDraft())
	assert.NoError(t, err)
}

func TestPayBookingFailureAfterPaymentIsTerminal(t *testing.T) {
	api := &fakeBookingAPI{bookingErr: errors.New("backend 503")}
	gateway := &fakeGateway{confirmation: paidConfirmation()}
	orch, store := newTestOrchestrator(api, gateway)

	draft := payableDraft()
	store.Save(draft.TripID, StepPayment, draft)

	_, err := orch.Pay(context.Background(), draft)

	var unrecorded *PaidButUnrecordedError
	require.ErrorAs(t, err, &unrecorded)
	assert.Equal(t, "order_123", unrecorded.OrderID)
	assert.Equal(t, "pay_456", unrecorded.PaymentID)

	assert.Equal(t, StatePaidButUnrecorded, orch.State())
	assert.Equal(t, 1, api.bookingCalls)

	// The identifiers are the recovery key and must survive.
	require.NotNil(t, orch.Attempt())
	assert.Equal(t, "order_123", orch.Attempt().OrderID)
	assert.Equal(t, "pay_456", orch.Attempt().PaymentID)

	// The draft stays stored so a refresh keeps the recovery info.
	_, _, ok := store.Load(draft.TripID)
	assert.True(t, ok)

	// No automatic retry, and no new attempt may start.
	_, err = orch.Pay(context.Background(), draft)
	assert.ErrorIs(t, err, ErrNeedsSupport)
	assert.Equal(t, 1, api.bookingCalls)
}

func TestPayGuardsAgainstReentrancy(t *testing.T) {
	api := &fakeBookingAPI{}
	gateway := &fakeGateway{confirmation: paidConfirmation()}
	orch, _ := newTestOrchestrator(api, gateway)

	var reentrantErr error
	gateway.onCheckout = func() {
		_, reentrantErr = orch.Pay(context.Background(), payableDraft())
	}

	_, err := orch.Pay(context.Background(), payableDraft())
	require.NoError(t, err)

	assert.ErrorIs(t, reentrantErr, ErrPaymentInFlight)
	assert.Equal(t, 1, api.bookingCalls)
}

func TestSequencerCloseAlsoClosesAttachedOrchestrator(t *testing.T) {
	api := &fakeBookingAPI{}
	gateway := &fakeGateway{confirmation: paidConfirmation()}

	store := NewSessionDraftStore()
	seq := NewSequencer("trip-1", testTrip(), 1800, store, NewStackHistory(), &fakeCouponClient{}, zap.NewNop())
	orch := NewOrchestrator(api, gateway, store, zap.NewNop())
	seq.AttachOrchestrator(orch)

	// The user leaves the flow while the checkout widget is open.
	gateway.onCheckout = func() { seq.Close() }

	_, err := orch.Pay(context.Background(), payableDraft())
	assert.ErrorIs(t, err, ErrFlowClosed)

	assert.Equal(t, 0, api.verifyCalls)
	assert.Equal(t, 0, api.bookingCalls)
}

func TestPayDiscardsResultAfterClose(t *testing.T) {
	api := &fakeBookingAPI{}
	gateway := &fakeGateway{confirmation: paidConfirmation()}
	orch, store := newTestOrchestrator(api, gateway)

	draft := payableDraft()
	store.Save(draft.TripID, StepPayment, draft)

	// The flow closes while the checkout widget is open.
	gateway.onCheckout = func() { orch.Close() }

	_, err := orch.Pay(context.Background(), draft)
	assert.ErrorIs(t, err, ErrFlowClosed)

	assert.Equal(t, StateIdle, orch.State())
	assert.Equal(t, 0, api.verifyCalls)
	assert.Equal(t, 0, api.bookingCalls)
}
