package flow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type PaymentState int

const (
	StateIdle PaymentState = iota
	StateOrderCreated
	StateGatewayOpen
	StateVerifying
	StateBookingCreated
	StatePaidButUnrecorded
)

func (s PaymentState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOrderCreated:
		return "order_created"
	case StateGatewayOpen:
		return "gateway_open"
	case StateVerifying:
		return "verifying"
	case StateBookingCreated:
		return "booking_created"
	case StatePaidButUnrecorded:
		return "paid_but_unrecorded"
	default:
		return "unknown"
	}
}

type AttemptStatus string

const (
	AttemptSucceeded AttemptStatus = "succeeded"
	AttemptFailed    AttemptStatus = "failed"
	AttemptAbandoned AttemptStatus = "abandoned"
)

// PaymentAttempt records one checkout cycle. After a PaidButUnrecorded
// failure the identifiers here are the only recovery key and must not be
// discarded.
type PaymentAttempt struct {
	OrderID   string
	PaymentID string
	Signature string
	Status    AttemptStatus
}

// PaidButUnrecordedError means the payment was verified but the booking
// record could not be written. Manual reconciliation territory: the
// message carries the payment identifier for support.
type PaidButUnrecordedError struct {
	OrderID   string
	PaymentID string
}

func (e *PaidButUnrecordedError) Error() string {
	return fmt.Sprintf("payment %s was received but the booking could not be recorded; please contact support with payment id %s", e.PaymentID, e.PaymentID)
}

var (
	ErrPaymentInFlight = errors.New("a payment attempt is already in flight")
	ErrDraftIncomplete = errors.New("draft is not ready for payment")
	ErrNeedsSupport    = errors.New("a previous payment needs manual reconciliation, cannot start another")
)

// Orchestrator drives the three-phase gateway handshake: order creation,
// checkout, server-side verification, then exactly one booking-creation
// call. A gateway success callback is never treated as proof of payment;
// verification is the trust boundary.
type Orchestrator struct {
	api     BookingAPI
	gateway CheckoutGateway
	store   DraftStore
	log     *zap.Logger

	state    PaymentState
	attempt  *PaymentAttempt
	inFlight bool
	alive    bool
}

func NewOrchestrator(api BookingAPI, gateway CheckoutGateway, store DraftStore, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		api:     api,
		gateway: gateway,
		store:   store,
		log:     log.With(zap.String("component", "payment_orchestrator")),
		state:   StateIdle,
		alive:   true,
	}
}

func (o *Orchestrator) State() PaymentState {
	return o.state
}

// Attempt exposes the current checkout cycle's identifiers, nil before the
// first attempt.
func (o *Orchestrator) Attempt() *PaymentAttempt {
	return o.attempt
}

// Close marks the flow gone so that results arriving from an open checkout
// widget are discarded instead of applied to a flow the user already left.
func (o *Orchestrator) Close() {
	o.alive = false
}

// Pay runs one full checkout cycle for the draft and returns the new
// booking's identifier. Cancellation and pre-payment I/O failures return
// the orchestrator to Idle and are safe to retry; a booking-creation
// failure after a verified payment is not retried and surfaces as
// *PaidButUnrecordedError.
func (o *Orchestrator) Pay(ctx context.Context, draft *BookingDraft) (string, error) {
	if o.inFlight {
		return "", ErrPaymentInFlight
	}
	if o.state == StatePaidButUnrecorded {
		return "", ErrNeedsSupport
	}
	if !o.alive {
		return "", ErrFlowClosed
	}

	if errs := draft.ValidateTravelers(); errs != nil {
		return "", ErrDraftIncomplete
	}
	if draft.Price.GrandTotal <= 0 {
		return "", ErrDraftIncomplete
	}

	o.inFlight = true
	defer func() { o.inFlight = false }()

	config, err := o.api.CreateOrder(ctx, draft)
	if err != nil {
		o.state = StateIdle
		return "", err
	}
	o.state = StateOrderCreated
	o.attempt = &PaymentAttempt{OrderID: config.OrderID}

	o.state = StateGatewayOpen
	confirmation, err := o.gateway.Checkout(ctx, *config)
	if err != nil {
		o.state = StateIdle
		if errors.Is(err, ErrCheckoutCancelled) {
			o.attempt.Status = AttemptAbandoned
			o.log.Info("Checkout dismissed by user", zap.String("order_id", config.OrderID))
			return "", err
		}
		o.attempt.Status = AttemptFailed
		return "", err
	}

	// The flow may have been closed while the widget was open; nothing is
	// applied to state and no booking call is made.
	if !o.alive {
		o.state = StateIdle
		o.attempt.Status = AttemptAbandoned
		return "", ErrFlowClosed
	}

	o.attempt.PaymentID = confirmation.PaymentID
	o.attempt.Signature = confirmation.Signature

	o.state = StateVerifying
	if err := o.api.VerifyPayment(ctx, confirmation.OrderID, confirmation.PaymentID, confirmation.Signature); err != nil {
		// No money is acknowledged until verification passes, so a retry
		// in place is safe.
		o.state = StateIdle
		o.attempt.Status = AttemptFailed
		o.log.Warn("Payment verification failed",
			zap.String("order_id", confirmation.OrderID),
			zap.String("payment_id", confirmation.PaymentID),
			zap.Error(err))
		return "", err
	}

	// At most one booking-creation call per verified payment. A failure
	// here is not retried: backend idempotency is not guaranteed from this
	// side, and the identifiers are the only recovery key.
	bookingID, err := o.api.CreateBooking(ctx, draft, confirmation)
	if err != nil {
		o.state = StatePaidButUnrecorded
		o.attempt.Status = AttemptFailed
		o.log.Error("Booking creation failed after verified payment",
			zap.String("order_id", confirmation.OrderID),
			zap.String("payment_id", confirmation.PaymentID),
			zap.Error(err))
		return "", &PaidButUnrecordedError{OrderID: confirmation.OrderID, PaymentID: confirmation.PaymentID}
	}

	o.state = StateBookingCreated
	o.attempt.Status = AttemptSucceeded
	o.store.Clear(draft.TripID)
	o.log.Info("Booking created",
		zap.String("booking_id", bookingID),
		zap.String("order_id", confirmation.OrderID),
		zap.String("payment_id", confirmation.PaymentID))

	return bookingID, nil
}
