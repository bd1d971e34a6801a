package entity

import (
	"github.com/google/uuid"
)

type PaymentOrderStatus string

const (
	// created: order issued, checkout not finished
	PaymentOrderStatusCreated PaymentOrderStatus = "created"
	// paid: gateway signature verified for this order
	PaymentOrderStatusPaid PaymentOrderStatus = "paid"
	// consumed: a booking was created from this order; a second booking
	// attempt against the same order must be rejected
	PaymentOrderStatusConsumed PaymentOrderStatus = "consumed"
	PaymentOrderStatusFailed   PaymentOrderStatus = "failed"
)

// PaymentOrder records the amount the server agreed to charge before the
// checkout widget ever opens. Verification and booking creation both check
// against this row, never against client-supplied amounts.
type PaymentOrder struct {
	Base
	OrderID   string             `db:"order_id"` // gateway order identifier
	UserID    uuid.UUID          `db:"user_id"`
	TripID    uuid.UUID          `db:"trip_id"`
	Amount    int64              `db:"amount"`
	Currency  string             `db:"currency"`
	Status    PaymentOrderStatus `db:"status"`
	PaymentID *string            `db:"payment_id"` // set on verification
}
