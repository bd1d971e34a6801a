package flow

import (
	"context"
	"errors"
)

// ErrCheckoutCancelled is returned by a gateway when the user dismissed
// the checkout widget before paying. Always safe: no money moved.
var ErrCheckoutCancelled = errors.New("checkout cancelled by user")

// CheckoutConfig configures the external checkout widget.
type CheckoutConfig struct {
	KeyID    string `json:"key_id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentConfirmation is the gateway's signed success callback, reshaped
// into a plain return value. It proves nothing until the server verifies
// the signature.
type PaymentConfirmation struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// CheckoutGateway wraps the user-interactive checkout widget as a one-shot
// call: a confirmation, ErrCheckoutCancelled, or a transport error.
type CheckoutGateway interface {
	Checkout(ctx context.Context, config CheckoutConfig) (*PaymentConfirmation, error)
}
