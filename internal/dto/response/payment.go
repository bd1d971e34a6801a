package response

// CheckoutConfigResponse configures the external checkout widget: the public
// key plus a one-time order tied server-side to the exact amount.
type CheckoutConfigResponse struct {
	KeyID    string `json:"key_id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyPaymentResponse struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Verified  bool   `json:"verified"`
}
