package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignPayment computes the gateway signature over "<orderID>|<paymentID>".
// The gateway signs its success callback the same way with the shared key
// secret; VerifyPaymentSignature is the server-side half of that handshake.
func SignPayment(orderID, paymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(fmt.Sprintf("%s|%s", orderID, paymentID)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature reports whether signature matches the expected
// HMAC for the given order and payment identifiers. Constant-time compare.
func VerifyPaymentSignature(orderID, paymentID, signature, keySecret string) bool {
	expected := SignPayment(orderID, paymentID, keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
