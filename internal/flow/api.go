package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"travel-booking/internal/data/entity"
)

// BookingAPI is the backend surface the payment orchestrator drives:
// create the payment order, verify the captured payment, and record
// the booking.
type BookingAPI interface {
	CreateOrder(ctx context.Context, draft *BookingDraft) (*CheckoutConfig, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error
	CreateBooking(ctx context.Context, draft *BookingDraft, confirmation *PaymentConfirmation) (string, error)
}

type bookingHTTPClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewBookingAPI(baseURL, authToken string) BookingAPI {
	return &bookingHTTPClient{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// draftPayload is the wire shape of a draft shared by the order and
// booking endpoints. The server reprices it; client amounts never ride
// along.
type draftPayload struct {
	TripID          string            `json:"trip_id"`
	DepartureDate   string            `json:"departure_date"`
	TravelerCount   int               `json:"traveler_count"`
	Travelers       []entity.Traveler `json:"travelers"`
	RoomTier        string            `json:"room_tier"`
	AddOnIDs        []string          `json:"addon_ids,omitempty"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	CouponCode      string            `json:"coupon_code,omitempty"`
}

func draftToPayload(draft *BookingDraft) draftPayload {
	payload := draftPayload{
		TripID:          draft.TripID,
		DepartureDate:   draft.DepartureDate,
		TravelerCount:   draft.TravelerCount,
		Travelers:       draft.Travelers,
		RoomTier:        string(draft.RoomTier),
		AddOnIDs:        draft.AddOnIDs,
		SpecialRequests: draft.SpecialRequests,
	}
	if draft.Coupon != nil {
		payload.CouponCode = draft.Coupon.Code
	}
	return payload
}

func (c *bookingHTTPClient) CreateOrder(ctx context.Context, draft *BookingDraft) (*CheckoutConfig, error) {
	status, data, message, err := postJSON(ctx, c.httpClient, c.baseURL+"/api/payment/order", c.authToken, draftToPayload(draft))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("create order: %s", message)
	}

	var config CheckoutConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("decode checkout config: %w", err)
	}

	return &config, nil
}

func (c *bookingHTTPClient) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	body := map[string]string{
		"order_id":   orderID,
		"payment_id": paymentID,
		"signature":  signature,
	}

	status, _, message, err := postJSON(ctx, c.httpClient, c.baseURL+"/api/payment/verify", c.authToken, body)
	if err != nil {
		return fmt.Errorf("verify payment: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("verify payment: %s", message)
	}

	return nil
}

func (c *bookingHTTPClient) CreateBooking(ctx context.Context, draft *BookingDraft, confirmation *PaymentConfirmation) (string, error) {
	payload := struct {
		draftPayload
		OrderID   string `json:"order_id"`
		PaymentID string `json:"payment_id"`
		Signature string `json:"signature"`
	}{
		draftPayload: draftToPayload(draft),
		OrderID:      confirmation.OrderID,
		PaymentID:    confirmation.PaymentID,
		Signature:    confirmation.Signature,
	}

	status, data, message, err := postJSON(ctx, c.httpClient, c.baseURL+"/api/booking", c.authToken, payload)
	if err != nil {
		return "", fmt.Errorf("create booking: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", fmt.Errorf("create booking: %s", message)
	}

	var booking struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &booking); err != nil {
		return "", fmt.Errorf("decode booking: %w", err)
	}

	return booking.ID, nil
}
