package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CouponRejectedError is a business rejection from the validator: the code
// does not exist, expired, or the subtotal is below the minimum. The flow
// stays usable; the message is shown as-is.
type CouponRejectedError struct {
	Code   string
	Reason string
}

func (e *CouponRejectedError) Error() string {
	return fmt.Sprintf("coupon %s rejected: %s", e.Code, e.Reason)
}

// CouponOffer is a published offer used for optimistic eligibility display
// (minimum purchase, validity). It carries no discount amount; only
// Validate can produce one.
type CouponOffer struct {
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	MinOrderValue int64     `json:"min_order_value"`
	ValidTo       time.Time `json:"valid_to"`
}

// CouponClient submits a code and the current subtotal to the remote
// validator. The discount in the result is the server's decision; the
// client never computes one. Offers is a cached-list convenience and may
// be stale; Validate is always the final gate.
type CouponClient interface {
	Validate(ctx context.Context, code, tripID string, subtotal int64) (*CouponApplication, error)
	Offers(ctx context.Context) ([]CouponOffer, error)
}

type couponHTTPClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewCouponClient builds the HTTP adapter for the coupon validation
// endpoint.
func NewCouponClient(baseURL, authToken string) CouponClient {
	return &couponHTTPClient{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *couponHTTPClient) Validate(ctx context.Context, code, tripID string, subtotal int64) (*CouponApplication, error) {
	body := map[string]any{
		"code":     code,
		"trip_id":  tripID,
		"subtotal": subtotal,
	}

	status, data, message, err := postJSON(ctx, c.httpClient, c.baseURL+"/api/coupons/validate", c.authToken, body)
	if err != nil {
		return nil, fmt.Errorf("validate coupon: %w", err)
	}

	// 4xx means the validator said no, not that the call failed.
	if status >= 400 && status < 500 {
		return nil, &CouponRejectedError{Code: code, Reason: message}
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("validate coupon: unexpected status %d", status)
	}

	var application CouponApplication
	if err := json.Unmarshal(data, &application); err != nil {
		return nil, fmt.Errorf("decode coupon application: %w", err)
	}

	return &application, nil
}

func (c *couponHTTPClient) Offers(ctx context.Context) ([]CouponOffer, error) {
	status, data, message, err := getJSON(ctx, c.httpClient, c.baseURL+"/api/coupons", c.authToken)
	if err != nil {
		return nil, fmt.Errorf("list coupon offers: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list coupon offers: %s", message)
	}

	var offers []CouponOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, fmt.Errorf("decode coupon offers: %w", err)
	}

	return offers, nil
}

// envelope mirrors the backend's response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// postJSON sends an authenticated JSON request and unwraps the response
// envelope. Shared by the coupon and booking API clients.
func postJSON(ctx context.Context, client *http.Client, url, authToken string, body any) (int, json.RawMessage, string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, "", fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return 0, nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, "", fmt.Errorf("read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return resp.StatusCode, nil, "", fmt.Errorf("decode response envelope: %w", err)
	}

	return resp.StatusCode, env.Data, env.Message, nil
}

func getJSON(ctx context.Context, client *http.Client, url, authToken string) (int, json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, "", fmt.Errorf("create request: %w", err)
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, "", fmt.Errorf("read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return resp.StatusCode, nil, "", fmt.Errorf("decode response envelope: %w", err)
	}

	return resp.StatusCode, env.Data, env.Message, nil
}
