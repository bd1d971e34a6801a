package flow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponClientValidateAccepted(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/coupons/validate", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Coupon applied",
			"data": map[string]any{
				"coupon_id": "cpn-1",
				"code":      "SAVE25",
				"discount":  2500,
			},
		})
	}))
	defer server.Close()

	client := NewCouponClient(server.URL, "token-abc")

	application, err := client.Validate(context.Background(), "SAVE25", "trip-1", 25000)
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "SAVE25", gotBody["code"])
	assert.Equal(t, "trip-1", gotBody["trip_id"])
	assert.Equal(t, float64(25000), gotBody["subtotal"])

	assert.Equal(t, "cpn-1", application.CouponID)
	assert.Equal(t, int64(2500), application.Discount)
}

func TestCouponClientValidateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "coupon requires a minimum order of 50000",
		})
	}))
	defer server.Close()

	client := NewCouponClient(server.URL, "token-abc")

	_, err := client.Validate(context.Background(), "BIG50", "trip-1", 25000)

	var rejected *CouponRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "BIG50", rejected.Code)
	assert.Equal(t, "coupon requires a minimum order of 50000", rejected.Reason)
}

func TestCouponClientValidateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Internal server error",
		})
	}))
	defer server.Close()

	client := NewCouponClient(server.URL, "token-abc")

	_, err := client.Validate(context.Background(), "SAVE25", "trip-1", 25000)
	require.Error(t, err)

	// A 5xx is a transport-level failure, not a business rejection.
	var rejected *CouponRejectedError
	assert.False(t, errors.As(err, &rejected))
}

func TestCouponClientOffers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/coupons", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "success",
			"data": []map[string]any{
				{"code": "SAVE25", "description": "Flat 2500 off", "min_order_value": 10000},
			},
		})
	}))
	defer server.Close()

	client := NewCouponClient(server.URL, "token-abc")

	offers, err := client.Offers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "SAVE25", offers[0].Code)
	assert.Equal(t, int64(10000), offers[0].MinOrderValue)
}
