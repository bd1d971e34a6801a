package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

// CouponOfferResponse is the published-offer shape used by the client for
// optimistic eligibility display. It never carries a computed discount.
type CouponOfferResponse struct {
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	MinOrderValue int64     `json:"min_order_value"`
	ValidTo       time.Time `json:"valid_to"`
}

// CouponApplicationResponse is the authoritative validation result; the
// discount here is the only value a draft may ever store.
type CouponApplicationResponse struct {
	CouponID string `json:"coupon_id"`
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
}

func CouponToOfferResponse(coupon *entity.Coupon) CouponOfferResponse {
	return CouponOfferResponse{
		Code:          coupon.Code,
		Description:   coupon.Description,
		MinOrderValue: coupon.MinOrderValue,
		ValidTo:       coupon.ValidTo,
	}
}
