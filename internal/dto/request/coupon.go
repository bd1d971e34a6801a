package request

type ValidateCouponRequest struct {
	Code     string `json:"code" validate:"required"`
	TripID   string `json:"trip_id" validate:"required,uuid4"`
	Subtotal int64  `json:"subtotal" validate:"required,gte=1"`
}
