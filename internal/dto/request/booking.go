package request

// TravelerPayload mirrors one traveler row of the draft.
type TravelerPayload struct {
	Name             string `json:"name" validate:"required"`
	Age              int    `json:"age" validate:"required,gte=1,lte=120"`
	Gender           string `json:"gender" validate:"required,oneof=male female other"`
	EmergencyContact string `json:"emergency_contact" validate:"required"`
}

// DraftPayload carries the priceable fields of a booking draft. Order
// creation and booking creation both submit it so the server can recompute
// the amount instead of trusting a client total.
type DraftPayload struct {
	TripID          string            `json:"trip_id" validate:"required,uuid4"`
	DepartureDate   string            `json:"departure_date" validate:"required"`
	TravelerCount   int               `json:"traveler_count" validate:"required,gte=1"`
	Travelers       []TravelerPayload `json:"travelers" validate:"required,min=1,dive"`
	RoomTier        string            `json:"room_tier" validate:"required,oneof=shared single"`
	AddOnIDs        []string          `json:"addon_ids" validate:"omitempty,dive,uuid4"`
	SpecialRequests string            `json:"special_requests"`
	CouponCode      string            `json:"coupon_code"`
}

type CreateBookingRequest struct {
	DraftPayload
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func (r *PaginatedRequest) Limit() int {
	if r.PerPage < 1 {
		return 10
	}
	return r.PerPage
}

func (r *PaginatedRequest) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.Limit()
}
