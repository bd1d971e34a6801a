package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type TravelerResponse struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergency_contact"`
}

type BookingResponse struct {
	ID              string               `json:"id"`
	Reference       string               `json:"reference"`
	UserID          string               `json:"user_id"`
	TripID          string               `json:"trip_id"`
	TripTitle       string               `json:"trip_title,omitempty"`
	Destination     string               `json:"destination,omitempty"`
	DepartureDate   string               `json:"departure_date"`
	TravelerCount   int                  `json:"traveler_count"`
	Travelers       []TravelerResponse   `json:"travelers"`
	RoomTier        string               `json:"room_tier"`
	SpecialRequests string               `json:"special_requests,omitempty"`
	CouponCode      *string              `json:"coupon_code,omitempty"`
	Subtotal        int64                `json:"subtotal"`
	Discount        int64                `json:"discount"`
	Taxes           int64                `json:"taxes"`
	GrandTotal      int64                `json:"grand_total"`
	OrderID         string               `json:"order_id"`
	PaymentID       string               `json:"payment_id"`
	Status          entity.BookingStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
}

type PaginatedResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](items []T, page, perPage int, total int64) *PaginatedResponse[T] {
	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return &PaginatedResponse[T]{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

func BookingToResponse(booking *entity.Booking, trip *entity.Trip) BookingResponse {
	travelers := make([]TravelerResponse, len(booking.Travelers))
	for i, t := range booking.Travelers {
		travelers[i] = TravelerResponse{
			Name:             t.Name,
			Age:              t.Age,
			Gender:           string(t.Gender),
			EmergencyContact: t.EmergencyContact,
		}
	}

	resp := BookingResponse{
		ID:              booking.ID.String(),
		Reference:       booking.Reference,
		UserID:          booking.UserID.String(),
		TripID:          booking.TripID.String(),
		DepartureDate:   booking.DepartureDate.Format("2006-01-02"),
		TravelerCount:   booking.TravelerCount,
		Travelers:       travelers,
		RoomTier:        string(booking.RoomTier),
		SpecialRequests: booking.SpecialRequests,
		CouponCode:      booking.CouponCode,
		Subtotal:        booking.Subtotal,
		Discount:        booking.Discount,
		Taxes:           booking.Taxes,
		GrandTotal:      booking.GrandTotal,
		OrderID:         booking.OrderID,
		PaymentID:       booking.PaymentID,
		Status:          booking.Status,
		CreatedAt:       booking.CreatedAt,
	}

	if trip != nil {
		resp.TripTitle = trip.Title
		resp.Destination = trip.Destination
	}

	return resp
}
