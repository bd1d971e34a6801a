package response

import (
	"travel-booking/internal/data/entity"
)

type TripResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Destination   string          `json:"destination"`
	DurationDays  int             `json:"duration_days"`
	UnitPrice     int64           `json:"unit_price"`
	SingleRoomFee int64           `json:"single_room_fee"`
	Currency      string          `json:"currency"`
	MaxTravelers  int             `json:"max_travelers"`
	AddOns        []AddOnResponse `json:"addons,omitempty"`
}

type AddOnResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	PerPerson bool   `json:"per_person"`
}

func TripToResponse(trip *entity.Trip, addons []*entity.AddOn) TripResponse {
	resp := TripResponse{
		ID:            trip.ID.String(),
		Title:         trip.Title,
		Destination:   trip.Destination,
		DurationDays:  trip.DurationDays,
		UnitPrice:     trip.UnitPrice,
		SingleRoomFee: trip.SingleRoomFee,
		Currency:      trip.Currency,
		MaxTravelers:  trip.MaxTravelers,
	}

	for _, addon := range addons {
		resp.AddOns = append(resp.AddOns, AddOnResponse{
			ID:        addon.ID.String(),
			Name:      addon.Name,
			Price:     addon.Price,
			PerPerson: addon.PerPerson,
		})
	}

	return resp
}
