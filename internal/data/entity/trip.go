package entity

// Trip is a bookable catalog item. All money is in minor currency units.
type Trip struct {
	Base
	Title         string `db:"title"`
	Destination   string `db:"destination"`
	DurationDays  int    `db:"duration_days"`
	UnitPrice     int64  `db:"unit_price"`
	SingleRoomFee int64  `db:"single_room_fee"` // per-person upgrade to a single room
	Currency      string `db:"currency"`
	MaxTravelers  int    `db:"max_travelers"`
	IsActive      bool   `db:"is_active"`
}
