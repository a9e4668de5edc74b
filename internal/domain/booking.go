package domain

import "time"

type BookingStatus string

const (
	BookingNotPaid BookingStatus = "not_paid"
	BookingPaid    BookingStatus = "paid"
)

type Booking struct {
	ID              int64         `json:"id"`
	RoomID          int64         `json:"room_id" validate:"required"`
	AccommodationID int64         `json:"accommodation_id" validate:"required"`
	GuestID         int64         `json:"guest_id" validate:"required"`
	OwnerID         int64         `json:"owner_id" validate:"required"`
	StartDate       time.Time     `json:"start_date" validate:"required"`
	EndDate         time.Time     `json:"end_date" validate:"required"`
	NightsStayed    int           `json:"nights_stayed"`
	TotalPrice      float64       `json:"total_price" validate:"gte=0"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}
