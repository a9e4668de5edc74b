package booking

import "time"

type CreateBookingRequest struct {
	RoomID          int64     `json:"room_id" binding:"required"`
	AccommodationID int64     `json:"accommodation_id" binding:"required"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required"`
}

type BookingView struct {
	ID                int64     `json:"id"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	NightsStayed      int       `json:"nights_stayed"`
	TotalPrice        float64   `json:"total_price"`
	TotalPriceDisplay string    `json:"total_price_display"`
	Status            string    `json:"status"`
	RoomID            int64     `json:"room_id"`
	RoomName          string    `json:"room_name"`
	AccommodationID   int64     `json:"accommodation_id"`
	AccommodationName string    `json:"accommodation_name"`
	CreatedAt         time.Time `json:"created_at"`
}
