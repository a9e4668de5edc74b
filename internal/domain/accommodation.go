package domain

import "time"

type ListingStatus string

const (
	ListingPending ListingStatus = "pending"
	ListingSuccess ListingStatus = "success"
	ListingFailed  ListingStatus = "failed"
)

type Accommodation struct {
	ID               int64         `json:"id"`
	OwnerID          int64         `json:"owner_id"`
	Name             string        `json:"name" validate:"required"`
	Description      string        `json:"description"`
	Address          string        `json:"address"`
	City             string        `json:"city,omitempty"`
	State            string        `json:"state,omitempty"`
	Country          string        `json:"country"`
	Category         string        `json:"category"`
	Amenities        []string      `json:"amenities,omitempty" gorm:"serializer:json"`
	MinPricePerNight float64       `json:"min_price_per_night"`
	Status           ListingStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	Rooms    []Room    `json:"rooms,omitempty" gorm:"foreignKey:AccommodationID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:AccommodationID"`
}
