package domain

import "time"

type BedType string

const (
	BedSingle BedType = "Single"
	BedTwin   BedType = "Twin"
	BedDouble BedType = "Double"
	BedFull   BedType = "Full"
	BedQueen  BedType = "Queen"
	BedKing   BedType = "King"
)

type Room struct {
	ID              int64     `json:"id"`
	AccommodationID int64     `json:"accommodation_id"`
	Name            string    `json:"name" validate:"required"`
	SizeSqm         int       `json:"size_sqm" validate:"required,gt=0"`
	MaxGuest        int       `json:"max_guest" validate:"required,gt=0"`
	Feature         string    `json:"feature,omitempty"`
	PricePerNight   float64   `json:"price_per_night" validate:"required,gt=0"`
	BedType         BedType   `json:"bed_type"`
	BedCount        int       `json:"bed_count"`
	BathroomCount   int       `json:"bathroom_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
