package catalog

type CreateAccommodationRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	Address          string   `json:"address" binding:"required"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Country          string   `json:"country" binding:"required"`
	Category         string   `json:"category"`
	Amenities        []string `json:"amenities"`
	MinPricePerNight float64  `json:"min_price_per_night" binding:"required,gt=0"`
}

type UpdateAccommodationRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	Address          string   `json:"address" binding:"required"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Country          string   `json:"country" binding:"required"`
	Category         string   `json:"category"`
	Amenities        []string `json:"amenities"`
	MinPricePerNight float64  `json:"min_price_per_night" binding:"required,gt=0"`
}

type CreateRoomRequest struct {
	Name          string  `json:"name" binding:"required"`
	SizeSqm       int     `json:"size_sqm" binding:"required,gt=0"`
	MaxGuest      int     `json:"max_guest" binding:"required,gt=0"`
	Feature       string  `json:"feature"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	BedType       string  `json:"bed_type" binding:"required"`
	BedCount      int     `json:"bed_count" binding:"required,gt=0"`
	BathroomCount int     `json:"bathroom_count"`
}

type UpdateRoomRequest struct {
	Name          *string  `json:"name"`
	SizeSqm       *int     `json:"size_sqm"`
	MaxGuest      *int     `json:"max_guest"`
	Feature       *string  `json:"feature"`
	PricePerNight *float64 `json:"price_per_night"`
	BedType       *string  `json:"bed_type"`
	BedCount      *int     `json:"bed_count"`
	BathroomCount *int     `json:"bathroom_count"`
}
