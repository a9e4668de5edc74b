package booking

import (
	"context"

	"homestay/internal/domain"
	"homestay/internal/repository"
)

// BookingRepository is the persistence boundary for bookings. CreateExclusive
// must evaluate the conflicts predicate and insert within one transactional
// scope (see repository.BookingRepository).
type BookingRepository interface {
	CreateExclusive(ctx context.Context, b *domain.Booking, conflicts func(existing []domain.Booking) bool) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id, accommodationID int64) error
	GetGuestBookingsWithDetails(ctx context.Context, guestID int64, limit, offset int) ([]repository.BookingDetails, error)
	GetOwnerBookingsWithDetails(ctx context.Context, ownerID int64, limit, offset int) ([]repository.BookingDetails, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type AccommodationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Accommodation, error)
}
