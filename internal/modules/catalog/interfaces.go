package catalog

import (
	"context"

	"homestay/internal/domain"
	"homestay/internal/repository"
)

type AccommodationRepository interface {
	Search(ctx context.Context, f repository.AccommodationFilters) ([]domain.Accommodation, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Accommodation, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Accommodation, error)
	Create(ctx context.Context, acc *domain.Accommodation) error
	Update(ctx context.Context, acc *domain.Accommodation) error
	Delete(ctx context.Context, id int64) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
}

// BookingCounter guards destructive listing operations: a room or listing
// with live bookings must not silently vanish from under the engine.
type BookingCounter interface {
	CountByRoomID(ctx context.Context, roomID int64) (int64, error)
	CountByAccommodationID(ctx context.Context, accommodationID int64) (int64, error)
}
