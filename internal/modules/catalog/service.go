package catalog

import (
	"context"
	"errors"
	"time"

	"homestay/internal/domain"
	"homestay/internal/pkg/daterange"
	"homestay/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	accommodations AccommodationRepository
	rooms          RoomRepository
	bookings       BookingCounter
}

func NewService(
	accommodations AccommodationRepository,
	rooms RoomRepository,
	bookings BookingCounter,
) *Service {
	return &Service{
		accommodations: accommodations,
		rooms:          rooms,
		bookings:       bookings,
	}
}

/* ---------- SEARCH ---------- */

type SearchQuery struct {
	Country  string
	State    string
	Category string
	Keyword  string
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// Search returns published listings matching the field filters. When a
// from/to window is present, listings with any booking overlapping the
// window are dropped before pagination, so pages stay full and total counts
// the filtered set. The filter is accommodation-level: one conflicting
// booking in any room hides the whole listing, which over-filters
// multi-room listings on purpose.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Accommodation, int64, error) {
	hasWindow := !q.From.IsZero() && !q.To.IsZero()

	var window daterange.Range
	if hasWindow {
		w, err := daterange.New(q.From, q.To)
		if err != nil {
			return nil, 0, ErrInvalidRange
		}
		window = w
	}

	limit, offset := q.Limit, q.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	filters := repository.AccommodationFilters{
		Country:  q.Country,
		State:    q.State,
		Category: q.Category,
		Keyword:  q.Keyword,
	}
	if !hasWindow {
		// no window to filter on, the storage layer can paginate
		filters.Limit = limit
		filters.Offset = offset
	}

	accommodations, total, err := s.accommodations.Search(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if !hasWindow {
		return accommodations, total, nil
	}

	available := FilterAvailable(window, accommodations)
	total = int64(len(available))

	if offset >= len(available) {
		return []domain.Accommodation{}, total, nil
	}
	end := offset + limit
	if end > len(available) {
		end = len(available)
	}
	return available[offset:end], total, nil
}

// FilterAvailable keeps the accommodations whose booking intervals leave the
// whole window free. Pure; used by Search and directly testable.
func FilterAvailable(window daterange.Range, accommodations []domain.Accommodation) []domain.Accommodation {
	out := make([]domain.Accommodation, 0, len(accommodations))
	for _, acc := range accommodations {
		booked := make([]daterange.Range, 0, len(acc.Bookings))
		for _, b := range acc.Bookings {
			booked = append(booked, daterange.Range{Start: b.StartDate, End: b.EndDate})
		}
		if !daterange.OverlapsAny(window, booked) {
			out = append(out, acc)
		}
	}
	return out
}

func (s *Service) GetAccommodation(ctx context.Context, id int64) (*domain.Accommodation, error) {
	acc, err := s.accommodations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return acc, nil
}

/* ---------- ACCOMMODATION MANAGEMENT ---------- */

func (s *Service) CreateAccommodation(ctx context.Context, ownerID int64, req CreateAccommodationRequest) (*domain.Accommodation, error) {
	acc := &domain.Accommodation{
		OwnerID:          ownerID,
		Name:             req.Name,
		Description:      req.Description,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		Category:         req.Category,
		Amenities:        req.Amenities,
		MinPricePerNight: req.MinPricePerNight,
		Status:           domain.ListingPending,
	}
	if acc.Category == "" {
		acc.Category = "house"
	}

	if err := s.accommodations.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Service) UpdateAccommodation(ctx context.Context, ownerID, accID int64, req UpdateAccommodationRequest) (*domain.Accommodation, error) {
	acc, err := s.GetAccommodation(ctx, accID)
	if err != nil {
		return nil, err
	}

	if acc.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	acc.Name = req.Name
	acc.Description = req.Description
	acc.Address = req.Address
	acc.City = req.City
	acc.State = req.State
	acc.Country = req.Country
	acc.Category = req.Category
	acc.Amenities = req.Amenities
	acc.MinPricePerNight = req.MinPricePerNight

	if err := s.accommodations.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Service) DeleteAccommodation(ctx context.Context, ownerID, accID int64) error {
	acc, err := s.GetAccommodation(ctx, accID)
	if err != nil {
		return err
	}

	if acc.OwnerID != ownerID {
		return ErrForbidden
	}

	cnt, err := s.bookings.CountByAccommodationID(ctx, accID)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasBookings
	}

	return s.accommodations.Delete(ctx, accID)
}

func (s *Service) MyAccommodations(ctx context.Context, ownerID int64) ([]domain.Accommodation, error) {
	return s.accommodations.GetByOwnerID(ctx, ownerID)
}

/* ---------- ROOMS ---------- */

func (s *Service) AddRoom(ctx context.Context, ownerID, accID int64, req CreateRoomRequest) (*domain.Room, error) {
	acc, err := s.GetAccommodation(ctx, accID)
	if err != nil {
		return nil, err
	}

	if acc.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	room := &domain.Room{
		AccommodationID: accID,
		Name:            req.Name,
		SizeSqm:         req.SizeSqm,
		MaxGuest:        req.MaxGuest,
		Feature:         req.Feature,
		PricePerNight:   req.PricePerNight,
		BedType:         domain.BedType(req.BedType),
		BedCount:        req.BedCount,
		BathroomCount:   req.BathroomCount,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, ownerID, roomID int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.roomOwnedBy(ctx, ownerID, roomID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.SizeSqm != nil && *req.SizeSqm > 0 {
		room.SizeSqm = *req.SizeSqm
	}
	if req.MaxGuest != nil && *req.MaxGuest > 0 {
		room.MaxGuest = *req.MaxGuest
	}
	if req.Feature != nil {
		room.Feature = *req.Feature
	}
	if req.PricePerNight != nil && *req.PricePerNight > 0 {
		room.PricePerNight = *req.PricePerNight
	}
	if req.BedType != nil {
		room.BedType = domain.BedType(*req.BedType)
	}
	if req.BedCount != nil && *req.BedCount > 0 {
		room.BedCount = *req.BedCount
	}
	if req.BathroomCount != nil && *req.BathroomCount >= 0 {
		room.BathroomCount = *req.BathroomCount
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom refuses to remove a room that still has bookings: cancelling
// them first is the host's job, not a cascade.
func (s *Service) DeleteRoom(ctx context.Context, ownerID, roomID int64) error {
	if _, err := s.roomOwnedBy(ctx, ownerID, roomID); err != nil {
		return err
	}

	cnt, err := s.bookings.CountByRoomID(ctx, roomID)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasBookings
	}

	return s.rooms.Delete(ctx, roomID)
}

func (s *Service) roomOwnedBy(ctx context.Context, ownerID, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	acc, err := s.GetAccommodation(ctx, room.AccommodationID)
	if err != nil {
		return nil, err
	}
	if acc.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	return room, nil
}
