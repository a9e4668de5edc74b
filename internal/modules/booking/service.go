package booking

import (
	"context"
	"errors"
	"time"

	"homestay/internal/domain"
	"homestay/internal/pkg/daterange"
	"homestay/internal/pkg/money"
	"homestay/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings       BookingRepository
	rooms          RoomRepository
	accommodations AccommodationRepository
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	accommodations AccommodationRepository,
) *Service {
	return &Service{
		bookings:       bookings,
		rooms:          rooms,
		accommodations: accommodations,
	}
}

// Create books a room for the guest if the requested stay does not overlap
// any existing booking for that room. The overlap check and the insert run
// in one transactional scope; on Postgres the exclusion constraint catches
// anything that slips past it.
func (s *Service) Create(ctx context.Context, guestID int64, req CreateBookingRequest) (*domain.Booking, error) {
	stay, err := daterange.New(req.StartDate, req.EndDate)
	if err != nil {
		return nil, ErrInvalidRange
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.AccommodationID != req.AccommodationID {
		return nil, ErrNotFound
	}

	acc, err := s.accommodations.GetByID(ctx, req.AccommodationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	nights := stay.Nights()
	total := float64(nights) * room.PricePerNight

	days := stay.Days()
	now := time.Now()

	b := &domain.Booking{
		RoomID:          room.ID,
		AccommodationID: acc.ID,
		GuestID:         guestID,
		OwnerID:         acc.OwnerID,
		StartDate:       days.Start,
		EndDate:         days.End,
		NightsStayed:    nights,
		TotalPrice:      total,
		Status:          domain.BookingNotPaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.bookings.CreateExclusive(ctx, b, func(existing []domain.Booking) bool {
		booked := make([]daterange.Range, 0, len(existing))
		for _, e := range existing {
			booked = append(booked, daterange.Range{Start: e.StartDate, End: e.EndDate})
		}
		return daterange.OverlapsAny(stay, booked)
	})
	if err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrConflict
		}
		if errors.Is(err, repository.ErrRoomMismatch) {
			return nil, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap" {
			return nil, ErrConflict
		}
		return nil, err
	}

	return b, nil
}

// ConfirmPayment flips the booking to paid. Only the accommodation owner may
// confirm; calling it on an already paid booking is a no-op.
func (s *Service) ConfirmPayment(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.OwnerID != actorID {
		return nil, ErrForbidden
	}

	if b.Status == domain.BookingPaid {
		return b, nil
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingPaid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Status = domain.BookingPaid
	return b, nil
}

// Cancel hard-deletes the booking and detaches it from the accommodation.
// Permitted to the guest who booked or the accommodation owner, regardless
// of payment status (current policy). The interval is free for new bookings
// as soon as this returns.
func (s *Service) Cancel(ctx context.Context, bookingID, accommodationID, actorID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if b.GuestID != actorID && b.OwnerID != actorID {
		return ErrForbidden
	}

	if err := s.bookings.Delete(ctx, bookingID, accommodationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// MyBookings lists the actor's bookings as a guest, newest first.
func (s *Service) MyBookings(ctx context.Context, guestID int64, limit, offset int) ([]BookingView, error) {
	rows, err := s.bookings.GetGuestBookingsWithDetails(ctx, guestID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

// ReceivedBookings lists bookings taken on the actor's accommodations.
func (s *Service) ReceivedBookings(ctx context.Context, ownerID int64, limit, offset int) ([]BookingView, error) {
	rows, err := s.bookings.GetOwnerBookingsWithDetails(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

func toViews(rows []repository.BookingDetails) []BookingView {
	out := make([]BookingView, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingView{
			ID:                r.ID,
			StartDate:         r.StartDate,
			EndDate:           r.EndDate,
			NightsStayed:      r.NightsStayed,
			TotalPrice:        r.TotalPrice,
			TotalPriceDisplay: money.Format(r.TotalPrice),
			Status:            r.Status,
			RoomID:            r.RoomID,
			RoomName:          r.RoomName,
			AccommodationID:   r.AccommodationID,
			AccommodationName: r.AccommodationName,
			CreatedAt:         r.CreatedAt,
		})
	}
	return out
}
