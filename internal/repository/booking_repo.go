package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homestay/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrOverlap is returned by CreateExclusive when the conflict predicate
	// rejects the candidate against the room's current bookings.
	ErrOverlap = errors.New("booking overlaps an existing booking")
	// ErrRoomMismatch is returned when the room does not exist or does not
	// belong to the given accommodation.
	ErrRoomMismatch = errors.New("room does not belong to accommodation")
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	RoomID          int64     `gorm:"column:room_id"`
	AccommodationID int64     `gorm:"column:accommodation_id"`
	GuestID         int64     `gorm:"column:guest_id"`
	OwnerID         int64     `gorm:"column:owner_id"`
	StartDate       time.Time `gorm:"column:start_date"`
	EndDate         time.Time `gorm:"column:end_date"`
	NightsStayed    int       `gorm:"column:nights_stayed"`
	TotalPrice      float64   `gorm:"column:total_price"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		RoomID:          m.RoomID,
		AccommodationID: m.AccommodationID,
		GuestID:         m.GuestID,
		OwnerID:         m.OwnerID,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		NightsStayed:    m.NightsStayed,
		TotalPrice:      m.TotalPrice,
		Status:          domain.BookingStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		RoomID:          b.RoomID,
		AccommodationID: b.AccommodationID,
		GuestID:         b.GuestID,
		OwnerID:         b.OwnerID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		NightsStayed:    b.NightsStayed,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// CreateExclusive runs load-existing -> conflict check -> insert in a single
// transaction, so two concurrent creates for the same room cannot both pass
// the check. Same-room creates are serialized by locking the room row; on
// Postgres the bookings_no_overlap exclusion constraint is a second line of
// defense (see database.Migrate).
func (r *BookingRepository) CreateExclusive(
	ctx context.Context,
	b *domain.Booking,
	conflicts func(existing []domain.Booking) bool,
) error {
	m := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomQ := tx.Table("rooms").
			Select("id").
			Where("id = ? AND accommodation_id = ?", b.RoomID, b.AccommodationID)
		if tx.Dialector.Name() == "postgres" {
			// sqlite has no FOR UPDATE; its single-writer model serializes anyway
			roomQ = roomQ.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var roomID int64
		if err := roomQ.Scan(&roomID).Error; err != nil {
			return err
		}
		if roomID == 0 {
			return ErrRoomMismatch
		}

		var rows []bookingModel
		if err := tx.Where("room_id = ?", b.RoomID).Find(&rows).Error; err != nil {
			return err
		}

		existing := make([]domain.Booking, 0, len(rows))
		for _, row := range rows {
			existing = append(existing, *toDomainBooking(row))
		}

		if conflicts(existing) {
			return ErrOverlap
		}

		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}

	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByRoomID(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Where("room_id = ?", roomID).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) CountByRoomID(ctx context.Context, roomID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("room_id = ?", roomID).Count(&cnt)
	return cnt, tx.Error
}

func (r *BookingRepository) CountByAccommodationID(ctx context.Context, accommodationID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("accommodation_id = ?", accommodationID).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the booking permanently. The accommodation id must match:
// a booking is detached from the accommodation's list and destroyed in the
// same statement, so readers never see one without the other.
func (r *BookingRepository) Delete(ctx context.Context, id, accommodationID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND accommodation_id = ?", id, accommodationID).
		Delete(&bookingModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BookingDetails is a read model for booking lists, with the display names
// joined in.
type BookingDetails struct {
	ID                int64     `gorm:"column:id"`
	StartDate         time.Time `gorm:"column:start_date"`
	EndDate           time.Time `gorm:"column:end_date"`
	NightsStayed      int       `gorm:"column:nights_stayed"`
	TotalPrice        float64   `gorm:"column:total_price"`
	Status            string    `gorm:"column:status"`
	RoomID            int64     `gorm:"column:room_id"`
	RoomName          string    `gorm:"column:room_name"`
	AccommodationID   int64     `gorm:"column:accommodation_id"`
	AccommodationName string    `gorm:"column:accommodation_name"`
	GuestID           int64     `gorm:"column:guest_id"`
	OwnerID           int64     `gorm:"column:owner_id"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

const bookingDetailsQuery = `
SELECT b.id, b.start_date, b.end_date, b.nights_stayed, b.total_price, b.status,
       b.room_id, r.name AS room_name,
       b.accommodation_id, a.name AS accommodation_name,
       b.guest_id, b.owner_id, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN accommodations a ON a.id = b.accommodation_id
WHERE %s = ?
ORDER BY b.created_at DESC
LIMIT ? OFFSET ?
`

func (r *BookingRepository) GetGuestBookingsWithDetails(ctx context.Context, guestID int64, limit, offset int) ([]BookingDetails, error) {
	return r.detailsBy(ctx, "b.guest_id", guestID, limit, offset)
}

func (r *BookingRepository) GetOwnerBookingsWithDetails(ctx context.Context, ownerID int64, limit, offset int) ([]BookingDetails, error) {
	return r.detailsBy(ctx, "b.owner_id", ownerID, limit, offset)
}

// column is one of the two fixed values above, never user input.
func (r *BookingRepository) detailsBy(ctx context.Context, column string, id int64, limit, offset int) ([]BookingDetails, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []BookingDetails
	tx := r.db.WithContext(ctx).Raw(fmt.Sprintf(bookingDetailsQuery, column), id, limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
