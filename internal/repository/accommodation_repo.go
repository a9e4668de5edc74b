package repository

import (
	"context"

	"homestay/internal/domain"

	"gorm.io/gorm"
)

type AccommodationFilters struct {
	Country  string
	State    string
	Category string
	Keyword  string
	Limit    int
	Offset   int
}

type AccommodationRepository struct {
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

// Search returns published listings matching the filters, with rooms and
// booking intervals preloaded so the availability filter can run over them
// without further queries.
func (r *AccommodationRepository) Search(
	ctx context.Context,
	f AccommodationFilters,
) ([]domain.Accommodation, int64, error) {

	var accommodations []domain.Accommodation
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Accommodation{}).
		Where("status = ?", string(domain.ListingSuccess))

	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Keyword != "" {
		q = q.Where("name LIKE ?", "%"+f.Keyword+"%")
	}

	q.Count(&total)

	q = q.Preload("Rooms").Preload("Bookings")

	// Limit 0 means no pagination: the availability filter paginates the
	// filtered set itself, so it needs every match.
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	err := q.Find(&accommodations).Error

	return accommodations, total, err
}

func (r *AccommodationRepository) GetByID(ctx context.Context, id int64) (*domain.Accommodation, error) {
	var acc domain.Accommodation

	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Bookings").
		First(&acc, id).Error
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

func (r *AccommodationRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Accommodation, error) {
	var accommodations []domain.Accommodation

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Rooms").
		Find(&accommodations).Error

	return accommodations, err
}

func (r *AccommodationRepository) Create(ctx context.Context, acc *domain.Accommodation) error {
	return r.db.WithContext(ctx).Create(acc).Error
}

func (r *AccommodationRepository) Update(ctx context.Context, acc *domain.Accommodation) error {
	return r.db.WithContext(ctx).Save(acc).Error
}

// Delete removes the listing and its rooms in one transaction. Callers are
// expected to have verified there are no bookings left.
func (r *AccommodationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("accommodation_id = ?", id).Delete(&domain.Room{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&domain.Accommodation{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
