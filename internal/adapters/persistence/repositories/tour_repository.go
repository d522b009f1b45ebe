package repositories

import (
	"context"
	"time"

	"caribe-tours/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// tourRepository implements TourRepository interface
type tourRepository struct {
	db *gorm.DB
}

// NewTourRepository creates a new tour repository
func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

// Create creates a new tour with its images and dates
func (r *tourRepository) Create(ctx context.Context, tour *models.Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

// GetByID gets a tour by ID with relations
func (r *tourRepository) GetByID(ctx context.Context, id uint) (*models.Tour, error) {
	var tour models.Tour
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Dates").
		Preload("Agency").
		Where("id = ?", id).
		First(&tour).Error
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

// Update updates a tour
func (r *tourRepository) Update(ctx context.Context, tour *models.Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

// Archive soft deletes a tour (agency-initiated removal)
func (r *tourRepository) Archive(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tour{}, id).Error
}

// HardDelete permanently deletes a tour. Images, dates and bookings go
// with it through the FK cascade; admin moderation only.
func (r *tourRepository) HardDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Tour{}, id).Error
}

// ListPublished lists published tours for the public catalog
func (r *tourRepository) ListPublished(ctx context.Context, filter TourFilter) ([]*models.Tour, int64, error) {
	var tours []*models.Tour
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Tour{}).Where("status = ?", "PUBLISHED")
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Images").
		Offset(filter.Offset).Limit(filter.Limit).
		Order("featured_expires_at DESC, id DESC").
		Find(&tours).Error; err != nil {
		return nil, 0, err
	}

	return tours, total, nil
}

// ListFeatured lists published tours whose paid promotion is still running.
// Expiry is enforced here at query time, there is no background sweep.
func (r *tourRepository) ListFeatured(ctx context.Context, now time.Time, limit int) ([]*models.Tour, error) {
	var tours []*models.Tour
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("status = ?", "PUBLISHED").
		Where("featured_expires_at > ?", now).
		Order("featured_expires_at DESC").
		Limit(limit).
		Find(&tours).Error
	if err != nil {
		return nil, err
	}
	return tours, nil
}

// ListByAgency lists all tours owned by an agency (any status)
func (r *tourRepository) ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*models.Tour, int64, error) {
	var tours []*models.Tour
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Tour{}).Where("agency_id = ?", agencyID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Images").
		Offset(offset).Limit(limit).
		Order("id DESC").
		Find(&tours).Error; err != nil {
		return nil, 0, err
	}

	return tours, total, nil
}

// ReplaceImages replaces the image set of a tour
func (r *tourRepository) ReplaceImages(ctx context.Context, tourID uint, images []models.TourImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", tourID).Delete(&models.TourImage{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].TourID = tourID
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

// ReplaceDates replaces the availability dates of a tour
func (r *tourRepository) ReplaceDates(ctx context.Context, tourID uint, dates []models.TourAvailability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", tourID).Delete(&models.TourAvailability{}).Error; err != nil {
			return err
		}
		for i := range dates {
			dates[i].TourID = tourID
		}
		if len(dates) == 0 {
			return nil
		}
		return tx.Create(&dates).Error
	})
}
