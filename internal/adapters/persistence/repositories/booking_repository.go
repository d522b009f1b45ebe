package repositories

import (
	"context"

	"caribe-tours/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID gets a booking by ID with its tour
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Tour").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update updates a booking
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// HardDelete permanently deletes a booking (admin moderation)
func (r *bookingRepository) HardDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Booking{}, id).Error
}

// ListByUser lists bookings made by a traveler
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Tour").
		Offset(offset).Limit(limit).
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListByAgency lists bookings against any tour owned by an agency
func (r *bookingRepository) ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{}).
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Where("tours.agency_id = ?", agencyID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Tour").
		Preload("User").
		Offset(offset).Limit(limit).
		Order("bookings.id DESC").
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListPaymentPending lists bookings whose payment is still marked PENDING.
// Used by the reconciliation sweep to find bookings left behind by a
// failed second write step.
func (r *bookingRepository) ListPaymentPending(ctx context.Context, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", "PENDING").
		Order("id ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
