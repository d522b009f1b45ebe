package repositories

import (
	"context"

	"caribe-tours/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a new transaction record
func (r *transactionRepository) Create(ctx context.Context, tx *models.AgencyTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetByOrderID gets a transaction by its external order identifier
func (r *transactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.AgencyTransaction, error) {
	var tx models.AgencyTransaction
	err := r.db.WithContext(ctx).Where("paypal_order_id = ?", orderID).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetPaidByBookingID gets the payment transaction recorded for a booking
func (r *transactionRepository) GetPaidByBookingID(ctx context.Context, bookingID uint) (*models.AgencyTransaction, error) {
	var tx models.AgencyTransaction
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListByAgency lists transactions for an agency with pagination
func (r *transactionRepository) ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*models.AgencyTransaction, int64, error) {
	var txs []*models.AgencyTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AgencyTransaction{}).Where("agency_id = ?", agencyID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("id DESC").Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// planRepository implements PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create creates a plan (seeding only)
func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// GetBySlug gets an active plan by slug
func (r *planRepository) GetBySlug(ctx context.Context, slug string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Where("is_active = ?", true).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// List lists active plans, optionally filtered by kind
func (r *planRepository) List(ctx context.Context, kind string) ([]*models.Plan, error) {
	var plans []*models.Plan
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("price ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// Count counts all plans including inactive ones
func (r *planRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Plan{}).Count(&count).Error
	return count, err
}
