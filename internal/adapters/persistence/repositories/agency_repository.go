package repositories

import (
	"context"

	"caribe-tours/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// agencyRepository implements AgencyRepository interface
type agencyRepository struct {
	db *gorm.DB
}

// NewAgencyRepository creates a new agency repository
func NewAgencyRepository(db *gorm.DB) AgencyRepository {
	return &agencyRepository{db: db}
}

// Create creates a new agency profile
func (r *agencyRepository) Create(ctx context.Context, agency *models.AgencyProfile) error {
	return r.db.WithContext(ctx).Create(agency).Error
}

// GetByID gets an agency profile by ID
func (r *agencyRepository) GetByID(ctx context.Context, id uint) (*models.AgencyProfile, error) {
	var agency models.AgencyProfile
	err := r.db.WithContext(ctx).
		Preload("BankAccounts").
		Where("id = ?", id).
		First(&agency).Error
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// GetByUserID gets the agency profile owned by a user
func (r *agencyRepository) GetByUserID(ctx context.Context, userID uint) (*models.AgencyProfile, error) {
	var agency models.AgencyProfile
	err := r.db.WithContext(ctx).
		Preload("BankAccounts").
		Where("user_id = ?", userID).
		First(&agency).Error
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// Update updates an agency profile
func (r *agencyRepository) Update(ctx context.Context, agency *models.AgencyProfile) error {
	return r.db.WithContext(ctx).Save(agency).Error
}

// List lists agency profiles with pagination
func (r *agencyRepository) List(ctx context.Context, offset, limit int) ([]*models.AgencyProfile, int64, error) {
	var agencies []*models.AgencyProfile
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.AgencyProfile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id DESC").Find(&agencies).Error; err != nil {
		return nil, 0, err
	}

	return agencies, total, nil
}

// ListByStatus lists agency profiles filtered by status
func (r *agencyRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.AgencyProfile, int64, error) {
	var agencies []*models.AgencyProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AgencyProfile{}).Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("id DESC").Find(&agencies).Error; err != nil {
		return nil, 0, err
	}

	return agencies, total, nil
}

// bankAccountRepository implements BankAccountRepository interface
type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

// Create creates a new bank account
func (r *bankAccountRepository) Create(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetByID gets a bank account by ID
func (r *bankAccountRepository) GetByID(ctx context.Context, id uint) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByAgency lists bank accounts for an agency
func (r *bankAccountRepository) ListByAgency(ctx context.Context, agencyID uint) ([]*models.BankAccount, error) {
	var accounts []*models.BankAccount
	err := r.db.WithContext(ctx).Where("agency_id = ?", agencyID).Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Delete hard deletes a bank account
func (r *bankAccountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.BankAccount{}, id).Error
}
