package services

import (
	"context"
	"errors"
	"log"
	"time"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/adapters/persistence/repositories"
	"caribe-tours/internal/core/domain"

	"gorm.io/gorm"
)

// Agency service errors
var (
	ErrAgencyNotFound      = errors.New("agency not found")
	ErrBankAccountNotFound = errors.New("bank account not found")
	ErrNotAccountOwner     = errors.New("not the owner of this bank account")
	ErrInvalidStatus       = errors.New("invalid agency status")
	ErrInvalidCommission   = errors.New("invalid commission rate")
)

// AgencyService handles agency profile business logic
type AgencyService struct {
	agencyRepo      repositories.AgencyRepository
	bankAccountRepo repositories.BankAccountRepository
	transactionRepo repositories.TransactionRepository
}

// NewAgencyService creates a new agency service
func NewAgencyService(
	agencyRepo repositories.AgencyRepository,
	bankAccountRepo repositories.BankAccountRepository,
	transactionRepo repositories.TransactionRepository,
) *AgencyService {
	return &AgencyService{
		agencyRepo:      agencyRepo,
		bankAccountRepo: bankAccountRepo,
		transactionRepo: transactionRepo,
	}
}

// GetByUserID gets the agency profile owned by a user
func (s *AgencyService) GetByUserID(ctx context.Context, userID uint) (*models.AgencyProfile, error) {
	agency, err := s.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}
	return agency, nil
}

// GetByID gets an agency profile by ID
func (s *AgencyService) GetByID(ctx context.Context, id uint) (*models.AgencyProfile, error) {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}
	return agency, nil
}

// UpdateProfileInput represents agency profile update input
type UpdateProfileInput struct {
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	PayoutAccount string `json:"payout_account,omitempty"`
}

// UpdateProfile updates the caller's own agency profile.
// status, tier and commission rate are admin-controlled and not touched here.
func (s *AgencyService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.AgencyProfile, error) {
	agency, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		agency.Name = input.Name
	}
	if input.Description != "" {
		agency.Description = input.Description
	}
	if input.PayoutAccount != "" {
		agency.PayoutAccount = input.PayoutAccount
	}

	if err := s.agencyRepo.Update(ctx, agency); err != nil {
		return nil, err
	}

	return agency, nil
}

// AddBankAccountInput represents bank account input
type AddBankAccountInput struct {
	BankName      string `json:"bank_name" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	Currency      string `json:"currency,omitempty"`
}

// AddBankAccount adds a bank account to the caller's agency
func (s *AgencyService) AddBankAccount(ctx context.Context, userID uint, input *AddBankAccountInput) (*models.BankAccount, error) {
	agency, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "DOP"
	}

	account := &models.BankAccount{
		AgencyID:      agency.ID,
		BankName:      input.BankName,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
		Currency:      currency,
	}

	if err := s.bankAccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ListBankAccounts lists the caller's agency bank accounts
func (s *AgencyService) ListBankAccounts(ctx context.Context, userID uint) ([]*models.BankAccount, error) {
	agency, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.bankAccountRepo.ListByAgency(ctx, agency.ID)
}

// RemoveBankAccount removes a bank account owned by the caller's agency
func (s *AgencyService) RemoveBankAccount(ctx context.Context, userID uint, accountID uint) error {
	agency, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	account, err := s.bankAccountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBankAccountNotFound
		}
		return err
	}

	if account.AgencyID != agency.ID {
		return ErrNotAccountOwner
	}

	return s.bankAccountRepo.Delete(ctx, accountID)
}

// ListTransactions lists the caller's agency payment transactions
func (s *AgencyService) ListTransactions(ctx context.Context, userID uint, offset, limit int) ([]*models.AgencyTransaction, int64, error) {
	agency, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.transactionRepo.ListByAgency(ctx, agency.ID, offset, limit)
}

// ListTransactionsByAgencyID lists any agency's transactions by agency ID
// (admin only, checked upstream)
func (s *AgencyService) ListTransactionsByAgencyID(ctx context.Context, agencyID uint, offset, limit int) ([]*models.AgencyTransaction, int64, error) {
	if _, err := s.GetByID(ctx, agencyID); err != nil {
		return nil, 0, err
	}
	return s.transactionRepo.ListByAgency(ctx, agencyID, offset, limit)
}

// SetStatus sets the agency operational status (admin only, checked upstream).
// isVerified is a legacy display flag and deliberately left untouched:
// status is the only field consulted for gating.
func (s *AgencyService) SetStatus(ctx context.Context, agencyID uint, status string) (*models.AgencyProfile, error) {
	if !domain.ValidAgencyStatus(status) {
		return nil, ErrInvalidStatus
	}

	agency, err := s.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	agency.Status = status
	if err := s.agencyRepo.Update(ctx, agency); err != nil {
		return nil, err
	}

	log.Printf("✅ Agency %d status set to %s", agency.ID, status)
	return agency, nil
}

// SetCommissionRate sets the base commission percentage for an agency
// (admin only, checked upstream)
func (s *AgencyService) SetCommissionRate(ctx context.Context, agencyID uint, rate float64) (*models.AgencyProfile, error) {
	if rate < 0 || rate > 100 {
		return nil, ErrInvalidCommission
	}

	agency, err := s.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	agency.CommissionRate = rate
	if err := s.agencyRepo.Update(ctx, agency); err != nil {
		return nil, err
	}

	log.Printf("✅ Agency %d commission rate set to %.2f", agency.ID, rate)
	return agency, nil
}

// SetVerified flips the legacy verification flag (admin only, checked upstream)
func (s *AgencyService) SetVerified(ctx context.Context, agencyID uint, verified bool) (*models.AgencyProfile, error) {
	agency, err := s.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	agency.IsVerified = verified
	if err := s.agencyRepo.Update(ctx, agency); err != nil {
		return nil, err
	}

	return agency, nil
}

// List lists agencies with pagination, optionally filtered by status
func (s *AgencyService) List(ctx context.Context, status string, offset, limit int) ([]*models.AgencyProfile, int64, error) {
	if status != "" {
		return s.agencyRepo.ListByStatus(ctx, status, offset, limit)
	}
	return s.agencyRepo.List(ctx, offset, limit)
}

// EffectiveCommissionRate returns the commission rate applicable now.
// PRO agencies get a reduced rate; expiry is evaluated lazily, nothing
// ever writes the tier back to FREE.
func (s *AgencyService) EffectiveCommissionRate(agency *models.AgencyProfile, now time.Time) float64 {
	const proDiscount = 0.5
	if agency.IsPro(now) {
		return agency.CommissionRate * proDiscount
	}
	return agency.CommissionRate
}
