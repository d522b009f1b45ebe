package repositories

import (
	"context"
	"time"

	"caribe-tours/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// AgencyRepository defines agency profile repository interface
type AgencyRepository interface {
	Create(ctx context.Context, agency *models.AgencyProfile) error
	GetByID(ctx context.Context, id uint) (*models.AgencyProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.AgencyProfile, error)
	Update(ctx context.Context, agency *models.AgencyProfile) error
	List(ctx context.Context, offset, limit int) ([]*models.AgencyProfile, int64, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.AgencyProfile, int64, error)
}

// BankAccountRepository defines bank account repository interface
type BankAccountRepository interface {
	Create(ctx context.Context, account *models.BankAccount) error
	GetByID(ctx context.Context, id uint) (*models.BankAccount, error)
	ListByAgency(ctx context.Context, agencyID uint) ([]*models.BankAccount, error)
	Delete(ctx context.Context, id uint) error
}

// TourFilter narrows public tour listings
type TourFilter struct {
	Location string
	Offset   int
	Limit    int
}

// TourRepository defines tour repository interface
type TourRepository interface {
	Create(ctx context.Context, tour *models.Tour) error
	GetByID(ctx context.Context, id uint) (*models.Tour, error)
	Update(ctx context.Context, tour *models.Tour) error
	Archive(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	ListPublished(ctx context.Context, filter TourFilter) ([]*models.Tour, int64, error)
	ListFeatured(ctx context.Context, now time.Time, limit int) ([]*models.Tour, error)
	ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*models.Tour, int64, error)
	ReplaceImages(ctx context.Context, tourID uint, images []models.TourImage) error
	ReplaceDates(ctx context.Context, tourID uint, dates []models.TourAvailability) error
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	HardDelete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error)
	ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*models.Booking, int64, error)
	ListPaymentPending(ctx context.Context, limit int) ([]*models.Booking, error)
}

// TransactionRepository defines agency transaction repository interface.
// Transactions are append-only; there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.AgencyTransaction) error
	GetByOrderID(ctx context.Context, orderID string) (*models.AgencyTransaction, error)
	GetPaidByBookingID(ctx context.Context, bookingID uint) (*models.AgencyTransaction, error)
	ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*models.AgencyTransaction, int64, error)
}

// PlanRepository defines plan catalog repository interface
type PlanRepository interface {
	Create(ctx context.Context, plan *models.Plan) error
	GetBySlug(ctx context.Context, slug string) (*models.Plan, error)
	List(ctx context.Context, kind string) ([]*models.Plan, error)
	Count(ctx context.Context) (int64, error)
}
