package services

import (
	"context"
	"errors"
	"log"
	"time"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Payment service errors
var (
	ErrInvalidPaymentType = errors.New("invalid payment type")
	ErrDuplicateOrder     = errors.New("order already processed")
	ErrMissingMetadata    = errors.New("missing payment metadata")
)

// PaymentService applies external payment confirmations to agencies and tours
type PaymentService struct {
	agencyRepo      repositories.AgencyRepository
	tourRepo        repositories.TourRepository
	planRepo        repositories.PlanRepository
	transactionRepo repositories.TransactionRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	agencyRepo repositories.AgencyRepository,
	tourRepo repositories.TourRepository,
	planRepo repositories.PlanRepository,
	transactionRepo repositories.TransactionRepository,
) *PaymentService {
	return &PaymentService{
		agencyRepo:      agencyRepo,
		tourRepo:        tourRepo,
		planRepo:        planRepo,
		transactionRepo: transactionRepo,
	}
}

// VerifyPaymentMetadata carries the target of the purchase
type VerifyPaymentMetadata struct {
	TourID   uint   `json:"tour_id,omitempty"`
	PlanSlug string `json:"plan_slug,omitempty"`
}

// VerifyPaymentInput represents an external payment confirmation
type VerifyPaymentInput struct {
	OrderID  string                `json:"order_id" validate:"required"`
	AgencyID uint                  `json:"agency_id" validate:"required"`
	Amount   float64               `json:"amount" validate:"required,gt=0"`
	Currency string                `json:"currency,omitempty"`
	Type     string                `json:"type" validate:"required"` // MEMBERSHIP_PRO or AD_PROMOTION
	Metadata VerifyPaymentMetadata `json:"metadata"`
}

// Verify records a completed external payment and applies its effect:
// MEMBERSHIP_PRO upgrades the agency tier, AD_PROMOTION promotes a tour.
// Replays of the same orderId are rejected.
func (s *PaymentService) Verify(ctx context.Context, input *VerifyPaymentInput) (*models.AgencyTransaction, error) {
	// 1. Duplicate-order guard
	if existing, err := s.transactionRepo.GetByOrderID(ctx, input.OrderID); err == nil && existing != nil {
		return nil, ErrDuplicateOrder
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. The agency must exist
	agency, err := s.agencyRepo.GetByID(ctx, input.AgencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	// 3. Apply the purchase
	switch input.Type {
	case "MEMBERSHIP_PRO":
		if err := s.applyMembership(ctx, agency, input.Metadata.PlanSlug); err != nil {
			return nil, err
		}
	case "AD_PROMOTION":
		if err := s.applyPromotion(ctx, agency, input.Metadata); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidPaymentType
	}

	// 4. Append the transaction record
	tx := &models.AgencyTransaction{
		AgencyID:      agency.ID,
		PaypalOrderID: input.OrderID,
		Amount:        input.Amount,
		Currency:      currency,
		Method:        "paypal",
		Type:          input.Type,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	log.Printf("✅ Payment %s applied to agency %d (%s)", input.OrderID, agency.ID, input.Type)
	return tx, nil
}

// applyMembership upgrades the agency to PRO for the plan's duration.
// No downgrade job exists; tier expiry is checked lazily at read time.
func (s *PaymentService) applyMembership(ctx context.Context, agency *models.AgencyProfile, planSlug string) error {
	if planSlug == "" {
		return ErrMissingMetadata
	}

	plan, err := s.planRepo.GetBySlug(ctx, planSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if plan.Kind != "MEMBERSHIP" {
		return ErrWrongPlanKind
	}

	expiresAt := time.Now().Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	agency.Tier = "PRO"
	agency.TierExpiresAt = &expiresAt

	return s.agencyRepo.Update(ctx, agency)
}

// applyPromotion sets the featured window on the purchased tour
func (s *PaymentService) applyPromotion(ctx context.Context, agency *models.AgencyProfile, meta VerifyPaymentMetadata) error {
	if meta.TourID == 0 || meta.PlanSlug == "" {
		return ErrMissingMetadata
	}

	tour, err := s.tourRepo.GetByID(ctx, meta.TourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTourNotFound
		}
		return err
	}
	if tour.AgencyID != agency.ID {
		return ErrNotTourOwner
	}

	plan, err := s.planRepo.GetBySlug(ctx, meta.PlanSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if plan.Kind != "AD" {
		return ErrWrongPlanKind
	}

	expiresAt := time.Now().Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	tour.FeaturedPlan = &plan.Slug
	tour.FeaturedExpiresAt = &expiresAt

	return s.tourRepo.Update(ctx, tour)
}
