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

// Booking service errors
var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrStaleSession       = errors.New("session user no longer exists")
	ErrNotBookingOwner    = errors.New("not the owner of this booking")
	ErrNotBookingAgency   = errors.New("booking does not belong to this agency")
	ErrInvalidBookingData = errors.New("invalid booking data")
)

// BookingService handles booking business logic
type BookingService struct {
	bookingRepo     repositories.BookingRepository
	tourRepo        repositories.TourRepository
	userRepo        repositories.UserRepository
	agencyRepo      repositories.AgencyRepository
	transactionRepo repositories.TransactionRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	tourRepo repositories.TourRepository,
	userRepo repositories.UserRepository,
	agencyRepo repositories.AgencyRepository,
	transactionRepo repositories.TransactionRepository,
) *BookingService {
	return &BookingService{
		bookingRepo:     bookingRepo,
		tourRepo:        tourRepo,
		userRepo:        userRepo,
		agencyRepo:      agencyRepo,
		transactionRepo: transactionRepo,
	}
}

// PaymentDetails carries an external payment confirmation attached to a
// booking request (e.g. a captured PayPal order)
type PaymentDetails struct {
	ID string `json:"id"`
}

// CreateBookingInput represents create booking input
type CreateBookingInput struct {
	TourID         uint            `json:"tour_id" validate:"required"`
	Date           string          `json:"date" validate:"required"` // YYYY-MM-DD
	People         int             `json:"people" validate:"required,gt=0"`
	TotalPrice     float64         `json:"total_price" validate:"required,gt=0"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	PaymentDetails *PaymentDetails `json:"payment_details,omitempty"`
	Phone          string          `json:"phone,omitempty"`
}

// Create creates a booking for an authenticated traveler.
//
// The booking insert and the payment recording are two separate writes,
// not one transaction: if recording the payment fails the booking stays
// with payment_status PENDING and the error is only logged. The cron
// reconciler promotes such bookings once the transaction row exists.
func (s *BookingService) Create(ctx context.Context, userID uint, input *CreateBookingInput) (*models.Booking, error) {
	// 1. Stale-session check: the token may outlive the user row
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaleSession
		}
		return nil, err
	}

	// 2. The tour must still exist
	tour, err := s.tourRepo.GetByID(ctx, input.TourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	// 3. Validate fields
	if input.People <= 0 || input.TotalPrice <= 0 {
		return nil, ErrInvalidBookingData
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, ErrInvalidBookingData
	}

	phone := input.Phone
	if phone == "" {
		phone = user.Phone
	}

	// 4. Insert the booking, both axes start at PENDING
	booking := &models.Booking{
		UserID:        user.ID,
		TourID:        tour.ID,
		Date:          date,
		People:        input.People,
		TotalPrice:    input.TotalPrice,
		Currency:      tour.Currency,
		Status:        "PENDING",
		PaymentStatus: "PENDING",
		PaymentMethod: input.PaymentMethod,
		Phone:         phone,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// 5. Best-effort payment recording when a confirmation came inline
	if input.PaymentDetails != nil && input.PaymentDetails.ID != "" {
		s.recordPayment(ctx, booking, tour, input.PaymentDetails.ID)
	}

	log.Printf("✅ Booking %d created for tour %d (status: %s, payment: %s)",
		booking.ID, tour.ID, booking.Status, booking.PaymentStatus)

	return booking, nil
}

// recordPayment appends the transaction row and flips the booking to
// CONFIRMED/PAID. A failure here is logged and swallowed; the booking
// already exists and is reconciled out-of-band.
func (s *BookingService) recordPayment(ctx context.Context, booking *models.Booking, tour *models.Tour, orderID string) {
	tx := &models.AgencyTransaction{
		AgencyID:      tour.AgencyID,
		BookingID:     &booking.ID,
		PaypalOrderID: orderID,
		Amount:        booking.TotalPrice,
		Currency:      booking.Currency,
		Method:        booking.PaymentMethod,
		Type:          models.TxTypeBooking,
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		log.Printf("⚠️ Payment for booking %d confirmed but transaction insert failed: %v", booking.ID, err)
		return
	}

	// Payment confirmation never regresses an already-advanced status
	if booking.Status == "PENDING" {
		booking.Status = "CONFIRMED"
	}
	booking.PaymentStatus = "PAID"

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		log.Printf("⚠️ Transaction %s recorded but booking %d status update failed: %v", orderID, booking.ID, err)
	}
}

// Get returns a booking visible only to its participants: the traveler,
// the agency owning the tour, or an admin.
func (s *BookingService) Get(ctx context.Context, userID uint, role string, bookingID uint) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if role == "ADMIN" || booking.UserID == userID {
		return booking, nil
	}

	if err := s.authorizeAgency(ctx, booking, userID); err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// ListMine lists the traveler's own bookings
func (s *BookingService) ListMine(ctx context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByUser(ctx, userID, offset, limit)
}

// ListForAgency lists bookings against the caller's agency tours
func (s *BookingService) ListForAgency(ctx context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error) {
	agency, err := s.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrAgencyNotFound
		}
		return nil, 0, err
	}
	return s.bookingRepo.ListByAgency(ctx, agency.ID, offset, limit)
}

// UpdateStatus sets the reservation status. Only the agency owning the
// booked tour may do this; payment_status is not touched.
func (s *BookingService) UpdateStatus(ctx context.Context, userID uint, bookingID uint, status string) (*models.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, ErrInvalidBookingData
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeAgency(ctx, booking, userID); err != nil {
		return nil, err
	}

	booking.Status = status
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// SubmitReceipt attaches a payment receipt URL to the traveler's own
// booking. Anyone else gets an authorization error.
func (s *BookingService) SubmitReceipt(ctx context.Context, userID uint, bookingID uint, receiptURL string) (*models.Booking, error) {
	if receiptURL == "" {
		return nil, ErrInvalidBookingData
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	booking.ReceiptURL = &receiptURL
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// getBooking fetches a booking mapping gorm.ErrRecordNotFound
func (s *BookingService) getBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// authorizeAgency checks the caller owns the agency behind the booked tour
func (s *BookingService) authorizeAgency(ctx context.Context, booking *models.Booking, userID uint) error {
	agency, err := s.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotBookingAgency
		}
		return err
	}

	tour := booking.Tour
	if tour == nil {
		t, err := s.tourRepo.GetByID(ctx, booking.TourID)
		if err != nil {
			return ErrNotBookingAgency
		}
		tour = t
	}

	if tour.AgencyID != agency.ID {
		return ErrNotBookingAgency
	}
	return nil
}
