package services

import (
	"context"
	"errors"
	"log"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/adapters/persistence/repositories"
	"caribe-tours/internal/core/domain"

	"gorm.io/gorm"
)

// Admin service errors
var (
	ErrInvalidModeration = errors.New("invalid moderation action")
)

// AdminService handles administrator moderation.
// Role enforcement happens in the routing layer (AdminOnly middleware);
// these operations deliberately bypass ownership checks.
type AdminService struct {
	tourRepo    repositories.TourRepository
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
}

// NewAdminService creates a new admin service
func NewAdminService(
	tourRepo repositories.TourRepository,
	bookingRepo repositories.BookingRepository,
	userRepo repositories.UserRepository,
) *AdminService {
	return &AdminService{
		tourRepo:    tourRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// ModerateTour applies an admin action to any tour regardless of owner.
// DELETE is a hard delete; images, dates and bookings follow through the
// FK cascade. PAUSE and PUBLISH flip the publish status.
func (s *AdminService) ModerateTour(ctx context.Context, tourID uint, action string) (*models.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	switch action {
	case "DELETE":
		if err := s.tourRepo.HardDelete(ctx, tourID); err != nil {
			return nil, err
		}
		log.Printf("🗑️ Admin deleted tour %d", tourID)
		return nil, nil
	case "PAUSE":
		tour.Status = "PAUSED"
	case "PUBLISH":
		tour.Status = "PUBLISHED"
	default:
		return nil, ErrInvalidModeration
	}

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, err
	}

	log.Printf("✅ Admin set tour %d status to %s", tour.ID, tour.Status)
	return tour, nil
}

// DeleteBooking unconditionally hard deletes a booking
func (s *AdminService) DeleteBooking(ctx context.Context, bookingID uint) error {
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if err := s.bookingRepo.HardDelete(ctx, bookingID); err != nil {
		return err
	}

	log.Printf("🗑️ Admin deleted booking %d", bookingID)
	return nil
}

// ListUsers lists users with pagination
func (s *AdminService) ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// SetUserRole changes a user's role. Roles are immutable for the user
// themselves; only admin tooling reaches this path.
func (s *AdminService) SetUserRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User %d role set to %s", user.ID, role)
	return user, nil
}
