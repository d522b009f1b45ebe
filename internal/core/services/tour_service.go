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

// Tour service errors
var (
	ErrTourNotFound    = errors.New("tour not found")
	ErrAgencyNotActive = errors.New("agency is not active")
	ErrNotTourOwner    = errors.New("not the owner of this tour")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrWrongPlanKind   = errors.New("plan is not a promotion plan")
)

// TourService handles tour catalog business logic
type TourService struct {
	tourRepo   repositories.TourRepository
	agencyRepo repositories.AgencyRepository
	planRepo   repositories.PlanRepository
}

// NewTourService creates a new tour service
func NewTourService(
	tourRepo repositories.TourRepository,
	agencyRepo repositories.AgencyRepository,
	planRepo repositories.PlanRepository,
) *TourService {
	return &TourService{
		tourRepo:   tourRepo,
		agencyRepo: agencyRepo,
		planRepo:   planRepo,
	}
}

// TourImageInput represents one image URL for a tour
type TourImageInput struct {
	URL      string `json:"url" validate:"required"`
	Position int    `json:"position,omitempty"`
}

// CreateTourInput represents create tour input
type CreateTourInput struct {
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description,omitempty"`
	Location    string           `json:"location" validate:"required"`
	Latitude    *float64         `json:"latitude,omitempty"`
	Longitude   *float64         `json:"longitude,omitempty"`
	Price       float64          `json:"price" validate:"required,gt=0"`
	Currency    string           `json:"currency,omitempty"`
	Images      []TourImageInput `json:"images,omitempty"`
	Dates       []string         `json:"dates,omitempty"` // YYYY-MM-DD
}

// Create creates a new tour for the calling agency.
// Only an ACTIVE agency may create tours; status is the authoritative
// gate, the isVerified flag is never consulted.
func (s *TourService) Create(ctx context.Context, userID uint, input *CreateTourInput) (*models.Tour, error) {
	// 1. Resolve the caller's agency
	agency, err := s.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}

	// 2. Gate on status
	if agency.Status != "ACTIVE" {
		return nil, ErrAgencyNotActive
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	// 3. Build tour with nested images and dates
	tour := &models.Tour{
		AgencyID:    agency.ID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Price:       input.Price,
		Currency:    currency,
		Status:      "PUBLISHED",
	}

	for _, img := range input.Images {
		tour.Images = append(tour.Images, models.TourImage{URL: img.URL, Position: img.Position})
	}

	dates, err := parseTourDates(input.Dates)
	if err != nil {
		return nil, err
	}
	tour.Dates = dates

	if err := s.tourRepo.Create(ctx, tour); err != nil {
		return nil, err
	}

	log.Printf("✅ Tour created: %q by agency %d", tour.Title, agency.ID)
	return tour, nil
}

// UpdateTourInput represents update tour input
type UpdateTourInput struct {
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Location    string           `json:"location,omitempty"`
	Latitude    *float64         `json:"latitude,omitempty"`
	Longitude   *float64         `json:"longitude,omitempty"`
	Price       *float64         `json:"price,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	Status      string           `json:"status,omitempty"` // PUBLISHED or PAUSED
	Images      []TourImageInput `json:"images,omitempty"`
	Dates       []string         `json:"dates,omitempty"`
}

// Update updates a tour. Only the owning agency or an admin may mutate it.
func (s *TourService) Update(ctx context.Context, userID uint, role string, tourID uint, input *UpdateTourInput) (*models.Tour, error) {
	tour, err := s.getTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(ctx, tour, userID, role); err != nil {
		return nil, err
	}

	if input.Title != "" {
		tour.Title = input.Title
	}
	if input.Description != "" {
		tour.Description = input.Description
	}
	if input.Location != "" {
		tour.Location = input.Location
	}
	if input.Latitude != nil {
		tour.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		tour.Longitude = input.Longitude
	}
	if input.Price != nil {
		tour.Price = *input.Price
	}
	if input.Currency != "" {
		tour.Currency = input.Currency
	}
	if input.Status == "PUBLISHED" || input.Status == "PAUSED" {
		tour.Status = input.Status
	}

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, err
	}

	if input.Images != nil {
		images := make([]models.TourImage, 0, len(input.Images))
		for _, img := range input.Images {
			images = append(images, models.TourImage{URL: img.URL, Position: img.Position})
		}
		if err := s.tourRepo.ReplaceImages(ctx, tour.ID, images); err != nil {
			return nil, err
		}
	}

	if input.Dates != nil {
		dates, err := parseTourDates(input.Dates)
		if err != nil {
			return nil, err
		}
		if err := s.tourRepo.ReplaceDates(ctx, tour.ID, dates); err != nil {
			return nil, err
		}
	}

	return s.getTour(ctx, tour.ID)
}

// Delete archives a tour. Only the owning agency or an admin may delete it.
func (s *TourService) Delete(ctx context.Context, userID uint, role string, tourID uint) error {
	tour, err := s.getTour(ctx, tourID)
	if err != nil {
		return err
	}

	if err := s.authorizeMutation(ctx, tour, userID, role); err != nil {
		return err
	}

	return s.tourRepo.Archive(ctx, tourID)
}

// Promote applies a paid promotion plan to a tour.
// featuredExpiresAt = now + plan duration; expiry is never swept, every
// featured listing filters on it at query time.
func (s *TourService) Promote(ctx context.Context, userID uint, role string, tourID uint, planSlug string) (*models.Tour, error) {
	tour, err := s.getTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(ctx, tour, userID, role); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetBySlug(ctx, planSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.Kind != "AD" {
		return nil, ErrWrongPlanKind
	}

	expiresAt := time.Now().Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	tour.FeaturedPlan = &plan.Slug
	tour.FeaturedExpiresAt = &expiresAt

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, err
	}

	log.Printf("✅ Tour %d promoted with plan %s until %s", tour.ID, plan.Slug, expiresAt.Format(time.RFC3339))
	return tour, nil
}

// Get returns a tour. Non-published tours are hidden from everyone but
// the owning agency and admins.
func (s *TourService) Get(ctx context.Context, tourID uint, userID uint, role string) (*models.Tour, error) {
	tour, err := s.getTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if tour.Status == "PUBLISHED" {
		return tour, nil
	}

	if err := s.authorizeMutation(ctx, tour, userID, role); err != nil {
		return nil, ErrTourNotFound
	}
	return tour, nil
}

// ListPublished lists published tours for the public catalog
func (s *TourService) ListPublished(ctx context.Context, location string, offset, limit int) ([]*models.Tour, int64, error) {
	return s.tourRepo.ListPublished(ctx, repositories.TourFilter{
		Location: location,
		Offset:   offset,
		Limit:    limit,
	})
}

// ListFeatured lists tours with a still-running promotion
func (s *TourService) ListFeatured(ctx context.Context, limit int) ([]*models.Tour, error) {
	return s.tourRepo.ListFeatured(ctx, time.Now(), limit)
}

// ListMine lists all tours owned by the caller's agency
func (s *TourService) ListMine(ctx context.Context, userID uint, offset, limit int) ([]*models.Tour, int64, error) {
	agency, err := s.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrAgencyNotFound
		}
		return nil, 0, err
	}
	return s.tourRepo.ListByAgency(ctx, agency.ID, offset, limit)
}

// ListPlans lists active promotion plans
func (s *TourService) ListPlans(ctx context.Context, kind string) ([]*models.Plan, error) {
	return s.planRepo.List(ctx, kind)
}

// getTour fetches a tour mapping gorm.ErrRecordNotFound
func (s *TourService) getTour(ctx context.Context, tourID uint) (*models.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return tour, nil
}

// authorizeMutation allows the owning agency's user or an admin
func (s *TourService) authorizeMutation(ctx context.Context, tour *models.Tour, userID uint, role string) error {
	if role == "ADMIN" {
		return nil
	}

	agency, err := s.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotTourOwner
		}
		return err
	}

	if tour.AgencyID != agency.ID {
		return ErrNotTourOwner
	}
	return nil
}

// parseTourDates parses YYYY-MM-DD availability dates
func parseTourDates(raw []string) ([]models.TourAvailability, error) {
	dates := make([]models.TourAvailability, 0, len(raw))
	for _, d := range raw {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, errors.New("invalid date format, use YYYY-MM-DD")
		}
		dates = append(dates, models.TourAvailability{Date: parsed})
	}
	return dates, nil
}
