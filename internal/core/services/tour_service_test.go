package services

import (
	"context"
	"testing"
	"time"

	"caribe-tours/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTourService() (*TourService, *fakeTourRepo, *fakeAgencyRepo, *fakePlanRepo) {
	tourRepo := newFakeTourRepo()
	agencyRepo := newFakeAgencyRepo()
	planRepo := newFakePlanRepo()
	svc := NewTourService(tourRepo, agencyRepo, planRepo)
	return svc, tourRepo, agencyRepo, planRepo
}

func seedAgency(t *testing.T, repo *fakeAgencyRepo, userID uint, status string) *models.AgencyProfile {
	t.Helper()
	agency := &models.AgencyProfile{
		UserID: userID,
		Name:   "Test Agency",
		Status: status,
		Tier:   "FREE",
	}
	require.NoError(t, repo.Create(context.Background(), agency))
	return agency
}

func TestCreateTour_RequiresActiveAgency(t *testing.T) {
	svc, _, agencyRepo, _ := newTestTourService()

	input := &CreateTourInput{
		Title:    "Saona Island Day Trip",
		Location: "Punta Cana",
		Price:    89.0,
	}

	// PENDING agency cannot publish
	seedAgency(t, agencyRepo, 10, "PENDING")
	_, err := svc.Create(context.Background(), 10, input)
	assert.ErrorIs(t, err, ErrAgencyNotActive)

	// SUSPENDED agency cannot publish either
	seedAgency(t, agencyRepo, 11, "SUSPENDED")
	_, err = svc.Create(context.Background(), 11, input)
	assert.ErrorIs(t, err, ErrAgencyNotActive)

	// ACTIVE agency can
	seedAgency(t, agencyRepo, 12, "ACTIVE")
	tour, err := svc.Create(context.Background(), 12, input)
	require.NoError(t, err)
	assert.Equal(t, "PUBLISHED", tour.Status)
	assert.Equal(t, "USD", tour.Currency)
}

func TestCreateTour_NoAgencyProfile(t *testing.T) {
	svc, _, _, _ := newTestTourService()

	_, err := svc.Create(context.Background(), 99, &CreateTourInput{
		Title:    "Saona Island Day Trip",
		Location: "Punta Cana",
		Price:    89.0,
	})
	assert.ErrorIs(t, err, ErrAgencyNotFound)
}

func TestCreateTour_WithImagesAndDates(t *testing.T) {
	svc, _, agencyRepo, _ := newTestTourService()
	seedAgency(t, agencyRepo, 10, "ACTIVE")

	tour, err := svc.Create(context.Background(), 10, &CreateTourInput{
		Title:    "27 Waterfalls of Damajagua",
		Location: "Puerto Plata",
		Price:    65.0,
		Images: []TourImageInput{
			{URL: "https://cdn.example.com/a.jpg", Position: 0},
			{URL: "https://cdn.example.com/b.jpg", Position: 1},
		},
		Dates: []string{"2026-09-15", "2026-09-16"},
	})
	require.NoError(t, err)
	assert.Len(t, tour.Images, 2)
	assert.Len(t, tour.Dates, 2)

	// Malformed dates are rejected
	_, err = svc.Create(context.Background(), 10, &CreateTourInput{
		Title:    "Bad Dates",
		Location: "Puerto Plata",
		Price:    65.0,
		Dates:    []string{"15/09/2026"},
	})
	assert.Error(t, err)
}

func TestUpdateTour_Ownership(t *testing.T) {
	svc, _, agencyRepo, _ := newTestTourService()
	seedAgency(t, agencyRepo, 10, "ACTIVE")
	seedAgency(t, agencyRepo, 20, "ACTIVE")

	tour, err := svc.Create(context.Background(), 10, &CreateTourInput{
		Title:    "Catamaran Cruise",
		Location: "Bayahibe",
		Price:    120.0,
	})
	require.NoError(t, err)

	newTitle := "Catamaran Sunset Cruise"

	// Another agency may not touch it
	_, err = svc.Update(context.Background(), 20, "AGENCY", tour.ID, &UpdateTourInput{Title: newTitle})
	assert.ErrorIs(t, err, ErrNotTourOwner)

	// The owner may
	updated, err := svc.Update(context.Background(), 10, "AGENCY", tour.ID, &UpdateTourInput{Title: newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	// An admin bypasses ownership entirely
	_, err = svc.Update(context.Background(), 999, "ADMIN", tour.ID, &UpdateTourInput{Status: "PAUSED"})
	require.NoError(t, err)
}

func TestDeleteTour(t *testing.T) {
	svc, tourRepo, agencyRepo, _ := newTestTourService()
	seedAgency(t, agencyRepo, 10, "ACTIVE")
	seedAgency(t, agencyRepo, 20, "ACTIVE")

	tour, err := svc.Create(context.Background(), 10, &CreateTourInput{
		Title:    "Catamaran Cruise",
		Location: "Bayahibe",
		Price:    120.0,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 20, "AGENCY", tour.ID)
	assert.ErrorIs(t, err, ErrNotTourOwner)

	require.NoError(t, svc.Delete(context.Background(), 10, "AGENCY", tour.ID))
	_, err = tourRepo.GetByID(context.Background(), tour.ID)
	assert.Error(t, err)
}

func TestPromoteTour(t *testing.T) {
	svc, _, agencyRepo, planRepo := newTestTourService()
	seedAgency(t, agencyRepo, 10, "ACTIVE")

	require.NoError(t, planRepo.Create(context.Background(), &models.Plan{
		Slug: "featured-7", Kind: "AD", DurationDays: 7,
	}))
	require.NoError(t, planRepo.Create(context.Background(), &models.Plan{
		Slug: "pro-monthly", Kind: "MEMBERSHIP", DurationDays: 30,
	}))

	tour, err := svc.Create(context.Background(), 10, &CreateTourInput{
		Title:    "Whale Watching Samana",
		Location: "Samana",
		Price:    75.0,
	})
	require.NoError(t, err)
	assert.False(t, tour.IsFeatured(time.Now()))

	// A membership plan cannot be used as a tour promotion
	_, err = svc.Promote(context.Background(), 10, "AGENCY", tour.ID, "pro-monthly")
	assert.ErrorIs(t, err, ErrWrongPlanKind)

	_, err = svc.Promote(context.Background(), 10, "AGENCY", tour.ID, "no-such-plan")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	before := time.Now()
	promoted, err := svc.Promote(context.Background(), 10, "AGENCY", tour.ID, "featured-7")
	require.NoError(t, err)

	require.NotNil(t, promoted.FeaturedPlan)
	assert.Equal(t, "featured-7", *promoted.FeaturedPlan)
	require.NotNil(t, promoted.FeaturedExpiresAt)

	// Expiry lands 7 days out
	want := before.Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, want, *promoted.FeaturedExpiresAt, time.Minute)
	assert.True(t, promoted.IsFeatured(time.Now()))
}

func TestGetTour_HidesUnpublished(t *testing.T) {
	svc, _, agencyRepo, _ := newTestTourService()
	seedAgency(t, agencyRepo, 10, "ACTIVE")

	tour, err := svc.Create(context.Background(), 10, &CreateTourInput{
		Title:    "Cave Expedition",
		Location: "Santo Domingo",
		Price:    40.0,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 10, "AGENCY", tour.ID, &UpdateTourInput{Status: "PAUSED"})
	require.NoError(t, err)

	// Anonymous and foreign callers see nothing
	_, err = svc.Get(context.Background(), tour.ID, 0, "")
	assert.ErrorIs(t, err, ErrTourNotFound)
	_, err = svc.Get(context.Background(), tour.ID, 55, "USER")
	assert.ErrorIs(t, err, ErrTourNotFound)

	// The owner still sees it
	got, err := svc.Get(context.Background(), tour.ID, 10, "AGENCY")
	require.NoError(t, err)
	assert.Equal(t, "PAUSED", got.Status)

	// So does an admin
	_, err = svc.Get(context.Background(), tour.ID, 999, "ADMIN")
	require.NoError(t, err)
}

func TestListFeatured_ExcludesExpired(t *testing.T) {
	svc, tourRepo, agencyRepo, _ := newTestTourService()
	seedAgency(t, agencyRepo, 10, "ACTIVE")

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	slug := "featured-7"

	tourRepo.Create(context.Background(), &models.Tour{
		AgencyID: 1, Title: "Expired", Status: "PUBLISHED",
		FeaturedPlan: &slug, FeaturedExpiresAt: &past,
	})
	tourRepo.Create(context.Background(), &models.Tour{
		AgencyID: 1, Title: "Running", Status: "PUBLISHED",
		FeaturedPlan: &slug, FeaturedExpiresAt: &future,
	})

	tours, err := svc.ListFeatured(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "Running", tours[0].Title)
}
