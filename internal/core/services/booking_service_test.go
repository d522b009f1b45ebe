package services

import (
	"context"
	"errors"
	"testing"

	"caribe-tours/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	svc        *BookingService
	userRepo   *fakeUserRepo
	tourRepo   *fakeTourRepo
	agencyRepo *fakeAgencyRepo
	txRepo     *fakeTransactionRepo
	bookings   *fakeBookingRepo

	traveler *models.User
	agency   *models.AgencyProfile
	tour     *models.Tour
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		userRepo:   newFakeUserRepo(),
		tourRepo:   newFakeTourRepo(),
		agencyRepo: newFakeAgencyRepo(),
		txRepo:     newFakeTransactionRepo(),
		bookings:   newFakeBookingRepo(),
	}
	f.svc = NewBookingService(f.bookings, f.tourRepo, f.userRepo, f.agencyRepo, f.txRepo)

	ctx := context.Background()

	f.traveler = &models.User{Email: "maria@example.com", Name: "Maria", Role: "USER", IsActive: true}
	require.NoError(t, f.userRepo.Create(ctx, f.traveler))

	agencyOwner := &models.User{Email: "tours@example.com", Name: "Pedro", Role: "AGENCY", IsActive: true}
	require.NoError(t, f.userRepo.Create(ctx, agencyOwner))

	f.agency = &models.AgencyProfile{UserID: agencyOwner.ID, Name: "Punta Cana Tours", Status: "ACTIVE", Tier: "FREE"}
	require.NoError(t, f.agencyRepo.Create(ctx, f.agency))

	f.tour = &models.Tour{AgencyID: f.agency.ID, Title: "Saona Island Day Trip", Location: "Punta Cana", Price: 89, Currency: "USD", Status: "PUBLISHED"}
	require.NoError(t, f.tourRepo.Create(ctx, f.tour))

	return f
}

func (f *bookingFixture) agencyUserID() uint {
	return f.agency.UserID
}

func TestCreateBooking_WithInlinePayment(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:         f.tour.ID,
		Date:           "2026-09-15",
		People:         2,
		TotalPrice:     178,
		PaymentMethod:  "paypal",
		PaymentDetails: &PaymentDetails{ID: "ORDER123"},
	})
	require.NoError(t, err)

	// The captured payment confirms the booking on the spot
	assert.Equal(t, "CONFIRMED", booking.Status)
	assert.Equal(t, "PAID", booking.PaymentStatus)

	// Exactly one transaction row, carrying the order id
	require.Len(t, f.txRepo.txs, 1)
	tx := f.txRepo.txs[0]
	assert.Equal(t, "ORDER123", tx.PaypalOrderID)
	assert.Equal(t, f.agency.ID, tx.AgencyID)
	require.NotNil(t, tx.BookingID)
	assert.Equal(t, booking.ID, *tx.BookingID)
	assert.Equal(t, models.TxTypeBooking, tx.Type)
	assert.Equal(t, 178.0, tx.Amount)
}

func TestCreateBooking_WithoutPayment(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:        f.tour.ID,
		Date:          "2026-09-15",
		People:        2,
		TotalPrice:    178,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", booking.Status)
	assert.Equal(t, "PENDING", booking.PaymentStatus)
	assert.Empty(t, f.txRepo.txs)
}

func TestCreateBooking_TransactionInsertFailureIsSwallowed(t *testing.T) {
	f := newBookingFixture(t)
	f.txRepo.createErr = errors.New("connection reset")

	// The booking write succeeds even though the payment recording fails
	booking, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:         f.tour.ID,
		Date:           "2026-09-15",
		People:         2,
		TotalPrice:     178,
		PaymentMethod:  "paypal",
		PaymentDetails: &PaymentDetails{ID: "ORDER123"},
	})
	require.NoError(t, err)

	// The booking stays pending until the reconciler catches up
	assert.Equal(t, "PENDING", booking.Status)
	assert.Equal(t, "PENDING", booking.PaymentStatus)

	stored, err := f.bookings.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", stored.PaymentStatus)
}

func TestCreateBooking_StaleSession(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.userRepo.Delete(context.Background(), f.traveler.ID))

	_, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:     f.tour.ID,
		Date:       "2026-09-15",
		People:     2,
		TotalPrice: 178,
	})
	assert.ErrorIs(t, err, ErrStaleSession)
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateBooking_MissingTour(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:     9999,
		Date:       "2026-09-15",
		People:     2,
		TotalPrice: 178,
	})
	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:     f.tour.ID,
		Date:       "2026-09-15",
		People:     0,
		TotalPrice: 178,
	})
	assert.ErrorIs(t, err, ErrInvalidBookingData)

	_, err = f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:     f.tour.ID,
		Date:       "next tuesday",
		People:     2,
		TotalPrice: 178,
	})
	assert.ErrorIs(t, err, ErrInvalidBookingData)
}

func TestGetBooking_Visibility(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:     f.tour.ID,
		Date:       "2026-09-15",
		People:     2,
		TotalPrice: 178,
	})
	require.NoError(t, err)

	// Traveler sees their own booking
	_, err = f.svc.Get(context.Background(), f.traveler.ID, "USER", booking.ID)
	require.NoError(t, err)

	// The owning agency sees it
	_, err = f.svc.Get(context.Background(), f.agencyUserID(), "AGENCY", booking.ID)
	require.NoError(t, err)

	// An admin sees it
	_, err = f.svc.Get(context.Background(), 999, "ADMIN", booking.ID)
	require.NoError(t, err)

	// A stranger gets not-found, not forbidden
	stranger := &models.User{Email: "eve@example.com", Role: "USER", IsActive: true}
	require.NoError(t, f.userRepo.Create(context.Background(), stranger))
	_, err = f.svc.Get(context.Background(), stranger.ID, "USER", booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateBookingStatus(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:     f.tour.ID,
		Date:       "2026-09-15",
		People:     2,
		TotalPrice: 178,
	})
	require.NoError(t, err)

	// Unknown status
	_, err = f.svc.UpdateStatus(context.Background(), f.agencyUserID(), booking.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidBookingData)

	// A different agency owner may not confirm it
	otherOwner := &models.User{Email: "other@example.com", Role: "AGENCY", IsActive: true}
	require.NoError(t, f.userRepo.Create(context.Background(), otherOwner))
	require.NoError(t, f.agencyRepo.Create(context.Background(), &models.AgencyProfile{
		UserID: otherOwner.ID, Name: "Other Tours", Status: "ACTIVE", Tier: "FREE",
	}))
	_, err = f.svc.UpdateStatus(context.Background(), otherOwner.ID, booking.ID, "CONFIRMED")
	assert.ErrorIs(t, err, ErrNotBookingAgency)

	// The owning agency confirms; payment status is untouched
	updated, err := f.svc.UpdateStatus(context.Background(), f.agencyUserID(), booking.ID, "CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", updated.Status)
	assert.Equal(t, "PENDING", updated.PaymentStatus)
}

func TestSubmitReceipt(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.svc.Create(context.Background(), f.traveler.ID, &CreateBookingInput{
		TourID:     f.tour.ID,
		Date:       "2026-09-15",
		People:     2,
		TotalPrice: 178,
	})
	require.NoError(t, err)

	_, err = f.svc.SubmitReceipt(context.Background(), f.traveler.ID, booking.ID, "")
	assert.ErrorIs(t, err, ErrInvalidBookingData)

	// Only the traveler who booked may attach a receipt
	_, err = f.svc.SubmitReceipt(context.Background(), f.agencyUserID(), booking.ID, "https://cdn.example.com/receipt.pdf")
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	updated, err := f.svc.SubmitReceipt(context.Background(), f.traveler.ID, booking.ID, "https://cdn.example.com/receipt.pdf")
	require.NoError(t, err)
	require.NotNil(t, updated.ReceiptURL)
	assert.Equal(t, "https://cdn.example.com/receipt.pdf", *updated.ReceiptURL)
}
