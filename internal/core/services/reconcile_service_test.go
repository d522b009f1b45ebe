package services

import (
	"context"
	"testing"

	"caribe-tours/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilePayments(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	txRepo := newFakeTransactionRepo()
	refreshRepo := newFakeRefreshTokenRepo()
	svc := NewReconcileService(bookingRepo, txRepo, refreshRepo)

	ctx := context.Background()

	// Booking with a recorded payment but a stale status: the crash window
	// between the booking insert and the transaction insert
	orphaned := &models.Booking{UserID: 1, TourID: 1, Status: "PENDING", PaymentStatus: "PENDING"}
	require.NoError(t, bookingRepo.Create(ctx, orphaned))
	require.NoError(t, txRepo.Create(ctx, &models.AgencyTransaction{
		AgencyID:      1,
		BookingID:     &orphaned.ID,
		PaypalOrderID: "ORDER-ORPHAN",
		Amount:        120,
		Currency:      "USD",
		Method:        "paypal",
		Type:          models.TxTypeBooking,
	}))

	// Genuinely unpaid booking, must not be touched
	unpaid := &models.Booking{UserID: 2, TourID: 1, Status: "PENDING", PaymentStatus: "PENDING"}
	require.NoError(t, bookingRepo.Create(ctx, unpaid))

	// Cancelled booking with a payment: payment_status is corrected but the
	// booking status is not resurrected
	cancelled := &models.Booking{UserID: 3, TourID: 1, Status: "CANCELLED", PaymentStatus: "PENDING"}
	require.NoError(t, bookingRepo.Create(ctx, cancelled))
	require.NoError(t, txRepo.Create(ctx, &models.AgencyTransaction{
		AgencyID:      1,
		BookingID:     &cancelled.ID,
		PaypalOrderID: "ORDER-CANCELLED",
		Amount:        80,
		Currency:      "USD",
		Method:        "paypal",
		Type:          models.TxTypeBooking,
	}))

	svc.ReconcilePayments(ctx)

	assert.Equal(t, "CONFIRMED", orphaned.Status)
	assert.Equal(t, "PAID", orphaned.PaymentStatus)

	assert.Equal(t, "PENDING", unpaid.Status)
	assert.Equal(t, "PENDING", unpaid.PaymentStatus)

	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.Equal(t, "PAID", cancelled.PaymentStatus)
}

func TestReconcilePayments_Idempotent(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	txRepo := newFakeTransactionRepo()
	svc := NewReconcileService(bookingRepo, txRepo, newFakeRefreshTokenRepo())

	ctx := context.Background()

	booking := &models.Booking{UserID: 1, TourID: 1, Status: "PENDING", PaymentStatus: "PENDING"}
	require.NoError(t, bookingRepo.Create(ctx, booking))
	require.NoError(t, txRepo.Create(ctx, &models.AgencyTransaction{
		AgencyID:      1,
		BookingID:     &booking.ID,
		PaypalOrderID: "ORDER-1",
		Amount:        50,
		Currency:      "USD",
		Method:        "paypal",
		Type:          models.TxTypeBooking,
	}))

	svc.ReconcilePayments(ctx)
	svc.ReconcilePayments(ctx)

	assert.Equal(t, "CONFIRMED", booking.Status)
	assert.Equal(t, "PAID", booking.PaymentStatus)
	assert.Len(t, txRepo.txs, 1)
}
