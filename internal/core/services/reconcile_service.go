package services

import (
	"context"
	"errors"
	"log"
	"time"

	"caribe-tours/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconcileService closes the gap left by the non-transactional
// booking+payment write: a crash between the two steps leaves a booking
// with payment_status PENDING although its transaction row exists. The
// sweep promotes such bookings; it never creates or reverses payments.
type ReconcileService struct {
	bookingRepo     repositories.BookingRepository
	transactionRepo repositories.TransactionRepository
	refreshRepo     repositories.RefreshTokenRepository
	cron            *cron.Cron
}

// sweepBatchSize caps how many pending bookings one run inspects
const sweepBatchSize = 200

// NewReconcileService creates a new reconcile service
func NewReconcileService(
	bookingRepo repositories.BookingRepository,
	transactionRepo repositories.TransactionRepository,
	refreshRepo repositories.RefreshTokenRepository,
) *ReconcileService {
	return &ReconcileService{
		bookingRepo:     bookingRepo,
		transactionRepo: transactionRepo,
		refreshRepo:     refreshRepo,
	}
}

// Start schedules the reconciliation sweep (every 10 minutes) and the
// nightly expired-token cleanup
func (s *ReconcileService) Start() {
	s.cron = cron.New()

	s.cron.AddFunc("*/10 * * * *", func() {
		s.ReconcilePayments(context.Background())
	})

	s.cron.AddFunc("30 3 * * *", func() {
		if err := s.refreshRepo.DeleteExpired(context.Background()); err != nil {
			log.Printf("❌ Expired token cleanup error: %v", err)
		}
	})

	s.cron.Start()
	log.Println("🚀 ReconcileService started")
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *ReconcileService) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("🛑 ReconcileService stopped")
}

// ReconcilePayments promotes bookings that have a recorded payment
// transaction but a stale payment_status
func (s *ReconcileService) ReconcilePayments(ctx context.Context) {
	bookings, err := s.bookingRepo.ListPaymentPending(ctx, sweepBatchSize)
	if err != nil {
		log.Printf("❌ Reconcile query error: %v", err)
		return
	}

	fixed := 0
	for _, booking := range bookings {
		_, err := s.transactionRepo.GetPaidByBookingID(ctx, booking.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // genuinely unpaid, nothing to reconcile
			}
			log.Printf("❌ Reconcile lookup error for booking %d: %v", booking.ID, err)
			continue
		}

		if booking.Status == "PENDING" {
			booking.Status = "CONFIRMED"
		}
		booking.PaymentStatus = "PAID"

		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			log.Printf("❌ Reconcile update error for booking %d: %v", booking.ID, err)
			continue
		}
		fixed++

		sweepTime := time.Now().Format(time.RFC3339)
		log.Printf("🔧 Reconciled booking %d to CONFIRMED/PAID at %s", booking.ID, sweepTime)
	}

	if fixed > 0 {
		log.Printf("🔧 Reconciled %d bookings with recorded payments", fixed)
	}
}
