package services

import (
	"context"
	"strings"
	"time"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests.
// They mirror the real repositories' contract: missing rows surface as
// gorm.ErrRecordNotFound, IDs are assigned on Create.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(r.users)), nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken), nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	t, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	t, err := r.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	return r.Revoke(ctx, t.ID)
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for id, t := range r.tokens {
		if t.IsExpired() {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) activeCount(userID uint) int {
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && !t.IsRevoked() {
			n++
		}
	}
	return n
}

type fakeAgencyRepo struct {
	agencies map[uint]*models.AgencyProfile
	nextID   uint
}

func newFakeAgencyRepo() *fakeAgencyRepo {
	return &fakeAgencyRepo{agencies: make(map[uint]*models.AgencyProfile), nextID: 1}
}

func (r *fakeAgencyRepo) Create(_ context.Context, agency *models.AgencyProfile) error {
	agency.ID = r.nextID
	r.nextID++
	r.agencies[agency.ID] = agency
	return nil
}

func (r *fakeAgencyRepo) GetByID(_ context.Context, id uint) (*models.AgencyProfile, error) {
	a, ok := r.agencies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAgencyRepo) GetByUserID(_ context.Context, userID uint) (*models.AgencyProfile, error) {
	for _, a := range r.agencies {
		if a.UserID == userID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAgencyRepo) Update(_ context.Context, agency *models.AgencyProfile) error {
	if _, ok := r.agencies[agency.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.agencies[agency.ID] = agency
	return nil
}

func (r *fakeAgencyRepo) List(_ context.Context, offset, limit int) ([]*models.AgencyProfile, int64, error) {
	var out []*models.AgencyProfile
	for _, a := range r.agencies {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAgencyRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]*models.AgencyProfile, int64, error) {
	var out []*models.AgencyProfile
	for _, a := range r.agencies {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

type fakeBankAccountRepo struct {
	accounts map[uint]*models.BankAccount
	nextID   uint
}

func newFakeBankAccountRepo() *fakeBankAccountRepo {
	return &fakeBankAccountRepo{accounts: make(map[uint]*models.BankAccount), nextID: 1}
}

func (r *fakeBankAccountRepo) Create(_ context.Context, account *models.BankAccount) error {
	account.ID = r.nextID
	r.nextID++
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeBankAccountRepo) GetByID(_ context.Context, id uint) (*models.BankAccount, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeBankAccountRepo) ListByAgency(_ context.Context, agencyID uint) ([]*models.BankAccount, error) {
	var out []*models.BankAccount
	for _, a := range r.accounts {
		if a.AgencyID == agencyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeBankAccountRepo) Delete(_ context.Context, id uint) error {
	delete(r.accounts, id)
	return nil
}

type fakeTourRepo struct {
	tours  map[uint]*models.Tour
	nextID uint
}

func newFakeTourRepo() *fakeTourRepo {
	return &fakeTourRepo{tours: make(map[uint]*models.Tour), nextID: 1}
}

func (r *fakeTourRepo) Create(_ context.Context, tour *models.Tour) error {
	tour.ID = r.nextID
	r.nextID++
	r.tours[tour.ID] = tour
	return nil
}

func (r *fakeTourRepo) GetByID(_ context.Context, id uint) (*models.Tour, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTourRepo) Update(_ context.Context, tour *models.Tour) error {
	if _, ok := r.tours[tour.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tours[tour.ID] = tour
	return nil
}

func (r *fakeTourRepo) Archive(_ context.Context, id uint) error {
	if _, ok := r.tours[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.tours, id)
	return nil
}

func (r *fakeTourRepo) HardDelete(_ context.Context, id uint) error {
	delete(r.tours, id)
	return nil
}

func (r *fakeTourRepo) ListPublished(_ context.Context, filter repositories.TourFilter) ([]*models.Tour, int64, error) {
	var out []*models.Tour
	for _, t := range r.tours {
		if t.Status != "PUBLISHED" {
			continue
		}
		if filter.Location != "" && !strings.Contains(t.Location, filter.Location) {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTourRepo) ListFeatured(_ context.Context, now time.Time, limit int) ([]*models.Tour, error) {
	var out []*models.Tour
	for _, t := range r.tours {
		if t.Status == "PUBLISHED" && t.IsFeatured(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTourRepo) ListByAgency(_ context.Context, agencyID uint, offset, limit int) ([]*models.Tour, int64, error) {
	var out []*models.Tour
	for _, t := range r.tours {
		if t.AgencyID == agencyID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTourRepo) ReplaceImages(_ context.Context, tourID uint, images []models.TourImage) error {
	t, ok := r.tours[tourID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Images = images
	return nil
}

func (r *fakeTourRepo) ReplaceDates(_ context.Context, tourID uint, dates []models.TourAvailability) error {
	t, ok := r.tours[tourID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Dates = dates
	return nil
}

type fakeBookingRepo struct {
	bookings  map[uint]*models.Booking
	nextID    uint
	createErr error
	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uint]*models.Booking), nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.bookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) HardDelete(_ context.Context, id uint) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error) {
	var out []*models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListByAgency(_ context.Context, agencyID uint, offset, limit int) ([]*models.Booking, int64, error) {
	// The fake cannot join on tours, agency scoping is tested via the service
	var out []*models.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListPaymentPending(_ context.Context, limit int) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range r.bookings {
		if b.PaymentStatus == "PENDING" {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	txs       []*models.AgencyTransaction
	nextID    uint
	createErr error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{nextID: 1}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *models.AgencyTransaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	tx.ID = r.nextID
	r.nextID++
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeTransactionRepo) GetByOrderID(_ context.Context, orderID string) (*models.AgencyTransaction, error) {
	for _, tx := range r.txs {
		if tx.PaypalOrderID == orderID {
			return tx, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTransactionRepo) GetPaidByBookingID(_ context.Context, bookingID uint) (*models.AgencyTransaction, error) {
	for _, tx := range r.txs {
		if tx.BookingID != nil && *tx.BookingID == bookingID {
			return tx, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTransactionRepo) ListByAgency(_ context.Context, agencyID uint, offset, limit int) ([]*models.AgencyTransaction, int64, error) {
	var out []*models.AgencyTransaction
	for _, tx := range r.txs {
		if tx.AgencyID == agencyID {
			out = append(out, tx)
		}
	}
	return out, int64(len(out)), nil
}

type fakePlanRepo struct {
	plans map[string]*models.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*models.Plan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *models.Plan) error {
	plan.ID = uint(len(r.plans) + 1)
	r.plans[plan.Slug] = plan
	return nil
}

func (r *fakePlanRepo) GetBySlug(_ context.Context, slug string) (*models.Plan, error) {
	p, ok := r.plans[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePlanRepo) List(_ context.Context, kind string) ([]*models.Plan, error) {
	var out []*models.Plan
	for _, p := range r.plans {
		if kind == "" || p.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.plans)), nil
}
