package services

import (
	"context"
	"testing"
	"time"

	"caribe-tours/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgencyService(t *testing.T) (*AgencyService, *fakeAgencyRepo, *fakeBankAccountRepo) {
	t.Helper()
	agencyRepo := newFakeAgencyRepo()
	bankAccountRepo := newFakeBankAccountRepo()
	txRepo := newFakeTransactionRepo()
	return NewAgencyService(agencyRepo, bankAccountRepo, txRepo), agencyRepo, bankAccountRepo
}

func TestUpdateAgencyProfile(t *testing.T) {
	svc, agencyRepo, _ := newTestAgencyService(t)
	ctx := context.Background()

	agency := &models.AgencyProfile{UserID: 1, Name: "Bayahibe Tours", Status: "ACTIVE", Tier: "FREE", CommissionRate: 10}
	require.NoError(t, agencyRepo.Create(ctx, agency))

	// Partial update: empty fields keep their current value
	updated, err := svc.UpdateProfile(ctx, 1, &UpdateProfileInput{Description: "Catamaran and snorkel trips"})
	require.NoError(t, err)
	assert.Equal(t, "Bayahibe Tours", updated.Name)
	assert.Equal(t, "Catamaran and snorkel trips", updated.Description)

	_, err = svc.UpdateProfile(ctx, 99, &UpdateProfileInput{Name: "Nope"})
	assert.ErrorIs(t, err, ErrAgencyNotFound)
}

func TestSetAgencyStatus(t *testing.T) {
	svc, agencyRepo, _ := newTestAgencyService(t)
	ctx := context.Background()

	agency := &models.AgencyProfile{UserID: 1, Name: "Bayahibe Tours", Status: "PENDING", Tier: "FREE", IsVerified: true}
	require.NoError(t, agencyRepo.Create(ctx, agency))

	updated, err := svc.SetStatus(ctx, agency.ID, "ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", updated.Status)
	// The verified display flag is independent of the operational status
	assert.True(t, updated.IsVerified)

	_, err = svc.SetStatus(ctx, agency.ID, "BANNED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	suspended, err := svc.SetStatus(ctx, agency.ID, "SUSPENDED")
	require.NoError(t, err)
	assert.True(t, suspended.IsVerified)
}

func TestSetAgencyVerified(t *testing.T) {
	svc, agencyRepo, _ := newTestAgencyService(t)
	ctx := context.Background()

	agency := &models.AgencyProfile{UserID: 1, Name: "Bayahibe Tours", Status: "PENDING", Tier: "FREE"}
	require.NoError(t, agencyRepo.Create(ctx, agency))

	updated, err := svc.SetVerified(ctx, agency.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
	// Verification does not activate the agency
	assert.Equal(t, "PENDING", updated.Status)
}

func TestSetCommissionRate(t *testing.T) {
	svc, agencyRepo, _ := newTestAgencyService(t)
	ctx := context.Background()

	agency := &models.AgencyProfile{UserID: 1, Name: "Bayahibe Tours", Status: "ACTIVE", Tier: "FREE", CommissionRate: 10}
	require.NoError(t, agencyRepo.Create(ctx, agency))

	updated, err := svc.SetCommissionRate(ctx, agency.ID, 12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.CommissionRate)

	_, err = svc.SetCommissionRate(ctx, agency.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidCommission)

	_, err = svc.SetCommissionRate(ctx, agency.ID, 101)
	assert.ErrorIs(t, err, ErrInvalidCommission)

	_, err = svc.SetCommissionRate(ctx, 9999, 10)
	assert.ErrorIs(t, err, ErrAgencyNotFound)
}

func TestListTransactionsByAgencyID(t *testing.T) {
	agencyRepo := newFakeAgencyRepo()
	bankRepo := newFakeBankAccountRepo()
	txRepo := newFakeTransactionRepo()
	svc := NewAgencyService(agencyRepo, bankRepo, txRepo)
	ctx := context.Background()

	agency := &models.AgencyProfile{UserID: 1, Name: "Bayahibe Tours", Status: "ACTIVE", Tier: "FREE"}
	require.NoError(t, agencyRepo.Create(ctx, agency))
	require.NoError(t, txRepo.Create(ctx, &models.AgencyTransaction{
		AgencyID:      agency.ID,
		PaypalOrderID: "ORDER-1",
		Amount:        29.99,
		Currency:      "USD",
		Method:        "paypal",
		Type:          models.TxTypeMembershipPro,
	}))

	txs, total, err := svc.ListTransactionsByAgencyID(ctx, agency.ID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txs, 1)
	assert.Equal(t, "ORDER-1", txs[0].PaypalOrderID)

	_, _, err = svc.ListTransactionsByAgencyID(ctx, 9999, 0, 20)
	assert.ErrorIs(t, err, ErrAgencyNotFound)
}

func TestRemoveBankAccount(t *testing.T) {
	svc, agencyRepo, bankRepo := newTestAgencyService(t)
	ctx := context.Background()

	require.NoError(t, agencyRepo.Create(ctx, &models.AgencyProfile{UserID: 1, Name: "A", Status: "ACTIVE", Tier: "FREE"}))
	require.NoError(t, agencyRepo.Create(ctx, &models.AgencyProfile{UserID: 2, Name: "B", Status: "ACTIVE", Tier: "FREE"}))

	account, err := svc.AddBankAccount(ctx, 1, &AddBankAccountInput{
		BankName:      "Banco Popular",
		AccountName:   "A SRL",
		AccountNumber: "789456123",
	})
	require.NoError(t, err)
	assert.Equal(t, "DOP", account.Currency)

	// A different agency cannot remove it
	err = svc.RemoveBankAccount(ctx, 2, account.ID)
	assert.ErrorIs(t, err, ErrNotAccountOwner)

	require.NoError(t, svc.RemoveBankAccount(ctx, 1, account.ID))
	assert.ErrorIs(t, svc.RemoveBankAccount(ctx, 1, account.ID), ErrBankAccountNotFound)

	accounts, err := svc.ListBankAccounts(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = bankRepo.GetByID(ctx, account.ID)
	assert.Error(t, err)
}

func TestEffectiveCommissionRate(t *testing.T) {
	svc, _, _ := newTestAgencyService(t)
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	free := &models.AgencyProfile{Tier: "FREE", CommissionRate: 10}
	assert.Equal(t, 10.0, svc.EffectiveCommissionRate(free, now))

	pro := &models.AgencyProfile{Tier: "PRO", TierExpiresAt: &future, CommissionRate: 10}
	assert.Equal(t, 5.0, svc.EffectiveCommissionRate(pro, now))

	// An expired PRO tier falls back to the full rate without a write
	expired := &models.AgencyProfile{Tier: "PRO", TierExpiresAt: &past, CommissionRate: 10}
	assert.Equal(t, 10.0, svc.EffectiveCommissionRate(expired, now))
}
