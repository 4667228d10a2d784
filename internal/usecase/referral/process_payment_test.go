package referral

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/referral"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

// fakeReferralRepo keeps referral edges and payouts in memory and enforces
// the accrual key the way the unique index does.
type fakeReferralRepo struct {
	referrals []*models.Referral
	payouts   []*models.ReferralPayout
	nextID    uint
}

var _ domain.Repository = (*fakeReferralRepo)(nil)

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{nextID: 1}
}

func (f *fakeReferralRepo) addReferral(referrerID, refereeID uint) {
	f.referrals = append(f.referrals, &models.Referral{
		ID:         f.nextID,
		ReferrerID: referrerID,
		RefereeID:  refereeID,
		Active:     true,
	})
	f.nextID++
}

func (f *fakeReferralRepo) CountActiveByReferrer(_ context.Context, referrerID uint) (int, error) {
	n := 0
	for _, r := range f.referrals {
		if r.ReferrerID == referrerID && r.Active {
			n++
		}
	}
	return n, nil
}

func (f *fakeReferralRepo) ListActiveByReferee(_ context.Context, refereeID uint) ([]models.Referral, error) {
	var out []models.Referral
	for _, r := range f.referrals {
		if r.RefereeID == refereeID && r.Active {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReferralRepo) DeactivateByReferee(_ context.Context, refereeID uint) error {
	for _, r := range f.referrals {
		if r.RefereeID == refereeID && r.Active {
			r.Active = false
			now := time.Now()
			r.DeactivatedAt = &now
		}
	}
	return nil
}

func (f *fakeReferralRepo) CreatePayout(_ context.Context, payout *models.ReferralPayout) (bool, error) {
	for _, p := range f.payouts {
		if p.ReferrerID == payout.ReferrerID && p.RefereeID == payout.RefereeID && p.Period == payout.Period {
			return false, nil
		}
	}
	payout.ID = f.nextID
	f.nextID++
	f.payouts = append(f.payouts, payout)
	return true, nil
}

func (f *fakeReferralRepo) CancelPendingByReferee(_ context.Context, refereeID uint) error {
	for _, p := range f.payouts {
		if p.RefereeID == refereeID && p.Status == models.PayoutStatusPending {
			p.Status = models.PayoutStatusCancelled
		}
	}
	return nil
}

func (f *fakeReferralRepo) SumPendingByReferrer(_ context.Context, referrerID uint) (float64, error) {
	var total float64
	for _, p := range f.payouts {
		if p.ReferrerID == referrerID && p.Status == models.PayoutStatusPending {
			total += p.Amount
		}
	}
	return total, nil
}

var march = time.Date(2030, 3, 15, 12, 0, 0, 0, time.UTC)

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("below the free tier accrues nothing", func(t *testing.T) {
		repo := newFakeReferralRepo()
		repo.addReferral(1, 100)
		repo.addReferral(1, 101)
		repo.addReferral(1, 102)
		uc := NewProcessPayment(repo, nil, nil)

		require.NoError(t, uc.Execute(ctx, 100, march))
		assert.Empty(t, repo.payouts)
	})

	t.Run("fourth active referral starts paying out", func(t *testing.T) {
		repo := newFakeReferralRepo()
		for i := uint(100); i < 104; i++ {
			repo.addReferral(1, i)
		}
		uc := NewProcessPayment(repo, nil, nil)

		require.NoError(t, uc.Execute(ctx, 103, march))
		require.Len(t, repo.payouts, 1)

		p := repo.payouts[0]
		assert.Equal(t, uint(1), p.ReferrerID)
		assert.Equal(t, uint(103), p.RefereeID)
		assert.Equal(t, "2030-03", p.Period)
		assert.Equal(t, 10.0, p.Amount)
		assert.Equal(t, models.PayoutStatusPending, p.Status)
	})

	t.Run("webhook retry accrues once per period", func(t *testing.T) {
		repo := newFakeReferralRepo()
		for i := uint(100); i < 104; i++ {
			repo.addReferral(1, i)
		}
		uc := NewProcessPayment(repo, nil, nil)

		require.NoError(t, uc.Execute(ctx, 103, march))
		require.NoError(t, uc.Execute(ctx, 103, march))
		assert.Len(t, repo.payouts, 1)

		// A new billing period accrues again.
		require.NoError(t, uc.Execute(ctx, 103, march.AddDate(0, 1, 0)))
		assert.Len(t, repo.payouts, 2)
	})

	t.Run("payer with no active referral is a no-op", func(t *testing.T) {
		repo := newFakeReferralRepo()
		uc := NewProcessPayment(repo, nil, nil)

		require.NoError(t, uc.Execute(ctx, 999, march))
		assert.Empty(t, repo.payouts)
	})
}

func TestCancelPayment(t *testing.T) {
	ctx := context.Background()

	repo := newFakeReferralRepo()
	for i := uint(100); i < 104; i++ {
		repo.addReferral(1, i)
	}
	process := NewProcessPayment(repo, nil, nil)
	require.NoError(t, process.Execute(ctx, 103, march))
	require.Len(t, repo.payouts, 1)

	// Paid rows survive cancellation, pending rows do not.
	repo.payouts[0].Status = models.PayoutStatusPaid
	_, err := repo.CreatePayout(ctx, &models.ReferralPayout{
		ReferrerID: 1, RefereeID: 103, Period: "2030-04",
		Amount: 10, Status: models.PayoutStatusPending,
	})
	require.NoError(t, err)

	cancel := NewCancelPayment(repo, nil)
	require.NoError(t, cancel.Execute(ctx, 103))

	n, err := repo.CountActiveByReferrer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, models.PayoutStatusPaid, repo.payouts[0].Status)
	assert.Equal(t, models.PayoutStatusCancelled, repo.payouts[1].Status)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()

	repo := newFakeReferralRepo()
	for i := uint(100); i < 105; i++ {
		repo.addReferral(1, i)
	}
	repo.payouts = append(repo.payouts,
		&models.ReferralPayout{ReferrerID: 1, RefereeID: 103, Period: "2030-03", Amount: 10, Status: models.PayoutStatusPending},
		&models.ReferralPayout{ReferrerID: 1, RefereeID: 104, Period: "2030-03", Amount: 20, Status: models.PayoutStatusPending},
		&models.ReferralPayout{ReferrerID: 1, RefereeID: 104, Period: "2030-02", Amount: 20, Status: models.PayoutStatusPaid},
	)

	uc := NewGetSummary(repo)
	summary, err := uc.Execute(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 30.0, summary.Discount)
	assert.Equal(t, 20.0, summary.Payout)
	assert.Equal(t, 30.0, summary.PendingPayoutTotal)
	assert.Equal(t, 5, summary.ActiveReferrals)
}
