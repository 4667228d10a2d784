package referral

import (
	"context"
	"fmt"
	"time"

	"github.com/Pedrolamon/hairdayy-sub000/internal/audit"
	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/referral"
	"github.com/Pedrolamon/hairdayy-sub000/internal/metrics"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/notification"
)

type ProcessPayment struct {
	repo     domain.Repository
	notifier notification.Notifier
	audit    *audit.Dispatcher
}

func NewProcessPayment(
	repo domain.Repository,
	notifier notification.Notifier,
	auditDispatcher *audit.Dispatcher,
) *ProcessPayment {
	return &ProcessPayment{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
	}
}

// Execute accrues payouts after a referred user pays their subscription.
// For each referrer holding an active referral from the payer, the payout
// tier is recomputed and at most one pending payout row is created per
// billing period; the unique accrual key makes webhook retries and
// concurrent deliveries idempotent.
func (uc *ProcessPayment) Execute(
	ctx context.Context,
	refereeID uint,
	paidAt time.Time,
) error {

	period := paidAt.Format("2006-01")

	referrals, err := uc.repo.ListActiveByReferee(ctx, refereeID)
	if err != nil {
		return err
	}

	for _, ref := range referrals {
		activeCount, err := uc.repo.CountActiveByReferrer(ctx, ref.ReferrerID)
		if err != nil {
			return err
		}

		if activeCount == 1 {
			// First active referral just landed for this referrer.
			notification.Dispatch(ctx, uc.notifier, ref.ReferrerID,
				"Indicação confirmada",
				"Sua primeira indicação ativa gerou desconto na assinatura.",
				map[string]string{"referral_id": fmt.Sprint(ref.ID)},
			)
		}

		amount := domain.Payout(activeCount)
		if amount <= 0 {
			continue
		}

		payout := &models.ReferralPayout{
			ReferrerID: ref.ReferrerID,
			RefereeID:  refereeID,
			Period:     period,
			Amount:     amount,
			Status:     models.PayoutStatusPending,
			Note:       fmt.Sprintf("Indicação #%d, período %s", ref.ID, period),
		}

		created, err := uc.repo.CreatePayout(ctx, payout)
		if err != nil {
			return err
		}
		if !created {
			continue
		}

		metrics.ReferralPayoutsAccrued.Inc()

		uc.audit.Dispatch(audit.Event{
			UserID:   &ref.ReferrerID,
			Action:   "referral_payout_accrued",
			Entity:   "referral_payout",
			EntityID: &payout.ID,
		})
	}

	return nil
}
