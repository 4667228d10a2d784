package referral

import (
	"context"

	"github.com/Pedrolamon/hairdayy-sub000/internal/audit"
	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/referral"
)

type CancelPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelPayment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CancelPayment {
	return &CancelPayment{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute reverses the referral state when a referred user cancels their
// subscription: every referral pointing at them is deactivated, and any
// still-pending payout traced to them is cancelled. Paid payouts stay paid.
func (uc *CancelPayment) Execute(
	ctx context.Context,
	refereeID uint,
) error {

	if err := uc.repo.DeactivateByReferee(ctx, refereeID); err != nil {
		return err
	}

	if err := uc.repo.CancelPendingByReferee(ctx, refereeID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &refereeID,
		Action: "referral_cancelled",
		Entity: "referral",
	})

	return nil
}
