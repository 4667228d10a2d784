package referral

import (
	"context"

	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/referral"
)

type Summary struct {
	Discount           float64 `json:"discount"`
	Payout             float64 `json:"payout"`
	PendingPayoutTotal float64 `json:"pending_payout_total"`
	ActiveReferrals    int     `json:"active_referrals"`
}

type GetSummary struct {
	repo domain.Repository
}

func NewGetSummary(repo domain.Repository) *GetSummary {
	return &GetSummary{repo: repo}
}

func (uc *GetSummary) Execute(ctx context.Context, userID uint) (*Summary, error) {
	activeCount, err := uc.repo.CountActiveByReferrer(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.repo.SumPendingByReferrer(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Discount:           domain.Discount(activeCount),
		Payout:             domain.Payout(activeCount),
		PendingPayoutTotal: pending,
		ActiveReferrals:    activeCount,
	}, nil
}
