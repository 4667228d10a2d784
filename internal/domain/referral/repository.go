package referral

import (
	"context"

	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

type Repository interface {
	// -------- Referral edges --------
	CountActiveByReferrer(
		ctx context.Context,
		referrerID uint,
	) (int, error)

	ListActiveByReferee(
		ctx context.Context,
		refereeID uint,
	) ([]models.Referral, error)

	DeactivateByReferee(
		ctx context.Context,
		refereeID uint,
	) error

	// -------- Payouts --------

	// CreatePayout inserts a pending payout row. The (referrer, referee,
	// period) accrual key is unique; a duplicate insert reports created=false
	// and no error.
	CreatePayout(
		ctx context.Context,
		payout *models.ReferralPayout,
	) (created bool, err error)

	CancelPendingByReferee(
		ctx context.Context,
		refereeID uint,
	) error

	SumPendingByReferrer(
		ctx context.Context,
		referrerID uint,
	) (float64, error)
}
