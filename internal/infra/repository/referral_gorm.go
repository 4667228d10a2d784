package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/referral"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

type ReferralGormRepository struct {
	db *gorm.DB
}

func NewReferralGormRepository(db *gorm.DB) *ReferralGormRepository {
	return &ReferralGormRepository{db: db}
}

// --------------------------------------------------
// Referral edges
// --------------------------------------------------

func (r *ReferralGormRepository) CountActiveByReferrer(
	ctx context.Context,
	referrerID uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Referral{}).
		Where("referrer_id = ? AND active = true", referrerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *ReferralGormRepository) ListActiveByReferee(
	ctx context.Context,
	refereeID uint,
) ([]models.Referral, error) {

	var refs []models.Referral
	if err := r.db.WithContext(ctx).
		Where("referee_id = ? AND active = true", refereeID).
		Find(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *ReferralGormRepository) DeactivateByReferee(
	ctx context.Context,
	refereeID uint,
) error {

	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Referral{}).
		Where("referee_id = ? AND active = true", refereeID).
		Updates(map[string]any{
			"active":         false,
			"deactivated_at": now,
		}).Error
}

// --------------------------------------------------
// Payouts
// --------------------------------------------------

// CreatePayout relies on the unique accrual index: a second insert for the
// same (referrer, referee, period) is a no-op, which is what makes payment
// webhook retries safe.
func (r *ReferralGormRepository) CreatePayout(
	ctx context.Context,
	payout *models.ReferralPayout,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(payout)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ReferralGormRepository) CancelPendingByReferee(
	ctx context.Context,
	refereeID uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.ReferralPayout{}).
		Where("referee_id = ? AND status = ?", refereeID, models.PayoutStatusPending).
		Update("status", models.PayoutStatusCancelled).Error
}

func (r *ReferralGormRepository) SumPendingByReferrer(
	ctx context.Context,
	referrerID uint,
) (float64, error) {

	var total float64
	if err := r.db.WithContext(ctx).
		Model(&models.ReferralPayout{}).
		Where("referrer_id = ? AND status = ?", referrerID, models.PayoutStatusPending).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Compile-time check
var _ domain.Repository = (*ReferralGormRepository)(nil)
