package models

import "time"

// Referral is a directed edge referrer -> referee. The active count per
// referrer drives the discount and payout tiers.
type Referral struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferrerID uint `gorm:"index;not null" json:"referrer_id"`
	Referrer   User `gorm:"foreignKey:ReferrerID" json:"-"`

	// Each user can only be referred once.
	RefereeID uint `gorm:"uniqueIndex;not null" json:"referee_id"`
	Referee   User `gorm:"foreignKey:RefereeID" json:"-"`

	Active        bool       `gorm:"default:true" json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	PayoutStatusPending   = "pending"
	PayoutStatusPaid      = "paid"
	PayoutStatusCancelled = "cancelled"
)

// ReferralPayout accrues one row per payout-eligible event. Rows are never
// mutated except for the status transition. The unique accrual index is the
// idempotency guard for concurrent payment webhooks.
type ReferralPayout struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferrerID uint   `gorm:"uniqueIndex:idx_payout_accrual;not null" json:"referrer_id"`
	RefereeID  uint   `gorm:"uniqueIndex:idx_payout_accrual;not null" json:"referee_id"`
	Period     string `gorm:"uniqueIndex:idx_payout_accrual;size:7;not null" json:"period"`

	Amount float64 `json:"amount"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`
	Note   string  `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
