package models

import "time"

const (
	RecordIncome         = "income"
	RecordExpense        = "expense"
	RecordBonus          = "bonus"
	RecordReferralPayout = "referral_payout"
)

type FinancialRecord struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Type     string  `gorm:"size:20;not null" json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `gorm:"size:50" json:"category"`

	Description string `gorm:"size:255" json:"description"`

	AppointmentID *uint `gorm:"index" json:"appointment_id"`
	ReferrerID    *uint `json:"referrer_id"`

	Date time.Time `gorm:"type:date" json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
