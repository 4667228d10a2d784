package models

import (
	"time"

	"github.com/Pedrolamon/hairdayy-sub000/internal/domain/schedule"
)

// AvailabilityBlock is a barber-defined exclusion window. Existence alone
// makes the window unavailable; there is no status.
type AvailabilityBlock struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Date         time.Time        `gorm:"type:date;index" json:"date"`
	StartMinutes schedule.Minutes `json:"start_time" gorm:"type:integer"`
	EndMinutes   schedule.Minutes `json:"end_time" gorm:"type:integer"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *AvailabilityBlock) Window() schedule.TimeRange {
	return schedule.TimeRange{Start: b.StartMinutes, End: b.EndMinutes}
}
