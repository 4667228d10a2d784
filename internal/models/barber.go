package models

import (
	"time"

	"github.com/Pedrolamon/hairdayy-sub000/internal/domain/schedule"
)

// Barber wraps a User with role barber and carries the scheduling profile.
type Barber struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Bio string `gorm:"size:255" json:"bio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_working_hours_barber_weekday,unique" json:"barber_id"`

	Weekday int `gorm:"index:idx_working_hours_barber_weekday,unique" json:"weekday"`

	StartMinutes schedule.Minutes `json:"start_time" gorm:"type:integer"`
	EndMinutes   schedule.Minutes `json:"end_time" gorm:"type:integer"`
	Active       bool             `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (wh *WorkingHours) Window() schedule.TimeRange {
	return schedule.TimeRange{Start: wh.StartMinutes, End: wh.EndMinutes}
}
