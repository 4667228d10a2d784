package models

import (
	"time"

	"github.com/Pedrolamon/hairdayy-sub000/internal/domain/schedule"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// Nil for walk-in bookings created by the chatbot; those carry only the
	// associated Client record.
	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	Date         time.Time        `gorm:"type:date;index" json:"date"`
	StartMinutes schedule.Minutes `json:"start_time" gorm:"type:integer"`
	EndMinutes   schedule.Minutes `json:"end_time" gorm:"type:integer"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Services []Service `gorm:"many2many:appointment_services;" json:"services"`

	ReminderSent bool   `gorm:"default:false" json:"reminder_sent"`
	Notes        string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) Window() schedule.TimeRange {
	return schedule.TimeRange{Start: a.StartMinutes, End: a.EndMinutes}
}

func (a *Appointment) ServicesTotal() float64 {
	var total float64
	for _, s := range a.Services {
		total += s.Price
	}
	return total
}
