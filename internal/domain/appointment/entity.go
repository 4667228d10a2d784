package appointment

import (
	"time"

	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves an appointment to its next status, stamping the
// timestamp fields the status carries.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}
