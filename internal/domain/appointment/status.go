package appointment

import "github.com/Pedrolamon/hairdayy-sub000/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusAttended  Status = "attended"
	StatusNoShow    Status = "no_show"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusAttended, StatusNoShow:
		return Status(s), true
	}
	return "", false
}

// CanTransition defines the one-directional state machine: only scheduled
// appointments move, and every other state is terminal.
func CanTransition(from, to Status) error {
	if from != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	switch to {
	case StatusCompleted, StatusCancelled, StatusAttended, StatusNoShow:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusScheduled
}
