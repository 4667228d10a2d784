package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/audit"
	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/appointment"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute removes an appointment and any income record tied to it. Scoped
// to the owning barber.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
