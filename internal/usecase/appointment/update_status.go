package appointment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/audit"
	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/appointment"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute moves an appointment through the status machine on behalf of its
// owning barber. Completing synthesizes the income record for the sum of
// the service prices; cancelling reverses it. Attended and no-show carry no
// financial side effect. Looking up scoped by barber means a foreign
// appointment answers exactly like a missing one.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
	newStatus string,
) (*models.Appointment, error) {

	status, ok := domain.ParseStatus(newStatus)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	if err := domain.Transition(ap, status, now); err != nil {
		return nil, err
	}

	var income *models.FinancialRecord
	reversal := false

	switch status {
	case domain.StatusCompleted:
		income = &models.FinancialRecord{
			BarberID:      ap.BarberID,
			Type:          models.RecordIncome,
			Amount:        ap.ServicesTotal(),
			Category:      "appointment",
			Description:   fmt.Sprintf("Agendamento #%d", ap.ID),
			AppointmentID: &ap.ID,
			Date:          ap.Date,
		}
	case domain.StatusCancelled:
		reversal = true
	}

	if err := uc.repo.SaveStatusChange(ctx, ap, income, reversal); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberID,
		Action:   "appointment_" + string(status),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
