package appointment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/audit"
	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/appointment"
	"github.com/Pedrolamon/hairdayy-sub000/internal/domain/schedule"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/metrics"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/notification"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID   uint
	Date       string
	StartTime  string
	EndTime    string
	ServiceIDs []uint

	// Authenticated client, or
	UserID *uint

	// walk-in data from the chatbot flow.
	ClientName  string
	ClientPhone string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier notification.Notifier
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier notification.Notifier,
	auditDispatcher *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("missing_services")
	}

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	window, err := schedule.ParseRangePair(in.StartTime, in.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	services, err := uc.repo.GetServices(ctx, in.BarberID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, fmt.Errorf(
			"%d serviços solicitados, %d encontrados: %w",
			len(in.ServiceIDs), len(services),
			httperr.ErrBusiness("services_not_found"),
		)
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, int(day.Weekday()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}
	if err != nil {
		return nil, err
	}
	if !wh.Active {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}
	if window.Start < wh.StartMinutes || window.End > wh.EndMinutes {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// Manual blocks are only checked here: the exclusion constraint guards
	// appointment overlap, blocks belong to the owning barber alone.
	blocks, err := uc.repo.ListBlocksForDay(ctx, in.BarberID, day)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		if window.Overlaps(b.Window()) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
	}

	ap := &models.Appointment{
		BarberID:     in.BarberID,
		UserID:       in.UserID,
		Date:         day,
		StartMinutes: window.Start,
		EndMinutes:   window.End,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	if in.UserID == nil {
		if in.ClientName == "" || in.ClientPhone == "" {
			return nil, httperr.ErrBusiness("missing_client")
		}
		client, err := uc.repo.GetOrCreateClient(ctx, in.BarberID, in.ClientName, in.ClientPhone)
		if err != nil {
			return nil, err
		}
		ap.ClientID = &client.ID
		ap.Client = client
	}

	if err := uc.repo.CreateAppointment(ctx, ap, services); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// Best effort after commit: a push failure never undoes the booking.
	notification.Dispatch(ctx, uc.notifier, barber.UserID,
		"Novo agendamento",
		fmt.Sprintf("%s às %s", in.Date, window.Label()),
		map[string]string{"appointment_id": fmt.Sprint(ap.ID)},
	)

	return ap, nil
}
