package appointment

import (
	"context"
	"time"

	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/appointment"
	"github.com/Pedrolamon/hairdayy-sub000/internal/dto"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	from, to := timezone.DayBounds(date)
	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, barberID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		names := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			names = append(names, s.Name)
		}

		clientName := ""
		if ap.Client != nil {
			clientName = ap.Client.Name
		} else if ap.User != nil {
			clientName = ap.User.Name
		}

		out = append(out, dto.AppointmentListDTO{
			ID:         ap.ID,
			Date:       ap.Date.Format("2006-01-02"),
			StartTime:  ap.StartMinutes.Clock(),
			EndTime:    ap.EndMinutes.Clock(),
			Status:     ap.Status,
			ClientName: clientName,
			Services:   names,
		})
	}

	return out, nil
}
