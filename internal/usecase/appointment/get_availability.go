package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/appointment"
	"github.com/Pedrolamon/hairdayy-sub000/internal/domain/schedule"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the free "HH:MM-HH:MM" labels for one barber and day.
// Recomputed per request; an empty list is a valid answer.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]string, error) {

	services, err := uc.repo.GetServices(ctx, in.BarberID, []uint{in.ServiceID})
	if err != nil {
		return nil, err
	}
	if len(services) != 1 {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	svc := services[0]

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, int(in.Date.Weekday()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !wh.Active {
		return []string{}, nil
	}

	candidates := schedule.GenerateSlots(wh.StartMinutes, wh.EndMinutes, svc.DurationMin)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	occupied, err := uc.occupancyForDay(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	nowMinutes := schedule.Minutes(-1)
	if sameDay(in.Date, now) {
		nowMinutes = schedule.Minutes(now.Hour()*60 + now.Minute())
	}

	return schedule.Labels(schedule.AvailableSlots(candidates, occupied, nowMinutes)), nil
}

// occupancyForDay merges scheduled appointments and manual blocks into one
// interval set.
func (uc *GetAvailability) occupancyForDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
) (schedule.Occupancy, error) {

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocksForDay(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	occupied := make(schedule.Occupancy, 0, len(appointments)+len(blocks))
	for _, ap := range appointments {
		occupied = append(occupied, ap.Window())
	}
	for _, b := range blocks {
		occupied = append(occupied, b.Window())
	}
	return occupied, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
