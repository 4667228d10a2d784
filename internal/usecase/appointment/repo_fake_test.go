package appointment

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/appointment"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

var _ domain.Repository = (*fakeRepo)(nil)

// fakeRepo is an in-memory Repository for use case tests. Conflict
// detection mimics the database overlap check so the transactional path
// can be exercised without Postgres.
type fakeRepo struct {
	barbers      map[uint]*models.Barber
	workingHours map[int]*models.WorkingHours
	services     map[uint]models.Service
	appointments []*models.Appointment
	blocks       []models.AvailabilityBlock
	clients      []*models.Client

	records []models.FinancialRecord

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:      map[uint]*models.Barber{},
		workingHours: map[int]*models.WorkingHours{},
		services:     map[uint]models.Service{},
		nextID:       1,
	}
}

func (f *fakeRepo) GetBarberByID(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, _ uint, weekday int) (*models.WorkingHours, error) {
	wh, ok := f.workingHours[weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return wh, nil
}

func (f *fakeRepo) GetServices(_ context.Context, _ uint, serviceIDs []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range serviceIDs {
		if svc, ok := f.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, barberID uint, name, phone string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.BarberID == barberID && c.Phone == phone {
			return c, nil
		}
	}
	c := &models.Client{ID: f.nextID, BarberID: barberID, Name: name, Phone: phone}
	f.nextID++
	f.clients = append(f.clients, c)
	return c, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment, services []models.Service) error {
	for _, other := range f.appointments {
		if other.BarberID != ap.BarberID || other.Status != "scheduled" {
			continue
		}
		if !other.Date.Equal(ap.Date) {
			continue
		}
		if ap.Window().Overlaps(other.Window()) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	ap.ID = f.nextID
	f.nextID++
	ap.Services = services
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) SaveStatusChange(_ context.Context, ap *models.Appointment, income *models.FinancialRecord, incomeReversal bool) error {
	if income != nil {
		f.records = append(f.records, *income)
	}
	if incomeReversal {
		kept := f.records[:0]
		for _, r := range f.records {
			if r.AppointmentID != nil && *r.AppointmentID == ap.ID && r.Type == models.RecordIncome {
				continue
			}
			kept = append(kept, r)
		}
		f.records = kept
	}
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	kept := f.appointments[:0]
	for _, other := range f.appointments {
		if other.ID == ap.ID {
			continue
		}
		kept = append(kept, other)
	}
	f.appointments = kept
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID uint, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && ap.Date.Equal(day) && ap.Status == "scheduled" {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBlocksForDay(_ context.Context, barberID uint, day time.Time) ([]models.AvailabilityBlock, error) {
	var out []models.AvailabilityBlock
	for _, b := range f.blocks {
		if b.BarberID == barberID && b.Date.Equal(day) {
			out = append(out, b)
		}
	}
	return out, nil
}

// workingHoursFailRepo simulates a storage outage on the working-hours
// lookup while everything else behaves.
type workingHoursFailRepo struct {
	*fakeRepo
	err error
}

func (f *workingHoursFailRepo) GetWorkingHours(context.Context, uint, int) (*models.WorkingHours, error) {
	return nil, f.err
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && !ap.Date.Before(from) && ap.Date.Before(to) {
			out = append(out, *ap)
		}
	}
	return out, nil
}
