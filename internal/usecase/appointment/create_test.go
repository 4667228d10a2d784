package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

const testDate = "2030-03-12" // a Tuesday, far enough ahead to dodge the same-day filter

func seededRepo(t *testing.T) *fakeRepo {
	t.Helper()

	repo := newFakeRepo()
	repo.barbers[1] = &models.Barber{ID: 1, UserID: 10}
	repo.services[1] = models.Service{ID: 1, BarberID: 1, Name: "Corte", DurationMin: 30, Price: 50, Active: true}
	repo.services[2] = models.Service{ID: 2, BarberID: 1, Name: "Barba", DurationMin: 30, Price: 30, Active: true}

	day, err := timezone.ParseDate(testDate)
	require.NoError(t, err)
	repo.workingHours[int(day.Weekday())] = &models.WorkingHours{
		BarberID:     1,
		Weekday:      int(day.Weekday()),
		StartMinutes: 540,  // 09:00
		EndMinutes:   1080, // 18:00
		Active:       true,
	}
	return repo
}

func clientInput() CreateAppointmentInput {
	uid := uint(7)
	return CreateAppointmentInput{
		BarberID:   1,
		Date:       testDate,
		StartTime:  "09:00",
		EndTime:    "09:30",
		ServiceIDs: []uint{1},
		UserID:     &uid,
	}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free slot", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		ap, err := uc.Execute(ctx, clientInput())
		require.NoError(t, err)

		assert.Equal(t, "scheduled", ap.Status)
		assert.Equal(t, "09:00-09:30", ap.Window().Label())
		require.Len(t, ap.Services, 1)
		assert.Len(t, repo.appointments, 1)
	})

	t.Run("rejects overlap with existing booking", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		_, err := uc.Execute(ctx, clientInput())
		require.NoError(t, err)

		in := clientInput()
		in.StartTime = "09:15"
		in.EndTime = "09:45"
		_, err = uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
		assert.Len(t, repo.appointments, 1)
	})

	t.Run("back-to-back bookings do not conflict", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		_, err := uc.Execute(ctx, clientInput())
		require.NoError(t, err)

		in := clientInput()
		in.StartTime = "09:30"
		in.EndTime = "10:00"
		_, err = uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Len(t, repo.appointments, 2)
	})

	t.Run("rejects window outside working hours", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		in := clientInput()
		in.StartTime = "08:00"
		in.EndTime = "08:30"
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("storage failure is not a working-hours rejection", func(t *testing.T) {
		repo := &workingHoursFailRepo{
			fakeRepo: seededRepo(t),
			err:      errors.New("connection reset by peer"),
		}
		uc := NewCreateAppointment(repo, nil, nil)

		_, err := uc.Execute(ctx, clientInput())
		require.Error(t, err)
		assert.False(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("rejects window crossing a manual block", func(t *testing.T) {
		repo := seededRepo(t)
		day, _ := timezone.ParseDate(testDate)
		repo.blocks = append(repo.blocks, models.AvailabilityBlock{
			BarberID:     1,
			Date:         day,
			StartMinutes: 540,
			EndMinutes:   600,
		})
		uc := NewCreateAppointment(repo, nil, nil)

		_, err := uc.Execute(ctx, clientInput())
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	})

	t.Run("rejects unknown services", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		in := clientInput()
		in.ServiceIDs = []uint{1, 99}
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "services_not_found"))
	})

	t.Run("rejects empty service list", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		in := clientInput()
		in.ServiceIDs = nil
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "missing_services"))
	})

	t.Run("rejects unknown barber", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		in := clientInput()
		in.BarberID = 42
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
	})

	t.Run("rejects malformed date and time", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		in := clientInput()
		in.Date = "12/03/2030"
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

		in = clientInput()
		in.StartTime = "09:30"
		in.EndTime = "09:00"
		_, err = uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
	})

	t.Run("walk-in booking creates the client", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		in := clientInput()
		in.UserID = nil
		in.ClientName = "João"
		in.ClientPhone = "11999990000"
		ap, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		require.NotNil(t, ap.ClientID)
		require.Len(t, repo.clients, 1)
		assert.Equal(t, "João", repo.clients[0].Name)

		// Same phone books again without duplicating the client.
		in.StartTime = "10:00"
		in.EndTime = "10:30"
		_, err = uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Len(t, repo.clients, 1)
	})

	t.Run("walk-in booking requires name and phone", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewCreateAppointment(repo, nil, nil)

		in := clientInput()
		in.UserID = nil
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "missing_client"))
	})
}

func TestCreateAppointmentCancelledSlotReopens(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)
	uc := NewCreateAppointment(repo, nil, nil)

	ap, err := uc.Execute(ctx, clientInput())
	require.NoError(t, err)

	now := time.Now()
	ap.Status = "cancelled"
	ap.CancelledAt = &now

	_, err = uc.Execute(ctx, clientInput())
	require.NoError(t, err)
}
