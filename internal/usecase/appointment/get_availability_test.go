package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	day, err := timezone.ParseDate(testDate)
	require.NoError(t, err)

	t.Run("open day lists every duration-aligned slot", func(t *testing.T) {
		repo := seededRepo(t)
		repo.workingHours[int(day.Weekday())].EndMinutes = 660 // 09:00-11:00
		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(ctx, AvailabilityInput{BarberID: 1, ServiceID: 1, Date: day})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"09:00-09:30",
			"09:30-10:00",
			"10:00-10:30",
			"10:30-11:00",
		}, slots)
	})

	t.Run("bookings and blocks remove their windows", func(t *testing.T) {
		repo := seededRepo(t)
		repo.workingHours[int(day.Weekday())].EndMinutes = 660
		repo.appointments = append(repo.appointments, &models.Appointment{
			ID: 50, BarberID: 1, Date: day, StartMinutes: 540, EndMinutes: 570, Status: "scheduled",
		})
		repo.blocks = append(repo.blocks, models.AvailabilityBlock{
			BarberID: 1, Date: day, StartMinutes: 600, EndMinutes: 630,
		})
		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(ctx, AvailabilityInput{BarberID: 1, ServiceID: 1, Date: day})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"09:30-10:00",
			"10:30-11:00",
		}, slots)
	})

	t.Run("cancelled bookings do not occupy", func(t *testing.T) {
		repo := seededRepo(t)
		repo.workingHours[int(day.Weekday())].EndMinutes = 660
		repo.appointments = append(repo.appointments, &models.Appointment{
			ID: 50, BarberID: 1, Date: day, StartMinutes: 540, EndMinutes: 570, Status: "cancelled",
		})
		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(ctx, AvailabilityInput{BarberID: 1, ServiceID: 1, Date: day})
		require.NoError(t, err)
		assert.Len(t, slots, 4)
	})

	t.Run("inactive weekday yields an empty list", func(t *testing.T) {
		repo := seededRepo(t)
		repo.workingHours[int(day.Weekday())].Active = false
		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(ctx, AvailabilityInput{BarberID: 1, ServiceID: 1, Date: day})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("day without configured hours is just empty", func(t *testing.T) {
		repo := seededRepo(t)
		delete(repo.workingHours, int(day.Weekday()))
		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(ctx, AvailabilityInput{BarberID: 1, ServiceID: 1, Date: day})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("storage failure surfaces instead of an empty day", func(t *testing.T) {
		repo := &workingHoursFailRepo{
			fakeRepo: seededRepo(t),
			err:      errors.New("connection reset by peer"),
		}
		uc := NewGetAvailability(repo)

		_, err := uc.Execute(ctx, AvailabilityInput{BarberID: 1, ServiceID: 1, Date: day})
		require.Error(t, err)
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := seededRepo(t)
		uc := NewGetAvailability(repo)

		_, err := uc.Execute(ctx, AvailabilityInput{BarberID: 1, ServiceID: 99, Date: day})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("repeated reads answer the same", func(t *testing.T) {
		repo := seededRepo(t)
		repo.workingHours[int(day.Weekday())].EndMinutes = 660
		uc := NewGetAvailability(repo)

		in := AvailabilityInput{BarberID: 1, ServiceID: 1, Date: day}
		first, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		second, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
