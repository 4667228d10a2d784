package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

func bookedRepo(t *testing.T) (*fakeRepo, *models.Appointment) {
	t.Helper()

	repo := seededRepo(t)
	create := NewCreateAppointment(repo, nil, nil)

	in := clientInput()
	in.ServiceIDs = []uint{1, 2} // 50 + 30
	ap, err := create.Execute(context.Background(), in)
	require.NoError(t, err)
	return repo, ap
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completed writes the income record", func(t *testing.T) {
		repo, ap := bookedRepo(t)
		uc := NewUpdateStatus(repo, nil)

		got, err := uc.Execute(ctx, 1, ap.ID, "completed")
		require.NoError(t, err)

		assert.Equal(t, "completed", got.Status)
		assert.NotNil(t, got.CompletedAt)
		require.Len(t, repo.records, 1)
		assert.Equal(t, models.RecordIncome, repo.records[0].Type)
		assert.Equal(t, 80.0, repo.records[0].Amount)
		require.NotNil(t, repo.records[0].AppointmentID)
		assert.Equal(t, ap.ID, *repo.records[0].AppointmentID)
	})

	t.Run("cancelling a completed appointment reverses income", func(t *testing.T) {
		repo, ap := bookedRepo(t)
		uc := NewUpdateStatus(repo, nil)

		_, err := uc.Execute(ctx, 1, ap.ID, "completed")
		require.NoError(t, err)
		require.Len(t, repo.records, 1)

		// Terminal state: the cancel is refused and income stays.
		_, err = uc.Execute(ctx, 1, ap.ID, "cancelled")
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Len(t, repo.records, 1)
	})

	t.Run("cancelled removes any income rows", func(t *testing.T) {
		repo, ap := bookedRepo(t)
		appointmentID := ap.ID
		repo.records = append(repo.records, models.FinancialRecord{
			Type:          models.RecordIncome,
			Amount:        80,
			AppointmentID: &appointmentID,
		})
		uc := NewUpdateStatus(repo, nil)

		got, err := uc.Execute(ctx, 1, ap.ID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", got.Status)
		assert.NotNil(t, got.CancelledAt)
		assert.Empty(t, repo.records)
	})

	t.Run("attended and no-show carry no financial effect", func(t *testing.T) {
		for _, status := range []string{"attended", "no_show"} {
			repo, ap := bookedRepo(t)
			uc := NewUpdateStatus(repo, nil)

			got, err := uc.Execute(ctx, 1, ap.ID, status)
			require.NoError(t, err, status)
			assert.Equal(t, status, got.Status)
			assert.Empty(t, repo.records, status)
		}
	})

	t.Run("invalid status string", func(t *testing.T) {
		repo, ap := bookedRepo(t)
		uc := NewUpdateStatus(repo, nil)

		_, err := uc.Execute(ctx, 1, ap.ID, "done")
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})

	t.Run("foreign appointment answers like a missing one", func(t *testing.T) {
		repo, ap := bookedRepo(t)
		uc := NewUpdateStatus(repo, nil)

		_, err := uc.Execute(ctx, 2, ap.ID, "completed")
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

		_, err = uc.Execute(ctx, 1, 999, "completed")
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	repo, ap := bookedRepo(t)
	uc := NewDeleteAppointment(repo, nil)

	require.NoError(t, uc.Execute(ctx, 1, ap.ID))
	assert.Empty(t, repo.appointments)

	err := uc.Execute(ctx, 1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
