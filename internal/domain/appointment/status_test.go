package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"scheduled", "completed", "cancelled", "attended", "no_show"} {
		got, ok := ParseStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Status(valid), got)
	}

	_, ok := ParseStatus("deleted")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	for _, to := range []Status{StatusCompleted, StatusCancelled, StatusAttended, StatusNoShow} {
		assert.NoError(t, CanTransition(StatusScheduled, to), string(to))
	}

	// Terminal states never move again.
	for _, from := range []Status{StatusCompleted, StatusCancelled, StatusAttended, StatusNoShow} {
		assert.Error(t, CanTransition(from, StatusCancelled), string(from))
	}

	assert.Error(t, CanTransition(StatusScheduled, StatusScheduled))
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Transition(ap, StatusCancelled, now))
	assert.Equal(t, "cancelled", ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
	assert.Nil(t, ap.CompletedAt)

	ap = &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Transition(ap, StatusCompleted, now))
	assert.Equal(t, "completed", ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Nil(t, ap.CancelledAt)

	ap = &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Transition(ap, StatusAttended, now))
	assert.Nil(t, ap.CancelledAt)
	assert.Nil(t, ap.CompletedAt)

	err := Transition(ap, StatusCancelled, now)
	assert.Error(t, err)
}
