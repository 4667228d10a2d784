package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2030-03-12")
	require.NoError(t, err)
	assert.Equal(t, 2030, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 12, day.Day())
	assert.Equal(t, Location(), day.Location())

	_, err = ParseDate("12/03/2030")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	day, err := ParseDate("2030-03-12")
	require.NoError(t, err)

	from, to := DayBounds(day)
	assert.True(t, from.Equal(day))
	assert.Equal(t, 24*time.Hour, to.Sub(from))
	assert.Equal(t, 13, to.Day())

	// A timestamp mid-day collapses to the same window.
	noon := day.Add(12 * time.Hour)
	from2, to2 := DayBounds(noon)
	assert.True(t, from.Equal(from2))
	assert.True(t, to.Equal(to2))
}

func TestDefaultFallsBack(t *testing.T) {
	SetDefault("Not/AZone")
	assert.Equal(t, fallback, Default())

	SetDefault("America/Sao_Paulo")
	assert.Equal(t, "America/Sao_Paulo", Default())
}
