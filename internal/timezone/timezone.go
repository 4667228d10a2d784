package timezone

import (
	"sync/atomic"
	"time"
)

const fallback = "America/Sao_Paulo"

var defaultTZ atomic.Value

// SetDefault installs the process-wide timezone used for all schedule math.
// Called once from main with the configured value.
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultTZ.Store(tz)
	}
}

func Default() string {
	if v, ok := defaultTZ.Load().(string); ok && v != "" {
		return v
	}
	return fallback
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location() *time.Location {
	if loc, err := time.LoadLocation(Default()); err == nil {
		return loc
	}
	loc, _ := time.LoadLocation(fallback)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// ParseDate parses a "2006-01-02" calendar day in the default timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Location())
}

// DayBounds returns the [00:00, 24:00) window of the given calendar day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, Location())
	return start, start.Add(24 * time.Hour)
}
