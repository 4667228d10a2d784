package schedule

import (
	"fmt"
	"strings"
)

// Minutes is a minute-of-day value (0..1440). All schedule math runs on this
// type; "HH:MM" strings exist only at the API and storage boundaries.
type Minutes int

func ParseClock(s string) (Minutes, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return Minutes(h*60 + m), nil
}

func (m Minutes) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.Clock() + `"`), nil
}

func (m *Minutes) UnmarshalJSON(b []byte) error {
	v, err := ParseClock(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// TimeRange is a half-open [Start, End) window within a single day.
type TimeRange struct {
	Start Minutes
	End   Minutes
}

func NewRange(start, end Minutes) (TimeRange, error) {
	if start >= end {
		return TimeRange{}, fmt.Errorf("start %s must precede end %s", start.Clock(), end.Clock())
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseRange accepts both legacy time encodings found in stored data:
// a combined "HH:MM-HH:MM" label, or a single "HH:MM" start paired with a
// separate end value via ParseRangePair.
func ParseRange(s string) (TimeRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("invalid time range %q", s)
	}
	return ParseRangePair(parts[0], parts[1])
}

func ParseRangePair(start, end string) (TimeRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, err
	}
	return NewRange(s, e)
}

func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && r.End > o.Start
}

func (r TimeRange) DurationMinutes() int {
	return int(r.End - r.Start)
}

func (r TimeRange) Label() string {
	return r.Start.Clock() + "-" + r.End.Clock()
}
