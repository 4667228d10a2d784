package schedule

// GenerateSlots produces the ordered candidate windows for one working day,
// stepping by the service duration so no sub-duration fragments appear.
// The last slot ends exactly at or before workEnd. A duration longer than
// the window yields nil.
func GenerateSlots(workStart, workEnd Minutes, durationMinutes int) []TimeRange {
	if durationMinutes <= 0 || workStart >= workEnd {
		return nil
	}

	step := Minutes(durationMinutes)

	var slots []TimeRange
	for cur := workStart; cur+step <= workEnd; cur += step {
		slots = append(slots, TimeRange{Start: cur, End: cur + step})
	}
	return slots
}

// Occupancy is the set of taken intervals for one barber and day:
// scheduled appointments plus manual availability blocks.
type Occupancy []TimeRange

func (o Occupancy) Conflicts(slot TimeRange) bool {
	for _, taken := range o {
		if slot.Overlaps(taken) {
			return true
		}
	}
	return false
}

// AvailableSlots filters candidates against the occupancy. When the
// requested day is today, nowMinutes must carry the current minute of day
// so already-finished windows are dropped; pass a negative value otherwise.
func AvailableSlots(candidates []TimeRange, occupied Occupancy, nowMinutes Minutes) []TimeRange {
	out := make([]TimeRange, 0, len(candidates))
	for _, slot := range candidates {
		if nowMinutes >= 0 && slot.End <= nowMinutes {
			continue
		}
		if occupied.Conflicts(slot) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

func Labels(slots []TimeRange) []string {
	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label())
	}
	return labels
}
