package scheduling

// DefaultSlotDuration is the slot length in minutes used when a caller does
// not ask for a specific one.
const DefaultSlotDuration = 30

// GenerateFreeSlots produces the bookable slots of durationMinutes length
// inside the working window, skipping every candidate that overlaps a booked
// interval. Candidates step from the window start in durationMinutes
// increments; a candidate whose end would spill past the window end is
// dropped. The result is in chronological order and may be empty.
//
// The function is pure: identical inputs always yield identical output, and
// nothing is cached between calls.
func GenerateFreeSlots(window Window, durationMinutes int, booked []Slot) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if err := ValidateInterval(window.StartTime, window.EndTime); err != nil {
		return nil, err
	}

	start, err := ToMinutes(window.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ToMinutes(window.EndTime)
	if err != nil {
		return nil, err
	}

	free := []Slot{}
	for cur := start; cur+durationMinutes <= end; cur += durationMinutes {
		candidate := Slot{
			StartTime: FromMinutes(cur),
			EndTime:   FromMinutes(cur + durationMinutes),
		}
		if !OverlapsAny(candidate.StartTime, candidate.EndTime, booked) {
			free = append(free, candidate)
		}
	}
	return free, nil
}
