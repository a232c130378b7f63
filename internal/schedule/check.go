package schedule

import "time"

// Reason explains why a requested slot was rejected.
type Reason string

const (
	ReasonTooEarly Reason = "time_too_early"
	ReasonTooLate  Reason = "time_too_late"
	ReasonConflict Reason = "time_conflict"
)

// SlotCheck is the outcome of validating one requested slot. These are
// user-facing validation results, not errors.
type SlotCheck struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

// SlotInput describes a requested (date, time, duration) slot. Bookings must
// already be scoped to the relevant day and employee by the caller.
type SlotInput struct {
	Date            Date
	Start           Minutes
	DurationMinutes int
	Hours           WeekHours
	Bookings        []Booking
	Location        *time.Location
}

// CheckSlot is the authoritative pre-booking validation. It is deliberately a
// separate pass rather than a lookup into ComputeDaySchedule output, because
// it validates free-form user-entered times that need not align to block
// boundaries.
func CheckSlot(in SlotInput) SlotCheck {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	duration := in.DurationMinutes
	if duration < 0 {
		duration = 0
	}

	hours := in.Hours.Day(in.Date.Weekday())
	if in.Start < hours.Open {
		return SlotCheck{Reason: ReasonTooEarly}
	}
	if in.Start > hours.Close-Minutes(duration) {
		return SlotCheck{Reason: ReasonTooLate}
	}

	newStart := in.Start
	newEnd := in.Start + Minutes(duration)
	midnight := in.Date.Midnight(loc)
	for _, b := range in.Bookings {
		if b.Cancelled {
			continue
		}
		existingStart := minuteOfDay(midnight, b.Start.In(loc))
		existingEnd := minuteOfDay(midnight, b.End.In(loc))
		// Half-open interval overlap.
		if newStart < existingEnd && newEnd > existingStart {
			return SlotCheck{Reason: ReasonConflict}
		}
	}
	return SlotCheck{Valid: true}
}
