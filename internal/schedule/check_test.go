package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckSlot(t *testing.T) {
	day := futureDay()
	hours := standardHours()

	tests := []struct {
		name     string
		start    string
		duration int
		bookings []Booking
		valid    bool
		reason   Reason
	}{
		{
			name:     "before opening",
			start:    "08:30",
			duration: 30,
			reason:   ReasonTooEarly,
		},
		{
			name:     "would run past closing",
			start:    "17:45",
			duration: 30,
			reason:   ReasonTooLate,
		},
		{
			name:     "last valid start accepted",
			start:    "17:30",
			duration: 30,
			valid:    true,
		},
		{
			name:     "exactly at opening",
			start:    "09:00",
			duration: 30,
			valid:    true,
		},
		{
			name:     "overlaps existing booking",
			start:    "10:15",
			duration: 30,
			bookings: []Booking{bookingAt(day, "10:00", "11:00")},
			reason:   ReasonConflict,
		},
		{
			name:     "starts inside existing booking",
			start:    "10:45",
			duration: 60,
			bookings: []Booking{bookingAt(day, "10:00", "11:00")},
			reason:   ReasonConflict,
		},
		{
			name:     "abuts existing booking end",
			start:    "11:00",
			duration: 30,
			bookings: []Booking{bookingAt(day, "10:00", "11:00")},
			valid:    true,
		},
		{
			name:     "ends where existing booking starts",
			start:    "09:30",
			duration: 30,
			bookings: []Booking{bookingAt(day, "10:00", "11:00")},
			valid:    true,
		},
		{
			name:     "cancelled booking does not conflict",
			start:    "10:15",
			duration: 30,
			bookings: func() []Booking {
				b := bookingAt(day, "10:00", "11:00")
				b.Cancelled = true
				return []Booking{b}
			}(),
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseClock(tt.start)
			assert.NoError(t, err)

			got := CheckSlot(SlotInput{
				Date:            day,
				Start:           start,
				DurationMinutes: tt.duration,
				Hours:           hours,
				Bookings:        tt.bookings,
				Location:        testLoc,
			})

			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestCheckSlot_ClosedDayNeverValidates(t *testing.T) {
	sunday := Date{Year: 2026, Month: time.September, Day: 20}
	start, _ := ParseClock("10:00")

	got := CheckSlot(SlotInput{
		Date:            sunday,
		Start:           start,
		DurationMinutes: 30,
		Hours:           standardHours(),
		Location:        testLoc,
	})

	assert.False(t, got.Valid)
}

func TestCheckSlot_Idempotent(t *testing.T) {
	day := futureDay()
	start, _ := ParseClock("10:15")
	in := SlotInput{
		Date:            day,
		Start:           start,
		DurationMinutes: 45,
		Hours:           standardHours(),
		Bookings:        []Booking{bookingAt(day, "10:00", "11:00")},
		Location:        testLoc,
	}

	assert.Equal(t, CheckSlot(in), CheckSlot(in))
}
