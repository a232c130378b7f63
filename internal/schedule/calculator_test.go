package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.UTC

func standardHours() WeekHours {
	days := map[time.Weekday]DayHours{}
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		days[wd] = DayHours{Open: 9 * 60, Close: 18 * 60}
	}
	return NewWeekHours(days)
}

// futureDay is a Tuesday well past the pinned "now" used in these tests.
func futureDay() Date {
	return Date{Year: 2026, Month: time.September, Day: 15}
}

func pinnedNow() time.Time {
	return time.Date(2026, time.September, 1, 10, 0, 0, 0, testLoc)
}

func bookingAt(d Date, start, end string) Booking {
	s, _ := ParseClock(start)
	e, _ := ParseClock(end)
	midnight := d.Midnight(testLoc)
	return Booking{
		Start: midnight.Add(time.Duration(s) * time.Minute),
		End:   midnight.Add(time.Duration(e) * time.Minute),
	}
}

func TestComputeDaySchedule_EmptyDay(t *testing.T) {
	out := ComputeDaySchedule(DayInput{
		Date:           futureDay(),
		Hours:          standardHours(),
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.True(t, out.IsOpen)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 18 * 60, Status: StatusAvailable}, out.Blocks[0])
}

func TestComputeDaySchedule_SingleBooking(t *testing.T) {
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       []Booking{bookingAt(day, "10:00", "10:30")},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.True(t, out.IsOpen)
	require.Len(t, out.Blocks, 3)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 10 * 60, Status: StatusAvailable}, out.Blocks[0])
	assert.Equal(t, TimeBlock{Start: 10 * 60, End: 10*60 + 30, Status: StatusBooked}, out.Blocks[1])
	assert.Equal(t, TimeBlock{Start: 10*60 + 30, End: 18 * 60, Status: StatusAvailable}, out.Blocks[2])
}

func TestComputeDaySchedule_DurationTooLongForDay(t *testing.T) {
	// 10 hours requested against a 9-hour day: latest bookable start is
	// before opening, so nothing can ever fit.
	out := ComputeDaySchedule(DayInput{
		Date:           futureDay(),
		Hours:          standardHours(),
		ServiceMinutes: 600,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.True(t, out.IsOpen)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 18 * 60, Status: StatusClosed}, out.Blocks[0])
}

func TestComputeDaySchedule_TodayRoundsUpToQuarterHour(t *testing.T) {
	now := time.Date(2026, time.September, 15, 14, 7, 0, 0, testLoc)
	out := ComputeDaySchedule(DayInput{
		Date:           futureDay(),
		Hours:          standardHours(),
		ServiceMinutes: 30,
		Now:            now,
		Location:       testLoc,
	})

	require.True(t, out.IsOpen)
	require.NotEmpty(t, out.Blocks)
	assert.Equal(t, Minutes(14*60+15), out.Blocks[0].Start, "first block must start at 14:15")
	assert.Equal(t, StatusAvailable, out.Blocks[0].Status)
}

func TestComputeDaySchedule_TodayAlreadyOnBoundary(t *testing.T) {
	now := time.Date(2026, time.September, 15, 14, 15, 0, 0, testLoc)
	out := ComputeDaySchedule(DayInput{
		Date:           futureDay(),
		Hours:          standardHours(),
		ServiceMinutes: 30,
		Now:            now,
		Location:       testLoc,
	})

	require.NotEmpty(t, out.Blocks)
	assert.Equal(t, Minutes(14*60+15), out.Blocks[0].Start)
}

func TestComputeDaySchedule_PastDateIsClosed(t *testing.T) {
	out := ComputeDaySchedule(DayInput{
		Date:           Date{Year: 2026, Month: time.August, Day: 31},
		Hours:          standardHours(),
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	assert.False(t, out.IsOpen)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, TimeBlock{Start: 0, End: MinutesPerDay, Status: StatusClosed}, out.Blocks[0])
}

func TestComputeDaySchedule_ClosedWeekday(t *testing.T) {
	// Standard hours omit Sunday entirely; absence means closed.
	sunday := Date{Year: 2026, Month: time.September, Day: 20}
	require.Equal(t, time.Sunday, sunday.Weekday())

	out := ComputeDaySchedule(DayInput{
		Date:           sunday,
		Hours:          standardHours(),
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	assert.False(t, out.IsOpen)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, TimeBlock{Start: 0, End: MinutesPerDay, Status: StatusClosed}, out.Blocks[0])
}

func TestComputeDaySchedule_ClosureWinsOverOpenHours(t *testing.T) {
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:  day,
		Hours: standardHours(),
		Closures: []Closure{
			{Start: day.AddDays(-2), End: day, Reason: "renovation"},
		},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	assert.False(t, out.IsOpen)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, StatusClosed, out.Blocks[0].Status)
}

func TestComputeDaySchedule_ClosureBoundsAreInclusive(t *testing.T) {
	day := futureDay()
	closure := Closure{Start: day, End: day}

	for _, d := range []Date{day.AddDays(-1), day.AddDays(1)} {
		out := ComputeDaySchedule(DayInput{
			Date:           d,
			Hours:          standardHours(),
			Closures:       []Closure{closure},
			ServiceMinutes: 30,
			Now:            pinnedNow(),
			Location:       testLoc,
		})
		if d.Weekday() != time.Sunday {
			assert.True(t, out.IsOpen, "closure must not leak onto %s", d)
		}
	}
}

func TestComputeDaySchedule_ApprovedLeaveMakesDayAbsent(t *testing.T) {
	day := futureDay()
	leave := []LeaveInterval{
		{Start: day, End: day.AddDays(2), EmployeeID: "emp-1", Status: LeaveApproved},
	}

	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Leave:          leave,
		ServiceMinutes: 30,
		Filter:         ForEmployee("emp-1"),
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	assert.False(t, out.IsOpen)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 18 * 60, Status: StatusAbsent}, out.Blocks[0])
}

func TestComputeDaySchedule_PendingLeaveIsIgnored(t *testing.T) {
	day := futureDay()
	leave := []LeaveInterval{
		{Start: day, End: day, EmployeeID: "emp-1", Status: LeavePending},
	}

	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Leave:          leave,
		ServiceMinutes: 30,
		Filter:         ForEmployee("emp-1"),
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	assert.True(t, out.IsOpen)
}

func TestComputeDaySchedule_LeaveIgnoredForAnyEmployeeFilter(t *testing.T) {
	day := futureDay()
	leave := []LeaveInterval{
		{Start: day, End: day, EmployeeID: "emp-1", Status: LeaveApproved},
	}

	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Leave:          leave,
		ServiceMinutes: 30,
		Filter:         AnyEmployee(),
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	assert.True(t, out.IsOpen)
}

func TestComputeDaySchedule_AbuttingBookingsNoZeroWidthGap(t *testing.T) {
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:  day,
		Hours: standardHours(),
		Bookings: []Booking{
			bookingAt(day, "10:00", "10:30"),
			bookingAt(day, "10:30", "11:00"),
		},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 4)
	assert.Equal(t, StatusAvailable, out.Blocks[0].Status)
	assert.Equal(t, StatusBooked, out.Blocks[1].Status)
	assert.Equal(t, StatusBooked, out.Blocks[2].Status)
	assert.Equal(t, StatusAvailable, out.Blocks[3].Status)
	for _, b := range out.Blocks {
		assert.Less(t, b.Start, b.End, "no zero-width blocks")
	}
}

func TestComputeDaySchedule_CancelledBookingsExcluded(t *testing.T) {
	day := futureDay()
	cancelled := bookingAt(day, "10:00", "10:30")
	cancelled.Cancelled = true

	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       []Booking{cancelled},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 1)
	assert.Equal(t, StatusAvailable, out.Blocks[0].Status)
}

func TestComputeDaySchedule_BookingOutsideHoursClipped(t *testing.T) {
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:  day,
		Hours: standardHours(),
		Bookings: []Booking{
			bookingAt(day, "08:00", "09:30"), // spills over opening
			bookingAt(day, "17:30", "19:00"), // spills past closing
		},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 3)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 9*60 + 30, Status: StatusBooked}, out.Blocks[0])
	assert.Equal(t, TimeBlock{Start: 9*60 + 30, End: 17*60 + 30, Status: StatusAvailable}, out.Blocks[1])
	assert.Equal(t, TimeBlock{Start: 17*60 + 30, End: 18 * 60, Status: StatusBooked}, out.Blocks[2])
}

func TestComputeDaySchedule_BookingFullyOutsideWindowSkipped(t *testing.T) {
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:  day,
		Hours: standardHours(),
		Bookings: []Booking{
			bookingAt(day, "07:00", "08:00"),
			bookingAt(day, "19:00", "20:00"),
		},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 1)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 18 * 60, Status: StatusAvailable}, out.Blocks[0])
}

func TestComputeDaySchedule_BlocksContiguousAndOrdered(t *testing.T) {
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:  day,
		Hours: standardHours(),
		Bookings: []Booking{
			bookingAt(day, "11:00", "12:00"),
			bookingAt(day, "09:30", "10:15"),
			bookingAt(day, "14:00", "15:30"),
		},
		ServiceMinutes: 45,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.True(t, out.IsOpen)
	require.NotEmpty(t, out.Blocks)
	assert.Equal(t, Minutes(9*60), out.Blocks[0].Start)
	assert.Equal(t, Minutes(18*60), out.Blocks[len(out.Blocks)-1].End)
	for i := 1; i < len(out.Blocks); i++ {
		assert.Equal(t, out.Blocks[i-1].End, out.Blocks[i].Start,
			"block %d must start where block %d ends", i, i-1)
	}
}

func TestComputeDaySchedule_OverlappingBookingsMerge(t *testing.T) {
	// Two stylists booked over the same stretch on the any-employee view:
	// the overlap must not produce overlapping or out-of-order blocks.
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:  day,
		Hours: standardHours(),
		Bookings: []Booking{
			bookingAt(day, "10:00", "11:00"),
			bookingAt(day, "10:30", "11:30"),
		},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.True(t, out.IsOpen)
	require.Len(t, out.Blocks, 4)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 10 * 60, Status: StatusAvailable}, out.Blocks[0])
	assert.Equal(t, TimeBlock{Start: 10 * 60, End: 11 * 60, Status: StatusBooked}, out.Blocks[1])
	assert.Equal(t, TimeBlock{Start: 11 * 60, End: 11*60 + 30, Status: StatusBooked}, out.Blocks[2])
	assert.Equal(t, TimeBlock{Start: 11*60 + 30, End: 18 * 60, Status: StatusAvailable}, out.Blocks[3])
	for i := 1; i < len(out.Blocks); i++ {
		assert.Equal(t, out.Blocks[i-1].End, out.Blocks[i].Start,
			"block %d must start where block %d ends", i, i-1)
	}
}

func TestComputeDaySchedule_ContainedBookingAbsorbed(t *testing.T) {
	// A booking fully inside another adds no block of its own.
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:  day,
		Hours: standardHours(),
		Bookings: []Booking{
			bookingAt(day, "10:00", "12:00"),
			bookingAt(day, "10:30", "11:00"),
		},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 3)
	assert.Equal(t, TimeBlock{Start: 10 * 60, End: 12 * 60, Status: StatusBooked}, out.Blocks[1])
}

func TestComputeDaySchedule_TrailingAvailabilityAfterBooking(t *testing.T) {
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       []Booking{bookingAt(day, "09:00", "17:00")},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 2)
	assert.Equal(t, TimeBlock{Start: 17 * 60, End: 18 * 60, Status: StatusAvailable}, out.Blocks[1])
}

func TestComputeDaySchedule_CursorAtLatestBookableEmitsNoTail(t *testing.T) {
	// The trailing guard is strict: a booking ending exactly at the latest
	// bookable start leaves no trailing available block.
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       []Booking{bookingAt(day, "09:00", "17:30")},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 1)
	assert.Equal(t, StatusBooked, out.Blocks[0].Status)
}

func TestComputeDaySchedule_TailTooShortNotOffered(t *testing.T) {
	// Booking ends at 17:45; a 30-minute request cannot start there.
	day := futureDay()
	out := ComputeDaySchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       []Booking{bookingAt(day, "09:00", "17:45")},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Len(t, out.Blocks, 1)
	assert.Equal(t, StatusBooked, out.Blocks[0].Status)
}

func TestComputeDaySchedule_Idempotent(t *testing.T) {
	day := futureDay()
	in := DayInput{
		Date:  day,
		Hours: standardHours(),
		Bookings: []Booking{
			bookingAt(day, "10:00", "11:00"),
			bookingAt(day, "13:00", "13:45"),
		},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	}

	first := ComputeDaySchedule(in)
	second := ComputeDaySchedule(in)
	assert.Equal(t, first, second)
}

func TestComputeDaySchedule_AgreesWithCheckSlot(t *testing.T) {
	day := futureDay()
	bookings := []Booking{
		bookingAt(day, "10:00", "11:00"),
		bookingAt(day, "15:00", "16:30"),
	}
	in := DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       bookings,
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	}
	out := ComputeDaySchedule(in)
	require.True(t, out.IsOpen)

	for _, block := range out.Blocks {
		for at := block.Start; at+30 <= block.End; at += 15 {
			check := CheckSlot(SlotInput{
				Date:            day,
				Start:           at,
				DurationMinutes: 30,
				Hours:           standardHours(),
				Bookings:        bookings,
				Location:        testLoc,
			})
			if block.Status == StatusAvailable {
				assert.True(t, check.Valid, "slot %s inside available block must validate", at)
			} else {
				assert.False(t, check.Valid, "slot %s inside %s block must not validate", at, block.Status)
			}
		}
	}
}

func TestComputeWeekSchedule_MondayAnchorAndDistribution(t *testing.T) {
	day := futureDay() // a Tuesday
	weekBookings := []Booking{
		bookingAt(day, "10:00", "10:30"),
		bookingAt(day.AddDays(2), "11:00", "12:00"),
	}

	week := ComputeWeekSchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       weekBookings,
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	require.Equal(t, time.Monday, week.Start.Weekday())
	assert.Equal(t, day.AddDays(-1), week.Start)
	for i, ds := range week.Days {
		assert.Equal(t, week.Start.AddDays(i), ds.Date)
	}

	// Tuesday carries its booking, Thursday carries the other one.
	hasBooked := func(ds DaySchedule) bool {
		for _, b := range ds.Blocks {
			if b.Status == StatusBooked {
				return true
			}
		}
		return false
	}
	assert.True(t, hasBooked(week.Days[1]))
	assert.True(t, hasBooked(week.Days[3]))
	assert.False(t, hasBooked(week.Days[2]))
}

func TestComputeWeekSchedule_BookingCrossingMidnight(t *testing.T) {
	// An interval running into the next day blocks the following morning too.
	day := futureDay() // Tuesday
	overnight := Booking{
		Start: day.Midnight(testLoc).Add(17 * time.Hour),
		End:   day.AddDays(1).Midnight(testLoc).Add(10 * time.Hour),
	}

	week := ComputeWeekSchedule(DayInput{
		Date:           day,
		Hours:          standardHours(),
		Bookings:       []Booking{overnight},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	tuesday := week.Days[1]
	require.True(t, tuesday.IsOpen)
	require.NotEmpty(t, tuesday.Blocks)
	assert.Equal(t, TimeBlock{Start: 17 * 60, End: 18 * 60, Status: StatusBooked},
		tuesday.Blocks[len(tuesday.Blocks)-1])

	wednesday := week.Days[2]
	require.True(t, wednesday.IsOpen)
	require.NotEmpty(t, wednesday.Blocks)
	assert.Equal(t, TimeBlock{Start: 9 * 60, End: 10 * 60, Status: StatusBooked}, wednesday.Blocks[0])
}

func TestComputeDaySchedule_DefaultsToClosedOnEmptyHours(t *testing.T) {
	out := ComputeDaySchedule(DayInput{
		Date:           futureDay(),
		Hours:          WeekHours{},
		ServiceMinutes: 30,
		Now:            pinnedNow(),
		Location:       testLoc,
	})

	assert.False(t, out.IsOpen)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, StatusClosed, out.Blocks[0].Status)
}
