package schedule

import (
	"sort"
	"time"
)

// BlockStatus labels one contiguous stretch of a business day.
type BlockStatus string

const (
	StatusAvailable BlockStatus = "available"
	StatusBooked    BlockStatus = "booked"
	StatusAbsent    BlockStatus = "absent"
	StatusClosed    BlockStatus = "closed"
)

// TimeBlock is one labeled stretch of a day. Blocks in a DaySchedule are
// ordered by start time and never overlap.
type TimeBlock struct {
	Start  Minutes     `json:"start_time"`
	End    Minutes     `json:"end_time"`
	Status BlockStatus `json:"status"`
}

// DaySchedule is the partition of a single business day.
type DaySchedule struct {
	Date   Date        `json:"date"`
	IsOpen bool        `json:"is_open"`
	Open   Minutes     `json:"open_time"`
	Close  Minutes     `json:"close_time"`
	Blocks []TimeBlock `json:"blocks"`
}

// WeekSchedule is seven consecutive day schedules anchored at a Monday.
type WeekSchedule struct {
	Start Date           `json:"week_start"`
	Days  [7]DaySchedule `json:"days"`
}

// Booking is an existing appointment as seen by the calculator. Start and End
// are buffer-inclusive instants. An empty EmployeeID means any employee.
type Booking struct {
	Start      time.Time
	End        time.Time
	EmployeeID string
	Cancelled  bool
}

// Closure is a salon-wide blackout, inclusive on both ends.
type Closure struct {
	Start  Date
	End    Date
	Reason string
}

func (c Closure) Contains(d Date) bool {
	return !d.Before(c.Start) && !d.After(c.End)
}

// LeaveStatus is the review state of a leave interval.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveInterval is an employee absence, inclusive on both ends. Only approved
// intervals affect availability.
type LeaveInterval struct {
	Start      Date
	End        Date
	EmployeeID string
	Status     LeaveStatus
}

func (l LeaveInterval) Contains(d Date) bool {
	return !d.Before(l.Start) && !d.After(l.End)
}

// EmployeeFilter selects either a specific employee or any employee.
// The zero value means any.
type EmployeeFilter struct {
	id string
}

func AnyEmployee() EmployeeFilter {
	return EmployeeFilter{}
}

func ForEmployee(id string) EmployeeFilter {
	return EmployeeFilter{id: id}
}

// Employee returns the selected employee id and whether the filter is specific.
func (f EmployeeFilter) Employee() (string, bool) {
	return f.id, f.id != ""
}

// DayInput carries everything ComputeDaySchedule needs. All data is a
// read-only snapshot; the calculator performs no I/O and holds no state.
type DayInput struct {
	Date           Date
	Hours          WeekHours
	Closures       []Closure
	Leave          []LeaveInterval
	Bookings       []Booking
	ServiceMinutes int
	Filter         EmployeeFilter
	Now            time.Time
	Location       *time.Location
}

// ComputeDaySchedule partitions one business day into labeled blocks.
//
// Precedence: a past date, a closure, or a closed weekday yields a single
// full-day closed block; approved leave for the filtered employee yields a
// single absent block over opening hours; otherwise the open day is walked
// booking by booking. On the current day availability never starts in the
// past: the start is rounded up to the next quarter hour.
func ComputeDaySchedule(in DayInput) DaySchedule {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	sched := DaySchedule{Date: in.Date}
	today := DateOf(in.Now.In(loc))

	closedAllDay := func() DaySchedule {
		sched.Blocks = []TimeBlock{{Start: 0, End: MinutesPerDay, Status: StatusClosed}}
		return sched
	}

	if in.Date.Before(today) {
		return closedAllDay()
	}
	for _, c := range in.Closures {
		if c.Contains(in.Date) {
			return closedAllDay()
		}
	}
	hours := in.Hours.Day(in.Date.Weekday())
	if hours.Closed {
		return closedAllDay()
	}

	sched.Open = hours.Open
	sched.Close = hours.Close

	if id, specific := in.Filter.Employee(); specific {
		for _, l := range in.Leave {
			if l.Status == LeaveApproved && l.EmployeeID == id && l.Contains(in.Date) {
				sched.Blocks = []TimeBlock{{Start: hours.Open, End: hours.Close, Status: StatusAbsent}}
				return sched
			}
		}
	}

	sched.IsOpen = true

	dayStart := hours.Open
	if in.Date.Equal(today) {
		nowAt := in.Now.In(loc)
		nowMin := roundUpQuarter(Minutes(nowAt.Hour()*60 + nowAt.Minute()))
		if nowMin > dayStart {
			dayStart = nowMin
		}
	}
	// Last minute at which a booking of the requested length still ends by closing.
	latestBookable := hours.Close - Minutes(in.ServiceMinutes)

	spans := bookedSpans(in.Date, in.Bookings, loc)

	cur := dayStart
	var blocks []TimeBlock
	for _, sp := range spans {
		if sp.end <= cur || sp.start >= hours.Close {
			continue
		}
		// Strict inequality so abutting bookings emit no zero-width gap.
		if sp.start > cur && cur < latestBookable {
			blocks = append(blocks, TimeBlock{Start: cur, End: minM(sp.start, hours.Close), Status: StatusAvailable})
		}
		// Clamp to the cursor so overlapping bookings cannot emit
		// overlapping or out-of-order booked blocks.
		bs := maxM(sp.start, cur)
		be := minM(sp.end, hours.Close)
		if be > bs {
			blocks = append(blocks, TimeBlock{Start: bs, End: be, Status: StatusBooked})
		}
		if sp.end > cur {
			cur = sp.end
		}
	}
	if cur < latestBookable {
		blocks = append(blocks, TimeBlock{Start: cur, End: hours.Close, Status: StatusAvailable})
	} else if len(blocks) == 0 && cur < hours.Close {
		// Technically open, but no appointment of this length fits anywhere.
		blocks = append(blocks, TimeBlock{Start: dayStart, End: hours.Close, Status: StatusClosed})
	}

	sched.Blocks = blocks
	return sched
}

// ComputeWeekSchedule runs ComputeDaySchedule for the seven days of the week
// containing in.Date, anchored at Monday. Bookings may cover the whole week;
// each day only sees the ones starting on it. There is no cross-day state.
func ComputeWeekSchedule(in DayInput) WeekSchedule {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	start := WeekStart(in.Date)
	week := WeekSchedule{Start: start}
	for i := 0; i < 7; i++ {
		day := start.AddDays(i)
		dayIn := in
		dayIn.Date = day
		dayIn.Bookings = bookingsOn(day, in.Bookings, loc)
		week.Days[i] = ComputeDaySchedule(dayIn)
	}
	return week
}

type span struct {
	start, end Minutes
}

// bookedSpans projects the day's non-cancelled bookings onto minutes of the
// date and sorts them by start time.
func bookedSpans(d Date, bookings []Booking, loc *time.Location) []span {
	midnight := d.Midnight(loc)
	spans := make([]span, 0, len(bookings))
	for _, b := range bookings {
		if b.Cancelled {
			continue
		}
		spans = append(spans, span{
			start: minuteOfDay(midnight, b.Start.In(loc)),
			end:   minuteOfDay(midnight, b.End.In(loc)),
		})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

// bookingsOn selects the bookings overlapping the civil day, so an interval
// crossing midnight surfaces on both days; bookedSpans clamps it to each
// day's minute range.
func bookingsOn(d Date, bookings []Booking, loc *time.Location) []Booking {
	dayStart := d.Midnight(loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	var out []Booking
	for _, b := range bookings {
		if b.Start.Before(dayEnd) && b.End.After(dayStart) {
			out = append(out, b)
		}
	}
	return out
}

func minM(a, b Minutes) Minutes {
	if a < b {
		return a
	}
	return b
}

func maxM(a, b Minutes) Minutes {
	if a > b {
		return a
	}
	return b
}
