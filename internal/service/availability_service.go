package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bellezza/internal/db"
	"bellezza/internal/entities"
	"bellezza/internal/repository"
	"bellezza/internal/schedule"
)

// EmployeeAny is the wire-level sentinel for "no stylist preference". It is
// resolved into a schedule.EmployeeFilter here and never travels further down.
const EmployeeAny = "any"

// AvailabilityService assembles the read-only snapshot (opening hours,
// closures, approved leave, existing bookings) the schedule calculator
// consumes. It holds no state between calls.
type AvailabilityService struct {
	SalonRepo       *repository.SalonRepository
	AppointmentRepo *repository.AppointmentRepository
	EmployeeRepo    *repository.EmployeeRepository
	ServiceRepo     *repository.ServiceRepository

	// Now is the clock used to clip "today"; overridable in tests.
	Now func() time.Time
}

func NewAvailabilityService(
	salonRepo *repository.SalonRepository,
	appointmentRepo *repository.AppointmentRepository,
	employeeRepo *repository.EmployeeRepository,
	serviceRepo *repository.ServiceRepository,
) *AvailabilityService {
	return &AvailabilityService{
		SalonRepo:       salonRepo,
		AppointmentRepo: appointmentRepo,
		EmployeeRepo:    employeeRepo,
		ServiceRepo:     serviceRepo,
		Now:             time.Now,
	}
}

func resolveEmployeeFilter(employeeID string) schedule.EmployeeFilter {
	if employeeID == "" || employeeID == EmployeeAny {
		return schedule.AnyEmployee()
	}
	return schedule.ForEmployee(employeeID)
}

// DaySchedule computes the labeled block partition of one day.
func (s *AvailabilityService) DaySchedule(date schedule.Date, serviceID int, employeeID string) (*schedule.DaySchedule, error) {
	in, err := s.dayInput(date, date, serviceID, employeeID)
	if err != nil {
		return nil, err
	}
	in.Date = date
	out := schedule.ComputeDaySchedule(*in)
	return &out, nil
}

// WeekSchedule computes seven day schedules anchored at the Monday of the
// week containing anchor. Navigation before the current week is clamped to
// the current week.
func (s *AvailabilityService) WeekSchedule(anchor schedule.Date, serviceID int, employeeID string) (*schedule.WeekSchedule, error) {
	_, loc, err := s.salonLocation()
	if err != nil {
		return nil, err
	}

	today := schedule.DateOf(s.Now().In(loc))
	if schedule.WeekStart(anchor).Before(schedule.WeekStart(today)) {
		anchor = today
	}
	start := schedule.WeekStart(anchor)

	in, err := s.dayInput(start, start.AddDays(6), serviceID, employeeID)
	if err != nil {
		return nil, err
	}
	in.Date = start
	out := schedule.ComputeWeekSchedule(*in)
	return &out, nil
}

// ValidateSlot is the authoritative pre-booking check for a free-form
// (date, time) entry.
func (s *AvailabilityService) ValidateSlot(req entities.SlotValidationRequest) (schedule.SlotCheck, error) {
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return schedule.SlotCheck{}, err
	}
	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return schedule.SlotCheck{}, err
	}
	svc, err := s.ServiceRepo.GetService(req.ServiceID)
	if err != nil {
		return schedule.SlotCheck{}, err
	}
	return s.CheckSlot(date, start, svc.TotalMinutes(), req.EmployeeID, "")
}

// CheckSlot runs the slot validation against the day's stored bookings.
// excludeCode removes one appointment from the conflict set, used when that
// appointment is being rescheduled.
func (s *AvailabilityService) CheckSlot(date schedule.Date, start schedule.Minutes, durationMinutes int, employeeID, excludeCode string) (schedule.SlotCheck, error) {
	salon, loc, err := s.salonLocation()
	if err != nil {
		return schedule.SlotCheck{}, err
	}
	hours, err := schedule.ParseWeekHours(salon.OpeningHours)
	if err != nil {
		return schedule.SlotCheck{}, err
	}

	scope := employeeID
	if scope == EmployeeAny {
		scope = ""
	}
	dayStart := date.Midnight(loc)
	rows, err := s.AppointmentRepo.ListBetween(salon.ID, dayStart, dayStart.AddDate(0, 0, 1), scope)
	if err != nil {
		return schedule.SlotCheck{}, err
	}

	var bookings []schedule.Booking
	for _, a := range rows {
		if excludeCode != "" && a.Code == excludeCode {
			continue
		}
		bookings = append(bookings, appointmentToBooking(a))
	}

	return schedule.CheckSlot(schedule.SlotInput{
		Date:            date,
		Start:           start,
		DurationMinutes: durationMinutes,
		Hours:           hours,
		Bookings:        bookings,
		Location:        loc,
	}), nil
}

// dayInput loads the snapshot covering the inclusive [from, to] date range.
func (s *AvailabilityService) dayInput(from, to schedule.Date, serviceID int, employeeID string) (*schedule.DayInput, error) {
	salon, loc, err := s.salonLocation()
	if err != nil {
		return nil, err
	}
	hours, err := schedule.ParseWeekHours(salon.OpeningHours)
	if err != nil {
		return nil, fmt.Errorf("salon opening hours invalid: %w", err)
	}

	svc, err := s.ServiceRepo.GetService(serviceID)
	if err != nil {
		return nil, err
	}

	filter := resolveEmployeeFilter(employeeID)
	scope := ""
	if id, specific := filter.Employee(); specific {
		scope = id
	}

	closureRows, err := s.SalonRepo.ListClosuresOverlapping(salon.ID, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	leaveRows, err := s.EmployeeRepo.ListApprovedLeaveOverlapping(scope, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	appointmentRows, err := s.AppointmentRepo.ListBetween(
		salon.ID, from.Midnight(loc), to.AddDays(1).Midnight(loc), scope)
	if err != nil {
		return nil, err
	}

	bookings := make([]schedule.Booking, 0, len(appointmentRows))
	for _, a := range appointmentRows {
		bookings = append(bookings, appointmentToBooking(a))
	}

	return &schedule.DayInput{
		Hours:          hours,
		Closures:       closuresToSchedule(closureRows),
		Leave:          leaveToSchedule(leaveRows),
		Bookings:       bookings,
		ServiceMinutes: svc.TotalMinutes(),
		Filter:         filter,
		Now:            s.Now(),
		Location:       loc,
	}, nil
}

func (s *AvailabilityService) salonLocation() (*db.Salon, *time.Location, error) {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, nil, err
	}
	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		log.Warn().Str("timezone", salon.Timezone).Msg("unknown salon timezone, falling back to CET")
		loc = time.FixedZone("CET", 1*60*60)
	}
	return salon, loc, nil
}

func appointmentToBooking(a db.Appointment) schedule.Booking {
	return schedule.Booking{
		Start:      a.StartTime,
		End:        a.EndTime,
		EmployeeID: a.EmployeeID.String,
		Cancelled:  a.Status == db.AppointmentCancelled,
	}
}

// closuresToSchedule converts stored closures, skipping malformed rows so a
// bad date never takes the calendar down.
func closuresToSchedule(rows []db.Closure) []schedule.Closure {
	var out []schedule.Closure
	for _, c := range rows {
		start, errStart := schedule.ParseDate(c.StartDate)
		end, errEnd := schedule.ParseDate(c.EndDate)
		if errStart != nil || errEnd != nil {
			log.Warn().Int("closure_id", c.ID).Msg("skipping closure with malformed dates")
			continue
		}
		out = append(out, schedule.Closure{Start: start, End: end, Reason: c.Reason})
	}
	return out
}

func leaveToSchedule(rows []db.LeaveRequest) []schedule.LeaveInterval {
	var out []schedule.LeaveInterval
	for _, l := range rows {
		start, errStart := schedule.ParseDate(l.StartDate)
		end, errEnd := schedule.ParseDate(l.EndDate)
		if errStart != nil || errEnd != nil {
			log.Warn().Int("leave_id", l.ID).Msg("skipping leave request with malformed dates")
			continue
		}
		out = append(out, schedule.LeaveInterval{
			Start:      start,
			End:        end,
			EmployeeID: l.EmployeeID,
			Status:     schedule.LeaveStatus(l.Status),
		})
	}
	return out
}
