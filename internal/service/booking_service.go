package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bellezza/internal/db"
	"bellezza/internal/entities"
	"bellezza/internal/repository"
	"bellezza/internal/schedule"
)

// cancellationCutoff is how long before the start time a customer can still
// cancel or reschedule.
const cancellationCutoff = 2 * time.Hour

type BookingService struct {
	Repo         *repository.AppointmentRepository
	ServiceRepo  *repository.ServiceRepository
	EmployeeRepo *repository.EmployeeRepository
	Availability *AvailabilityService
	Sender       *SenderService
}

func NewBookingService(
	repo *repository.AppointmentRepository,
	serviceRepo *repository.ServiceRepository,
	employeeRepo *repository.EmployeeRepository,
	availability *AvailabilityService,
	sender *SenderService,
) *BookingService {
	return &BookingService{
		Repo:         repo,
		ServiceRepo:  serviceRepo,
		EmployeeRepo: employeeRepo,
		Availability: availability,
		Sender:       sender,
	}
}

// CreateAppointment books a slot. The slot is re-validated against stored
// bookings as the final authoritative check; the stored interval is
// buffer-inclusive so the calculator can work purely off start/end.
func (s *BookingService) CreateAppointment(req *entities.AppointmentRequest) (*entities.AppointmentResponse, error) {
	svc, err := s.ServiceRepo.GetService(req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, fmt.Errorf("service '%s' is not bookable", svc.Name)
	}

	var employee *db.Employee
	employeeID := req.EmployeeID
	if employeeID == EmployeeAny {
		employeeID = ""
	}
	if employeeID != "" {
		employee, err = s.EmployeeRepo.GetEmployee(employeeID)
		if err != nil {
			return nil, err
		}
		if !employee.Active {
			return nil, fmt.Errorf("employee '%s' is not bookable", employee.FullName)
		}
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	startMin, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}

	day, err := s.Availability.DaySchedule(date, svc.ID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !day.IsOpen {
		return nil, fmt.Errorf("salon is closed on %s", date)
	}

	check, err := s.Availability.CheckSlot(date, startMin, svc.TotalMinutes(), employeeID, "")
	if err != nil {
		return nil, err
	}
	if !check.Valid {
		return nil, &SlotRejectedError{Reason: check.Reason}
	}

	salon, loc, err := s.Availability.salonLocation()
	if err != nil {
		return nil, err
	}
	start := date.Midnight(loc).Add(time.Duration(startMin) * time.Minute)
	end := start.Add(time.Duration(svc.TotalMinutes()) * time.Minute)

	appointment := &db.Appointment{
		Code:          newAppointmentCode(),
		SalonID:       salon.ID,
		ServiceID:     svc.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Status:        db.AppointmentPending,
		StartTime:     start,
		EndTime:       end,
		Notes:         req.Notes,
	}
	if employeeID != "" {
		appointment.EmployeeID = sql.NullString{String: employeeID, Valid: true}
	}

	if err := s.Repo.CreateAppointment(appointment); err != nil {
		log.Error().Err(err).Msg("error creating appointment in repository")
		return nil, err
	}

	resp := s.toResponse(appointment, svc, employee)
	s.Sender.SendAppointmentEmail(*resp, "received")
	return resp, nil
}

func (s *BookingService) GetAppointment(code, email string) (*entities.AppointmentResponse, error) {
	appointment, err := s.Repo.GetByCodeAndEmail(code, email)
	if err != nil {
		return nil, err
	}
	return s.respond(appointment)
}

// ConfirmAppointment moves a pending appointment to confirmed and notifies
// the customer. Used from the admin surface.
func (s *BookingService) ConfirmAppointment(code string) (*entities.AppointmentResponse, error) {
	appointment, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if appointment.Status != db.AppointmentPending {
		return nil, fmt.Errorf("appointment %s is %s, only pending appointments can be confirmed", code, appointment.Status)
	}
	if err := s.Repo.UpdateStatus(code, db.AppointmentConfirmed); err != nil {
		return nil, err
	}
	appointment.Status = db.AppointmentConfirmed

	resp, err := s.respond(appointment)
	if err != nil {
		return nil, err
	}
	s.Sender.SendAppointmentEmail(*resp, "confirmed")
	s.Sender.SendAppointmentSMS(*resp, "confirmed")
	return resp, nil
}

func (s *BookingService) CancelAppointment(code, email string) error {
	appointment, err := s.Repo.GetByCodeAndEmail(code, email)
	if err != nil {
		return err
	}
	if appointment.Status == db.AppointmentCancelled {
		return nil
	}
	if time.Until(appointment.StartTime) < cancellationCutoff {
		return fmt.Errorf("appointments can only be cancelled more than %v before the start time", cancellationCutoff)
	}
	if err := s.Repo.UpdateStatus(code, db.AppointmentCancelled); err != nil {
		return err
	}
	appointment.Status = db.AppointmentCancelled

	resp, err := s.respond(appointment)
	if err != nil {
		return err
	}
	s.Sender.SendAppointmentEmail(*resp, "cancelled")
	s.Sender.SendAppointmentSMS(*resp, "cancelled")
	return nil
}

// RescheduleAppointment moves an appointment to a new slot. The appointment's
// own interval is excluded from the conflict check.
func (s *BookingService) RescheduleAppointment(code string, req *entities.RescheduleRequest) (*entities.AppointmentResponse, error) {
	appointment, err := s.Repo.GetByCodeAndEmail(code, req.Email)
	if err != nil {
		return nil, err
	}
	if appointment.Status == db.AppointmentCancelled || appointment.Status == db.AppointmentCompleted {
		return nil, fmt.Errorf("appointment %s can no longer be rescheduled", code)
	}
	if time.Until(appointment.StartTime) < cancellationCutoff {
		return nil, fmt.Errorf("appointments can only be rescheduled more than %v before the start time", cancellationCutoff)
	}

	svc, err := s.ServiceRepo.GetService(appointment.ServiceID)
	if err != nil {
		return nil, err
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	startMin, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}

	day, err := s.Availability.DaySchedule(date, svc.ID, appointment.EmployeeID.String)
	if err != nil {
		return nil, err
	}
	if !day.IsOpen {
		return nil, fmt.Errorf("salon is closed on %s", date)
	}

	check, err := s.Availability.CheckSlot(date, startMin, svc.TotalMinutes(), appointment.EmployeeID.String, code)
	if err != nil {
		return nil, err
	}
	if !check.Valid {
		return nil, &SlotRejectedError{Reason: check.Reason}
	}

	_, loc, err := s.Availability.salonLocation()
	if err != nil {
		return nil, err
	}
	start := date.Midnight(loc).Add(time.Duration(startMin) * time.Minute)
	end := start.Add(time.Duration(svc.TotalMinutes()) * time.Minute)

	if err := s.Repo.Reschedule(code, start, end); err != nil {
		return nil, err
	}
	appointment.StartTime = start
	appointment.EndTime = end

	resp, err := s.respond(appointment)
	if err != nil {
		return nil, err
	}
	s.Sender.SendAppointmentEmail(*resp, "rescheduled")
	s.Sender.SendAppointmentSMS(*resp, "rescheduled")
	return resp, nil
}

func (s *BookingService) respond(appointment *db.Appointment) (*entities.AppointmentResponse, error) {
	svc, err := s.ServiceRepo.GetService(appointment.ServiceID)
	if err != nil {
		return nil, err
	}
	var employee *db.Employee
	if appointment.EmployeeID.Valid {
		employee, err = s.EmployeeRepo.GetEmployee(appointment.EmployeeID.String)
		if err != nil {
			log.Warn().Err(err).Str("code", appointment.Code).Msg("appointment references unknown employee")
			employee = nil
		}
	}
	return s.toResponse(appointment, svc, employee), nil
}

func (s *BookingService) toResponse(a *db.Appointment, svc *db.Service, employee *db.Employee) *entities.AppointmentResponse {
	resp := &entities.AppointmentResponse{
		Code:          a.Code,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		CustomerPhone: a.CustomerPhone,
		Status:        a.Status,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if employee != nil {
		resp.EmployeeID = employee.ID
		resp.EmployeeName = employee.FullName
	}
	return resp
}

// SlotRejectedError carries the validation reason back to the handler so it
// can be shown inline.
type SlotRejectedError struct {
	Reason schedule.Reason
}

func (e *SlotRejectedError) Error() string {
	switch e.Reason {
	case schedule.ReasonTooEarly:
		return "requested time is before opening"
	case schedule.ReasonTooLate:
		return "requested time does not fit before closing"
	case schedule.ReasonConflict:
		return "requested time conflicts with an existing appointment"
	}
	return "requested time is not available"
}

func newAppointmentCode() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
