package service

import (
	"fmt"

	"bellezza/internal/db"
	"bellezza/internal/entities"
	"bellezza/internal/repository"
	"bellezza/internal/schedule"

	"github.com/google/uuid"
)

type AdminService struct {
	AppointmentRepo *repository.AppointmentRepository
	EmployeeRepo    *repository.EmployeeRepository
	ServiceRepo     *repository.ServiceRepository
	SalonRepo       *repository.SalonRepository
	InventoryRepo   *repository.InventoryRepository
	SaleRepo        *repository.SaleRepository
	Booking         *BookingService
}

func NewAdminService(
	appointmentRepo *repository.AppointmentRepository,
	employeeRepo *repository.EmployeeRepository,
	serviceRepo *repository.ServiceRepository,
	salonRepo *repository.SalonRepository,
	inventoryRepo *repository.InventoryRepository,
	saleRepo *repository.SaleRepository,
	booking *BookingService,
) *AdminService {
	return &AdminService{
		AppointmentRepo: appointmentRepo,
		EmployeeRepo:    employeeRepo,
		ServiceRepo:     serviceRepo,
		SalonRepo:       salonRepo,
		InventoryRepo:   inventoryRepo,
		SaleRepo:        saleRepo,
		Booking:         booking,
	}
}

func (s *AdminService) ListAppointments(date, employeeID, status string, limit, offset int) (*entities.AppointmentsList, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, total, err := s.AppointmentRepo.AdminList(date, employeeID, status, limit, offset)
	if err != nil {
		return nil, err
	}

	list := &entities.AppointmentsList{Total: total, Limit: limit, Offset: offset}
	for i := range rows {
		resp, err := s.Booking.respond(&rows[i])
		if err != nil {
			return nil, err
		}
		list.Appointments = append(list.Appointments, *resp)
	}
	return list, nil
}

func (s *AdminService) MarkNoShow(code string) error {
	appointment, err := s.AppointmentRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if appointment.Status != db.AppointmentConfirmed && appointment.Status != db.AppointmentPending {
		return fmt.Errorf("appointment %s is %s and cannot be marked as a no-show", code, appointment.Status)
	}
	return s.AppointmentRepo.UpdateStatus(code, db.AppointmentNoShow)
}

func (s *AdminService) ListEmployees(activeOnly bool) ([]db.Employee, error) {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}
	return s.EmployeeRepo.ListEmployees(salon.ID, activeOnly)
}

func (s *AdminService) CreateEmployee(fullName, email, phone string) (*db.Employee, error) {
	if fullName == "" {
		return nil, fmt.Errorf("employee name cannot be empty")
	}
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}
	employee := &db.Employee{
		ID:       uuid.NewString(),
		SalonID:  salon.ID,
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Active:   true,
	}
	if err := s.EmployeeRepo.CreateEmployee(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *AdminService) UpdateEmployee(e *db.Employee) error {
	return s.EmployeeRepo.UpdateEmployee(e)
}

func (s *AdminService) CreateLeaveRequest(employeeID, startDate, endDate, reason string) (*db.LeaveRequest, error) {
	if _, err := schedule.ParseDate(startDate); err != nil {
		return nil, err
	}
	end, err := schedule.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	start, _ := schedule.ParseDate(startDate)
	if end.Before(start) {
		return nil, fmt.Errorf("leave end date is before start date")
	}
	if _, err := s.EmployeeRepo.GetEmployee(employeeID); err != nil {
		return nil, err
	}

	leave := &db.LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     db.LeavePending,
		Reason:     reason,
	}
	if err := s.EmployeeRepo.CreateLeaveRequest(leave); err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *AdminService) SetLeaveStatus(id int, status string) error {
	if status != db.LeaveApproved && status != db.LeaveRejected {
		return fmt.Errorf("leave status must be '%s' or '%s'", db.LeaveApproved, db.LeaveRejected)
	}
	return s.EmployeeRepo.SetLeaveStatus(id, status)
}

func (s *AdminService) ListLeaveRequests(status string) ([]db.LeaveRequest, error) {
	return s.EmployeeRepo.ListLeaveRequests(status)
}

func (s *AdminService) ListServices(activeOnly bool) ([]db.Service, error) {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}
	return s.ServiceRepo.ListServices(salon.ID, activeOnly)
}

func (s *AdminService) CreateService(svc *db.Service) error {
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("service duration must be positive")
	}
	if svc.BufferBeforeMinutes < 0 || svc.BufferAfterMinutes < 0 {
		return fmt.Errorf("service buffers cannot be negative")
	}
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return err
	}
	svc.SalonID = salon.ID
	return s.ServiceRepo.CreateService(svc)
}

func (s *AdminService) UpdateService(svc *db.Service) error {
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("service duration must be positive")
	}
	return s.ServiceRepo.UpdateService(svc)
}

func (s *AdminService) GetOpeningHours() (schedule.WeekHours, error) {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return schedule.WeekHours{}, err
	}
	return schedule.ParseWeekHours(salon.OpeningHours)
}

// UpdateOpeningHours validates the payload by round-tripping it through the
// schedule parser before persisting.
func (s *AdminService) UpdateOpeningHours(raw []byte) error {
	hours, err := schedule.ParseWeekHours(raw)
	if err != nil {
		return err
	}
	normalized, err := schedule.MarshalWeekHours(hours)
	if err != nil {
		return err
	}
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return err
	}
	return s.SalonRepo.UpdateOpeningHours(salon.ID, normalized)
}

func (s *AdminService) ListClosures() ([]db.Closure, error) {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}
	return s.SalonRepo.ListClosures(salon.ID)
}

func (s *AdminService) CreateClosure(startDate, endDate, reason string) (*db.Closure, error) {
	start, err := schedule.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("closure end date is before start date")
	}
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}
	closure := &db.Closure{SalonID: salon.ID, StartDate: startDate, EndDate: endDate, Reason: reason}
	if err := s.SalonRepo.CreateClosure(closure); err != nil {
		return nil, err
	}
	return closure, nil
}

func (s *AdminService) DeleteClosure(id int) error {
	return s.SalonRepo.DeleteClosure(id)
}

func (s *AdminService) ListProducts(activeOnly bool) ([]db.Product, error) {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}
	return s.InventoryRepo.ListProducts(salon.ID, activeOnly)
}

func (s *AdminService) CreateProduct(p *db.Product) error {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return err
	}
	p.SalonID = salon.ID
	return s.InventoryRepo.CreateProduct(p)
}

func (s *AdminService) AdjustStock(productID, delta int) error {
	return s.InventoryRepo.AdjustStock(productID, delta)
}

func (s *AdminService) ListLowStock() ([]db.Product, error) {
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}
	return s.InventoryRepo.ListLowStock(salon.ID)
}

// DailyReport aggregates one day's appointment outcomes and paid revenue.
func (s *AdminService) DailyReport(date string) (*entities.DailyReport, error) {
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, err
	}
	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}

	counts, err := s.AppointmentRepo.CountByStatusForDay(salon.ID, date)
	if err != nil {
		return nil, err
	}
	salesCount, revenueCents, err := s.SaleRepo.RevenueForDay(salon.ID, date)
	if err != nil {
		return nil, err
	}

	report := &entities.DailyReport{
		Date:         date,
		Completed:    counts[db.AppointmentCompleted],
		Cancelled:    counts[db.AppointmentCancelled],
		NoShows:      counts[db.AppointmentNoShow],
		SalesCount:   salesCount,
		RevenueCents: revenueCents,
	}
	for _, n := range counts {
		report.AppointmentsTotal += n
	}
	return report, nil
}
