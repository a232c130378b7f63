package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bellezza/internal/db"
)

type EmployeeRepository struct {
	DB *sql.DB
}

func NewEmployeeRepository(database *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: database}
}

func (r *EmployeeRepository) ListEmployees(salonID int, activeOnly bool) ([]db.Employee, error) {
	query := `
		SELECT id, salon_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), active, created_at, updated_at
		FROM employees
		WHERE salon_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY full_name`

	rows, err := r.DB.Query(query, salonID)
	if err != nil {
		return nil, fmt.Errorf("error querying employees: %w", err)
	}
	defer rows.Close()

	var employees []db.Employee
	for rows.Next() {
		var e db.Employee
		if err := rows.Scan(&e.ID, &e.SalonID, &e.FullName, &e.Email, &e.Phone, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) GetEmployee(id string) (*db.Employee, error) {
	var e db.Employee
	query := `
		SELECT id, salon_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), active, created_at, updated_at
		FROM employees WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&e.ID, &e.SalonID, &e.FullName, &e.Email, &e.Phone, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee '%s' not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) CreateEmployee(e *db.Employee) error {
	query := `
		INSERT INTO employees (id, salon_id, full_name, email, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING created_at, updated_at`
	return r.DB.QueryRow(query, e.ID, e.SalonID, e.FullName, e.Email, e.Phone).
		Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *EmployeeRepository) UpdateEmployee(e *db.Employee) error {
	query := `
		UPDATE employees
		SET full_name = $1, email = $2, phone = $3, active = $4, updated_at = NOW()
		WHERE id = $5`
	result, err := r.DB.Exec(query, e.FullName, e.Email, e.Phone, e.Active, e.ID)
	if err != nil {
		return fmt.Errorf("error updating employee: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("employee '%s' not found", e.ID)
	}
	return nil
}

func (r *EmployeeRepository) CreateLeaveRequest(l *db.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (employee_id, start_date, end_date, status, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, l.EmployeeID, l.StartDate, l.EndDate, l.Status, l.Reason).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *EmployeeRepository) SetLeaveStatus(id int, status string) error {
	query := `UPDATE leave_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("error updating leave request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("leave request %d not found", id)
	}
	return nil
}

func (r *EmployeeRepository) ListLeaveRequests(status string) ([]db.LeaveRequest, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, status, COALESCE(reason, ''), created_at, updated_at
		FROM leave_requests`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying leave requests: %w", err)
	}
	defer rows.Close()

	var requests []db.LeaveRequest
	for rows.Next() {
		var l db.LeaveRequest
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.Status, &l.Reason, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning leave request: %w", err)
		}
		requests = append(requests, l)
	}
	return requests, rows.Err()
}

// ListApprovedLeaveOverlapping returns approved leave intersecting the
// inclusive [from, to] date range. An empty employeeID returns leave for all
// employees.
func (r *EmployeeRepository) ListApprovedLeaveOverlapping(employeeID, from, to string) ([]db.LeaveRequest, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, status, COALESCE(reason, ''), created_at, updated_at
		FROM leave_requests
		WHERE status = 'approved' AND start_date <= $2 AND end_date >= $1`
	args := []interface{}{from, to}
	if employeeID != "" {
		query += ` AND employee_id = $3`
		args = append(args, employeeID)
	}
	query += ` ORDER BY start_date`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying approved leave: %w", err)
	}
	defer rows.Close()

	var requests []db.LeaveRequest
	for rows.Next() {
		var l db.LeaveRequest
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.Status, &l.Reason, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning leave request: %w", err)
		}
		requests = append(requests, l)
	}
	return requests, rows.Err()
}
