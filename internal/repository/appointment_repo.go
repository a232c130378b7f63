package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bellezza/internal/db"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(database *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: database}
}

const appointmentColumns = `
	id, code, salon_id, service_id, employee_id,
	customer_name, customer_email, customer_phone,
	status, start_time, end_time, COALESCE(notes, ''), created_at, updated_at`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*db.Appointment, error) {
	var a db.Appointment
	err := row.Scan(
		&a.ID, &a.Code, &a.SalonID, &a.ServiceID, &a.EmployeeID,
		&a.CustomerName, &a.CustomerEmail, &a.CustomerPhone,
		&a.Status, &a.StartTime, &a.EndTime, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) CreateAppointment(a *db.Appointment) error {
	query := `
		INSERT INTO appointments
		(code, salon_id, service_id, employee_id, customer_name, customer_email, customer_phone,
		 status, start_time, end_time, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		a.Code, a.SalonID, a.ServiceID, a.EmployeeID,
		a.CustomerName, a.CustomerEmail, a.CustomerPhone,
		a.Status, a.StartTime, a.EndTime, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AppointmentRepository) GetByCode(code string) (*db.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE code = $1`
	a, err := scanAppointment(r.DB.QueryRow(query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("appointment with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return a, nil
}

func (r *AppointmentRepository) GetByCodeAndEmail(code, email string) (*db.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE code = $1 AND customer_email = $2`
	a, err := scanAppointment(r.DB.QueryRow(query, code, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("appointment with code '%s' not found for that email: %w", code, err)
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return a, nil
}

// ListBetween returns non-cancelled appointments overlapping [from, to).
// An empty employeeID returns appointments for all employees, including
// unassigned ones.
func (r *AppointmentRepository) ListBetween(salonID int, from, to time.Time, employeeID string) ([]db.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments
		WHERE salon_id = $1
		  AND status NOT IN ('cancelled')
		  AND start_time < $3 AND end_time > $2`
	args := []interface{}{salonID, from, to}
	if employeeID != "" {
		// Unassigned appointments block every employee's calendar.
		query += ` AND (employee_id = $4 OR employee_id IS NULL)`
		args = append(args, employeeID)
	}
	query += ` ORDER BY start_time`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer rows.Close()

	var appointments []db.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

func (r *AppointmentRepository) UpdateStatus(code, status string) error {
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE code = $2`
	result, err := r.DB.Exec(query, status, code)
	if err != nil {
		return fmt.Errorf("error updating appointment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("appointment with code '%s' not found", code)
	}
	return nil
}

func (r *AppointmentRepository) Reschedule(code string, start, end time.Time) error {
	query := `UPDATE appointments SET start_time = $1, end_time = $2, updated_at = NOW() WHERE code = $3`
	result, err := r.DB.Exec(query, start, end, code)
	if err != nil {
		return fmt.Errorf("error rescheduling appointment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("appointment with code '%s' not found", code)
	}
	return nil
}

// AdminList returns appointments with optional date ("2006-01-02"), employee
// and status filters, newest first.
func (r *AppointmentRepository) AdminList(date, employeeID, status string, limit, offset int) ([]db.Appointment, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		where += ` AND DATE(start_time) = $` + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if employeeID != "" {
		where += ` AND employee_id = $` + strconv.Itoa(idx)
		args = append(args, employeeID)
		idx++
	}
	if status != "" {
		where += ` AND status = $` + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM appointments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting appointments: %w", err)
	}

	query := `SELECT` + appointmentColumns + ` FROM appointments` + where +
		` ORDER BY start_time DESC LIMIT $` + strconv.Itoa(idx) + ` OFFSET $` + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing appointments: %w", err)
	}
	defer rows.Close()

	var appointments []db.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	return appointments, total, rows.Err()
}

// CountByStatusForDay returns per-status appointment counts for one day.
func (r *AppointmentRepository) CountByStatusForDay(salonID int, date string) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM appointments
		WHERE salon_id = $1 AND DATE(start_time) = $2
		GROUP BY status`
	rows, err := r.DB.Query(query, salonID, date)
	if err != nil {
		return nil, fmt.Errorf("error counting appointments by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
