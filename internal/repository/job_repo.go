package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"bellezza/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetConfirmedAppointmentIDsPastEndTime returns confirmed appointments whose
// end time has already passed.
func (r *JobRepository) GetConfirmedAppointmentIDsPastEndTime() ([]int, error) {
	query := `SELECT id FROM appointments WHERE status = 'confirmed' AND end_time < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed appointments past end time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning appointment ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateAppointmentStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating appointment statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Warn().Err(err).Msg("could not get rows affected")
	} else {
		log.Info().Int64("count", rowsAffected).Str("status", newStatus).Msg("updated appointment statuses")
	}
	return nil
}

// DeletePendingOlderThan removes never-confirmed appointments created before
// the given time.
func (r *JobRepository) DeletePendingOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(
		`DELETE FROM appointments WHERE status = 'pending' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending appointments: %w", err)
	}
	return result.RowsAffected()
}

// ListReminderCandidates returns confirmed appointments starting inside
// [from, to) that have not been reminded yet.
func (r *JobRepository) ListReminderCandidates(from, to time.Time) ([]db.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments
		WHERE status = 'confirmed' AND reminder_sent = FALSE
		  AND start_time >= $1 AND start_time < $2
		ORDER BY start_time`
	rows, err := r.DB.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying reminder candidates: %w", err)
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

func (r *JobRepository) MarkReminded(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE appointments SET reminder_sent = TRUE, updated_at = NOW() WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error marking appointments reminded: %w", err)
	}
	return nil
}
