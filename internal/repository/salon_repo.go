package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bellezza/internal/db"
)

type SalonRepository struct {
	DB *sql.DB
}

func NewSalonRepository(database *sql.DB) *SalonRepository {
	return &SalonRepository{DB: database}
}

// GetSalon returns the salon record. This is a single-salon install, so the
// first row is the salon.
func (r *SalonRepository) GetSalon() (*db.Salon, error) {
	var s db.Salon
	query := `
		SELECT id, name, timezone, opening_hours, created_at, updated_at
		FROM salons
		ORDER BY id
		LIMIT 1`
	err := r.DB.QueryRow(query).Scan(
		&s.ID, &s.Name, &s.Timezone, &s.OpeningHours, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("salon not configured: %w", err)
		}
		return nil, fmt.Errorf("error querying salon: %w", err)
	}
	return &s, nil
}

func (r *SalonRepository) UpdateOpeningHours(salonID int, hours []byte) error {
	query := `UPDATE salons SET opening_hours = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.Exec(query, hours, salonID)
	if err != nil {
		return fmt.Errorf("error updating opening hours: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("salon %d not found", salonID)
	}
	return nil
}

// ListClosuresOverlapping returns closures intersecting [from, to], both
// inclusive ISO date strings.
func (r *SalonRepository) ListClosuresOverlapping(salonID int, from, to string) ([]db.Closure, error) {
	query := `
		SELECT id, salon_id, start_date, end_date, COALESCE(reason, '')
		FROM salon_closures
		WHERE salon_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date`
	rows, err := r.DB.Query(query, salonID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying closures: %w", err)
	}
	defer rows.Close()

	var closures []db.Closure
	for rows.Next() {
		var c db.Closure
		if err := rows.Scan(&c.ID, &c.SalonID, &c.StartDate, &c.EndDate, &c.Reason); err != nil {
			return nil, fmt.Errorf("error scanning closure: %w", err)
		}
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

func (r *SalonRepository) ListClosures(salonID int) ([]db.Closure, error) {
	query := `
		SELECT id, salon_id, start_date, end_date, COALESCE(reason, '')
		FROM salon_closures
		WHERE salon_id = $1
		ORDER BY start_date`
	rows, err := r.DB.Query(query, salonID)
	if err != nil {
		return nil, fmt.Errorf("error querying closures: %w", err)
	}
	defer rows.Close()

	var closures []db.Closure
	for rows.Next() {
		var c db.Closure
		if err := rows.Scan(&c.ID, &c.SalonID, &c.StartDate, &c.EndDate, &c.Reason); err != nil {
			return nil, fmt.Errorf("error scanning closure: %w", err)
		}
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

func (r *SalonRepository) CreateClosure(c *db.Closure) error {
	query := `
		INSERT INTO salon_closures (salon_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.DB.QueryRow(query, c.SalonID, c.StartDate, c.EndDate, c.Reason).Scan(&c.ID)
}

func (r *SalonRepository) DeleteClosure(id int) error {
	result, err := r.DB.Exec(`DELETE FROM salon_closures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting closure: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("closure %d not found", id)
	}
	return nil
}
