package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bellezza/internal/db"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(database *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: database}
}

func (r *ServiceRepository) ListServices(salonID int, activeOnly bool) ([]db.Service, error) {
	query := `
		SELECT id, salon_id, name, duration_minutes, buffer_before_minutes, buffer_after_minutes, price_cents, active
		FROM services
		WHERE salon_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(query, salonID)
	if err != nil {
		return nil, fmt.Errorf("error querying services: %w", err)
	}
	defer rows.Close()

	var services []db.Service
	for rows.Next() {
		var s db.Service
		if err := rows.Scan(&s.ID, &s.SalonID, &s.Name, &s.DurationMinutes, &s.BufferBeforeMinutes, &s.BufferAfterMinutes, &s.PriceCents, &s.Active); err != nil {
			return nil, fmt.Errorf("error scanning service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) GetService(id int) (*db.Service, error) {
	var s db.Service
	query := `
		SELECT id, salon_id, name, duration_minutes, buffer_before_minutes, buffer_after_minutes, price_cents, active
		FROM services WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&s.ID, &s.SalonID, &s.Name, &s.DurationMinutes, &s.BufferBeforeMinutes, &s.BufferAfterMinutes, &s.PriceCents, &s.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("service %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying service: %w", err)
	}
	return &s, nil
}

func (r *ServiceRepository) CreateService(s *db.Service) error {
	query := `
		INSERT INTO services (salon_id, name, duration_minutes, buffer_before_minutes, buffer_after_minutes, price_cents, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id`
	return r.DB.QueryRow(query, s.SalonID, s.Name, s.DurationMinutes, s.BufferBeforeMinutes, s.BufferAfterMinutes, s.PriceCents).
		Scan(&s.ID)
}

func (r *ServiceRepository) UpdateService(s *db.Service) error {
	query := `
		UPDATE services
		SET name = $1, duration_minutes = $2, buffer_before_minutes = $3, buffer_after_minutes = $4, price_cents = $5, active = $6
		WHERE id = $7`
	result, err := r.DB.Exec(query, s.Name, s.DurationMinutes, s.BufferBeforeMinutes, s.BufferAfterMinutes, s.PriceCents, s.Active, s.ID)
	if err != nil {
		return fmt.Errorf("error updating service: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("service %d not found", s.ID)
	}
	return nil
}
