package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bellezza/internal/db"
)

type SaleRepository struct {
	DB *sql.DB
}

func NewSaleRepository(database *sql.DB) *SaleRepository {
	return &SaleRepository{DB: database}
}

// CreateSale stores the sale with its line items and decrements product stock
// in a single transaction.
func (r *SaleRepository) CreateSale(sale *db.Sale, items []db.SaleItem, inventory *InventoryRepository) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting sale transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO sales
		(id, salon_id, appointment_code, payment_method, payment_status, total_cents, stripe_session_id, customer_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`
	err = tx.QueryRow(query,
		sale.ID, sale.SalonID, sale.AppointmentCode, sale.PaymentMethod, sale.PaymentStatus,
		sale.TotalCents, sale.StripeSessionID, sale.CustomerEmail,
	).Scan(&sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting sale: %w", err)
	}

	for i := range items {
		item := &items[i]
		err = tx.QueryRow(`
			INSERT INTO sale_items (sale_id, description, product_id, service_id, quantity, unit_price_cents)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			sale.ID, item.Description, item.ProductID, item.ServiceID, item.Quantity, item.UnitPriceCents,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("error inserting sale item: %w", err)
		}
		if item.ProductID.Valid {
			if err := inventory.DecrementStockTx(tx, int(item.ProductID.Int64), item.Quantity); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *SaleRepository) GetSale(id string) (*db.Sale, []db.SaleItem, error) {
	var s db.Sale
	query := `
		SELECT id, salon_id, appointment_code, payment_method, payment_status, total_cents,
		       COALESCE(stripe_session_id, ''), COALESCE(customer_email, ''), created_at, updated_at
		FROM sales WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&s.ID, &s.SalonID, &s.AppointmentCode, &s.PaymentMethod, &s.PaymentStatus,
		&s.TotalCents, &s.StripeSessionID, &s.CustomerEmail, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("sale '%s' not found: %w", id, err)
		}
		return nil, nil, fmt.Errorf("error querying sale: %w", err)
	}

	rows, err := r.DB.Query(`
		SELECT id, sale_id, description, product_id, service_id, quantity, unit_price_cents
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying sale items: %w", err)
	}
	defer rows.Close()

	var items []db.SaleItem
	for rows.Next() {
		var item db.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.Description, &item.ProductID, &item.ServiceID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, nil, fmt.Errorf("error scanning sale item: %w", err)
		}
		items = append(items, item)
	}
	return &s, items, rows.Err()
}

func (r *SaleRepository) GetSaleByStripeSessionID(sessionID string) (*db.Sale, error) {
	var s db.Sale
	query := `
		SELECT id, salon_id, appointment_code, payment_method, payment_status, total_cents,
		       COALESCE(stripe_session_id, ''), COALESCE(customer_email, ''), created_at, updated_at
		FROM sales WHERE stripe_session_id = $1`
	err := r.DB.QueryRow(query, sessionID).Scan(
		&s.ID, &s.SalonID, &s.AppointmentCode, &s.PaymentMethod, &s.PaymentStatus,
		&s.TotalCents, &s.StripeSessionID, &s.CustomerEmail, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sale for session '%s' not found: %w", sessionID, err)
		}
		return nil, fmt.Errorf("error querying sale by session: %w", err)
	}
	return &s, nil
}

func (r *SaleRepository) UpdatePaymentStatusBySessionID(sessionID, paymentStatus string) error {
	query := `UPDATE sales SET payment_status = $1, updated_at = NOW() WHERE stripe_session_id = $2`
	result, err := r.DB.Exec(query, paymentStatus, sessionID)
	if err != nil {
		return fmt.Errorf("error updating sale payment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("sale for session '%s' not found", sessionID)
	}
	return nil
}

// RevenueForDay returns the number of paid sales and their total for one day.
func (r *SaleRepository) RevenueForDay(salonID int, date string) (int, int, error) {
	var count, cents int
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
		FROM sales
		WHERE salon_id = $1 AND payment_status = 'paid' AND DATE(created_at) = $2`
	if err := r.DB.QueryRow(query, salonID, date).Scan(&count, &cents); err != nil {
		return 0, 0, fmt.Errorf("error querying daily revenue: %w", err)
	}
	return count, cents, nil
}
