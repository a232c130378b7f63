package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bellezza/internal/db"
)

type InventoryRepository struct {
	DB *sql.DB
}

func NewInventoryRepository(database *sql.DB) *InventoryRepository {
	return &InventoryRepository{DB: database}
}

const productColumns = `id, salon_id, name, COALESCE(sku, ''), price_cents, stock, low_stock_at, active`

func (r *InventoryRepository) ListProducts(salonID int, activeOnly bool) ([]db.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE salon_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(query, salonID)
	if err != nil {
		return nil, fmt.Errorf("error querying products: %w", err)
	}
	defer rows.Close()

	var products []db.Product
	for rows.Next() {
		var p db.Product
		if err := rows.Scan(&p.ID, &p.SalonID, &p.Name, &p.SKU, &p.PriceCents, &p.Stock, &p.LowStockAt, &p.Active); err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *InventoryRepository) GetProduct(id int) (*db.Product, error) {
	var p db.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.SalonID, &p.Name, &p.SKU, &p.PriceCents, &p.Stock, &p.LowStockAt, &p.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying product: %w", err)
	}
	return &p, nil
}

func (r *InventoryRepository) CreateProduct(p *db.Product) error {
	query := `
		INSERT INTO products (salon_id, name, sku, price_cents, stock, low_stock_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id`
	return r.DB.QueryRow(query, p.SalonID, p.Name, p.SKU, p.PriceCents, p.Stock, p.LowStockAt).Scan(&p.ID)
}

// AdjustStock applies a delta to a product's stock. Negative adjustments are
// guarded so stock never goes below zero.
func (r *InventoryRepository) AdjustStock(productID, delta int) error {
	query := `
		UPDATE products
		SET stock = stock + $1
		WHERE id = $2 AND stock + $1 >= 0`
	result, err := r.DB.Exec(query, delta, productID)
	if err != nil {
		return fmt.Errorf("error adjusting stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("insufficient stock for product %d", productID)
	}
	return nil
}

// DecrementStockTx reserves stock inside the sale transaction.
func (r *InventoryRepository) DecrementStockTx(tx *sql.Tx, productID, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1`
	result, err := tx.Exec(query, quantity, productID)
	if err != nil {
		return fmt.Errorf("error decrementing stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("insufficient stock for product %d", productID)
	}
	return nil
}

func (r *InventoryRepository) ListLowStock(salonID int) ([]db.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE salon_id = $1 AND active = TRUE AND stock <= low_stock_at
		ORDER BY stock`
	rows, err := r.DB.Query(query, salonID)
	if err != nil {
		return nil, fmt.Errorf("error querying low stock products: %w", err)
	}
	defer rows.Close()

	var products []db.Product
	for rows.Next() {
		var p db.Product
		if err := rows.Scan(&p.ID, &p.SalonID, &p.Name, &p.SKU, &p.PriceCents, &p.Stock, &p.LowStockAt, &p.Active); err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
