package db

import (
	"database/sql"
	"time"
)

type Salon struct {
	ID           int
	Name         string
	Timezone     string
	OpeningHours []byte // per-weekday JSON, "0" (Sunday) .. "6" (Saturday)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Employee struct {
	ID        string
	SalonID   int
	FullName  string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Service struct {
	ID                  int
	SalonID             int
	Name                string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	PriceCents          int
	Active              bool
}

// TotalMinutes is the span an appointment of this service occupies,
// buffers included.
func (s Service) TotalMinutes() int {
	return s.BufferBeforeMinutes + s.DurationMinutes + s.BufferAfterMinutes
}

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

type Appointment struct {
	ID            int
	Code          string
	SalonID       int
	ServiceID     int
	EmployeeID    sql.NullString // NULL means any employee
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        string
	StartTime     time.Time // buffer-inclusive
	EndTime       time.Time // buffer-inclusive
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID         int
	EmployeeID string
	StartDate  string // "2006-01-02", inclusive
	EndDate    string // inclusive
	Status     string
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Closure struct {
	ID        int
	SalonID   int
	StartDate string // "2006-01-02", inclusive
	EndDate   string // inclusive
	Reason    string
}

type Product struct {
	ID         int
	SalonID    int
	Name       string
	SKU        string
	PriceCents int
	Stock      int
	LowStockAt int
	Active     bool
}

const (
	SalePaymentCash = "cash"
	SalePaymentCard = "card"

	SalePending  = "pending"
	SalePaid     = "paid"
	SaleRefunded = "refunded"
)

type Sale struct {
	ID              string
	SalonID         int
	AppointmentCode sql.NullString
	PaymentMethod   string
	PaymentStatus   string
	TotalCents      int
	StripeSessionID string
	CustomerEmail   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SaleItem struct {
	ID             int
	SaleID         string
	Description    string
	ProductID      sql.NullInt64
	ServiceID      sql.NullInt64
	Quantity       int
	UnitPriceCents int
}

type StaffAccount struct {
	ID           int
	Email        string
	FullName     string
	PasswordHash string
	Role         string // owner | staff
	CreatedAt    time.Time
}
