package entities

import "time"

// AppointmentRequest is the public booking payload. EmployeeID may be empty
// or the literal "any" when the customer has no stylist preference; the
// sentinel is resolved at the API boundary, never passed further down.
type AppointmentRequest struct {
	ServiceID     int    `json:"service_id"`
	EmployeeID    string `json:"employee_id,omitempty"`
	Date          string `json:"date"`       // "2006-01-02"
	StartTime     string `json:"start_time"` // "HH:mm"
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Notes         string `json:"notes,omitempty"`
}

type AppointmentResponse struct {
	Code          string    `json:"code"`
	ServiceID     int       `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	EmployeeID    string    `json:"employee_id,omitempty"`
	EmployeeName  string    `json:"employee_name,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RescheduleRequest struct {
	Email     string `json:"email"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}
