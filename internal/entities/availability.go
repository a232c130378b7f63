package entities

// SlotValidationRequest is the booking-confirmation check for a free-form
// (date, time) entry.
type SlotValidationRequest struct {
	ServiceID  int    `json:"service_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
}

type SlotValidationResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
