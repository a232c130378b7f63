package entities

// SaleLineRequest references either a product or a service from the catalog.
type SaleLineRequest struct {
	ProductID *int `json:"product_id,omitempty"`
	ServiceID *int `json:"service_id,omitempty"`
	Quantity  int  `json:"quantity"`
}

type SaleRequest struct {
	PaymentMethod   string            `json:"payment_method"` // cash | card
	CustomerEmail   string            `json:"customer_email,omitempty"`
	AppointmentCode string            `json:"appointment_code,omitempty"`
	Lines           []SaleLineRequest `json:"lines"`
}

type SaleResponse struct {
	SaleID        string `json:"sale_id"`
	PaymentStatus string `json:"payment_status"`
	TotalCents    int    `json:"total_cents"`
	CheckoutURL   string `json:"checkout_url,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
}

type ReceiptEmailData struct {
	SaleID         string
	TotalFormatted string
	LineCount      int
	CurrentYear    int
}
