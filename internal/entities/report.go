package entities

type DailyReport struct {
	Date              string `json:"date"`
	AppointmentsTotal int    `json:"appointments_total"`
	Completed         int    `json:"completed"`
	Cancelled         int    `json:"cancelled"`
	NoShows           int    `json:"no_shows"`
	SalesCount        int    `json:"sales_count"`
	RevenueCents      int    `json:"revenue_cents"`
}
