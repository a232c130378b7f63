package entities

type AppointmentEmailData struct {
	CustomerName    string
	AppointmentCode string
	ServiceName     string
	EmployeeName    string
	StartFormatted  string
	Status          string
	CurrentYear     int
}
