package service

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"bellezza/internal/entities"
)

type SenderService struct {
	SalonName string
	Location  *time.Location
}

func NewSenderService(salonName string, loc *time.Location) *SenderService {
	if loc == nil {
		loc = time.FixedZone("CET", 1*60*60)
	}
	if salonName == "" {
		salonName = "Bellezza"
	}
	return &SenderService{SalonName: salonName, Location: loc}
}

// SendAppointmentEmail composes and sends the appointment status email. The
// send itself runs in a goroutine so booking responses never wait on SendGrid.
func (s *SenderService) SendAppointmentEmail(appointment entities.AppointmentResponse, status string) {
	emailData := entities.AppointmentEmailData{
		CustomerName:    appointment.CustomerName,
		AppointmentCode: appointment.Code,
		ServiceName:     appointment.ServiceName,
		EmployeeName:    appointment.EmployeeName,
		StartFormatted:  appointment.StartTime.In(s.Location).Format("02 Jan 2006 15:04 MST"),
		Status:          status,
		CurrentYear:     time.Now().In(s.Location).Year(),
	}
	if emailData.EmployeeName == "" {
		emailData.EmployeeName = "any available stylist"
	}

	emailSubject := fmt.Sprintf("Your %s appointment is %s - Code: %s", s.SalonName, status, emailData.AppointmentCode)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour appointment at %s is %s.\n\n"+
			"Appointment details:\n"+
			"Booking code: %s\n"+
			"Service: %s\n"+
			"Stylist: %s\n"+
			"When: %s\n\n"+
			"Thank you for choosing %s.",
		emailData.CustomerName, s.SalonName, status,
		emailData.AppointmentCode, emailData.ServiceName, emailData.EmployeeName,
		emailData.StartFormatted, s.SalonName,
	)

	htmlBody := ""
	tmplPath := filepath.Join("internal", "templates", "appointment_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Warn().Err(err).Str("path", tmplPath).Msg("could not parse appointment email template")
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Warn().Err(err).Str("code", emailData.AppointmentCode).Msg("could not render appointment email template")
		} else {
			htmlBody = htmlBodyBuffer.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Error().Err(errEmail).Str("code", emailData.AppointmentCode).Msg("appointment email failed")
		}
	}(appointment.CustomerEmail, emailData.CustomerName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendAppointmentSMS(appointment entities.AppointmentResponse, status string) {
	if appointment.CustomerPhone == "" {
		return
	}
	smsMessage := fmt.Sprintf("%s: your appointment %s has been %s.\nWhen: %s.\nMore details in your email.",
		s.SalonName, appointment.Code, status,
		appointment.StartTime.In(s.Location).Format("02/01 15:04"),
	)

	go func(phone, body, code string) {
		if errSMS := SendSMS(phone, body); errSMS != nil {
			log.Error().Err(errSMS).Str("code", code).Msg("appointment SMS failed")
		}
	}(appointment.CustomerPhone, smsMessage, appointment.Code)
}

// SendReceiptEmail mails a point-of-sale receipt.
func (s *SenderService) SendReceiptEmail(toEmail string, data entities.ReceiptEmailData) {
	if toEmail == "" {
		return
	}
	subject := fmt.Sprintf("Your %s receipt - %s", s.SalonName, data.SaleID)
	plainTextBody := fmt.Sprintf(
		"Thank you for your purchase at %s.\n\n"+
			"Receipt %s\n"+
			"Items: %d\n"+
			"Total: %s\n\n"+
			"%s. All rights reserved.",
		s.SalonName, data.SaleID, data.LineCount, data.TotalFormatted, s.SalonName,
	)

	go func() {
		if err := SendEmailWithSendGrid(toEmail, "", subject, plainTextBody, ""); err != nil {
			log.Error().Err(err).Str("sale_id", data.SaleID).Msg("receipt email failed")
		}
	}()
}

// FormatCents renders a cent amount as a euro string for receipts.
func FormatCents(cents int) string {
	return fmt.Sprintf("%d.%02d €", cents/100, cents%100)
}
