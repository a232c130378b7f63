package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bellezza/internal/db"
)

func reminderJobService(sms, email func() error) (*JobService, *int, *int) {
	smsCalls, emailCalls := 0, 0
	s := &JobService{
		Sender: NewSenderService("Bellezza", time.UTC),
		sendSMS: func(string, string) error {
			smsCalls++
			return sms()
		},
		sendEmail: func(string, string, string, string, string) error {
			emailCalls++
			return email()
		},
	}
	return s, &smsCalls, &emailCalls
}

func reminderAppointment(phone, email string) db.Appointment {
	return db.Appointment{
		ID:            7,
		Code:          "A1B2C3D4",
		CustomerName:  "Giulia",
		CustomerPhone: phone,
		CustomerEmail: email,
		StartTime:     time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestRemindEmailOnlyWhenNoPhone(t *testing.T) {
	ok := func() error { return nil }
	s, smsCalls, emailCalls := reminderJobService(ok, ok)

	sent := s.remind(reminderAppointment("", "giulia@example.com"))

	assert.True(t, sent)
	assert.Equal(t, 0, *smsCalls)
	assert.Equal(t, 1, *emailCalls)
}

func TestRemindBothChannels(t *testing.T) {
	ok := func() error { return nil }
	s, smsCalls, emailCalls := reminderJobService(ok, ok)

	sent := s.remind(reminderAppointment("+391234567890", "giulia@example.com"))

	assert.True(t, sent)
	assert.Equal(t, 1, *smsCalls)
	assert.Equal(t, 1, *emailCalls)
}

func TestRemindNotSentWithoutAnyChannel(t *testing.T) {
	ok := func() error { return nil }
	s, smsCalls, emailCalls := reminderJobService(ok, ok)

	sent := s.remind(reminderAppointment("", ""))

	assert.False(t, sent, "no contact details means the appointment must not be marked reminded")
	assert.Equal(t, 0, *smsCalls)
	assert.Equal(t, 0, *emailCalls)
}

func TestRemindEmailFallbackWhenSMSFails(t *testing.T) {
	fail := func() error { return fmt.Errorf("twilio unavailable") }
	ok := func() error { return nil }
	s, smsCalls, emailCalls := reminderJobService(fail, ok)

	sent := s.remind(reminderAppointment("+391234567890", "giulia@example.com"))

	assert.True(t, sent, "a delivered email still counts as reminded")
	assert.Equal(t, 1, *smsCalls)
	assert.Equal(t, 1, *emailCalls)
}

func TestRemindAllChannelsFailing(t *testing.T) {
	fail := func() error { return fmt.Errorf("provider down") }
	s, _, _ := reminderJobService(fail, fail)

	sent := s.remind(reminderAppointment("+391234567890", "giulia@example.com"))
	assert.False(t, sent)
}
