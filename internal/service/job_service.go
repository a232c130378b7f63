package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bellezza/internal/db"
	"bellezza/internal/repository"
)

type JobService struct {
	Repo   *repository.JobRepository
	Sender *SenderService

	// Overridable in tests; default to the real SendGrid/Twilio senders.
	sendSMS   func(toNumber, body string) error
	sendEmail func(toEmail, toName, subject, plainBody, htmlBody string) error
}

func NewJobService(repo *repository.JobRepository, sender *SenderService) *JobService {
	return &JobService{
		Repo:      repo,
		Sender:    sender,
		sendSMS:   SendSMS,
		sendEmail: SendEmailWithSendGrid,
	}
}

// CompleteFinishedAppointments marks confirmed appointments whose end time
// has passed as completed.
func (s *JobService) CompleteFinishedAppointments() error {
	appointmentIDs, err := s.Repo.GetConfirmedAppointmentIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed appointments past end time: %w", err)
	}

	if len(appointmentIDs) == 0 {
		return nil
	}

	log.Info().Ints("ids", appointmentIDs).Msg("cron job: marking appointments completed")
	if err := s.Repo.UpdateAppointmentStatuses(appointmentIDs, db.AppointmentCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update appointment statuses: %w", err)
	}
	return nil
}

// PurgeStalePending deletes pending appointments never confirmed by staff,
// created before the given time.
func (s *JobService) PurgeStalePending(before time.Time) (int64, error) {
	return s.Repo.DeletePendingOlderThan(before)
}

// SendUpcomingReminders sends SMS and email reminders for confirmed
// appointments starting within the lookahead window. An appointment is only
// marked reminded when at least one channel went out, so customers are never
// silently skipped.
func (s *JobService) SendUpcomingReminders(lookahead time.Duration) error {
	now := time.Now()
	candidates, err := s.Repo.ListReminderCandidates(now, now.Add(lookahead))
	if err != nil {
		return fmt.Errorf("cron job: failed to list reminder candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil
	}

	reminded := make([]int, 0, len(candidates))
	for _, a := range candidates {
		if s.remind(a) {
			reminded = append(reminded, a.ID)
		}
	}
	if len(reminded) == 0 {
		return nil
	}

	if err := s.Repo.MarkReminded(reminded); err != nil {
		return fmt.Errorf("cron job: failed to mark appointments reminded: %w", err)
	}
	log.Info().Int("count", len(reminded)).Msg("cron job: reminders sent")
	return nil
}

// remind attempts both channels and reports whether at least one succeeded.
func (s *JobService) remind(a db.Appointment) bool {
	message := fmt.Sprintf("%s: reminder for your appointment %s on %s.",
		s.Sender.SalonName, a.Code, a.StartTime.In(s.Sender.Location).Format("02/01 15:04"))

	sent := false
	if a.CustomerPhone != "" {
		if err := s.sendSMS(a.CustomerPhone, message); err != nil {
			log.Error().Err(err).Str("code", a.Code).Msg("reminder SMS failed")
		} else {
			sent = true
		}
	}
	if a.CustomerEmail != "" {
		subject := fmt.Sprintf("%s: appointment reminder - %s", s.Sender.SalonName, a.Code)
		if err := s.sendEmail(a.CustomerEmail, a.CustomerName, subject, message, ""); err != nil {
			log.Error().Err(err).Str("code", a.Code).Msg("reminder email failed")
		} else {
			sent = true
		}
	}
	return sent
}
