package service

import (
	"context"
	"fmt"

	"rps_game/internal/domain"
	"rps_game/internal/logger"
	"rps_game/internal/mail"
)

const (
	ReminderSubject = "Unfinished game of Rock, Paper, Scissors!"
	reminderBody    = "Hello %s, try out Rock, Paper, Scissors!"
)

// ReminderReport summarizes one sweep
type ReminderReport struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// ReminderService emails users who left games unfinished
type ReminderService struct {
	users  UserStore
	sender mail.Sender
	from   string
	audit  *AuditService
}

func NewReminderService(users UserStore, sender mail.Sender, from string, audit *AuditService) *ReminderService {
	return &ReminderService{users: users, sender: sender, from: from, audit: audit}
}

// SendReminders sends one reminder per user with an email and an unfinished
// game. Delivery failures are logged and counted, not retried.
func (s *ReminderService) SendReminders(ctx context.Context) (ReminderReport, error) {
	var report ReminderReport

	users, err := s.users.ListReminderTargets(ctx)
	if err != nil {
		return report, fmt.Errorf("list reminder targets: %w", err)
	}

	log := logger.WithContext(ctx)
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		msg := mail.Message{
			From:    s.from,
			To:      u.Email,
			Subject: ReminderSubject,
			Body:    fmt.Sprintf(reminderBody, u.Name),
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			report.Failed++
			RemindersSent.WithLabelValues("failed").Inc()
			log.Error("reminder email failed", "user", u.Name, "error", err)
			continue
		}

		report.Sent++
		RemindersSent.WithLabelValues("sent").Inc()
		s.audit.Log(ctx, u.ID, domain.AuditActionReminder, map[string]interface{}{"email": u.Email})
	}

	log.Info("reminder sweep done", "sent", report.Sent, "failed", report.Failed)
	return report, nil
}
