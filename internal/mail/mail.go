// Package mail delivers reminder emails.
package mail

import (
	"context"
	"fmt"
	"time"

	"rps_game/internal/logger"

	gomail "github.com/wneessen/go-mail"
)

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Msg builds the plain text email. Invalid addresses are rejected here, before any dial.
func (m Message) Msg() (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("from address %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("to address %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)
	return msg, nil
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender relays mail through an SMTP server. STARTTLS is used when the
// server offers it; PLAIN auth is used when Username is set.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

func (s *SMTPSender) client() (*gomail.Client, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	opts := []gomail.Option{
		gomail.WithPort(s.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(timeout),
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}
	return gomail.NewClient(s.Host, opts...)
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.Msg()
	if err != nil {
		return err
	}
	c, err := s.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.To, err)
	}
	return nil
}

// LogSender only logs messages. Used when no SMTP server is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, m Message) error {
	logger.WithContext(ctx).Info("email (not sent, smtp disabled)", "to", m.To, "subject", m.Subject)
	return nil
}
