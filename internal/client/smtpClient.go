package client

import (
	"fmt"
	"plan-fulfillment/internal/config"

	"gopkg.in/gomail.v2"
)

// MailSender sends one email with an optional binary attachment.
type MailSender interface {
	Send(to, subject, body, attachmentPath string) error
}

type smtpMailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailSender(cfg *config.SMTP) MailSender {
	return &smtpMailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpMailSender) Send(to, subject, body, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
