package service

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers contact-form submissions to the support address with a
// one-shot SMTP send. It stays disabled until a host is configured.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	to       string
	logger   *zap.Logger
}

func NewMailer(host string, port int, username, password, to string, logger *zap.Logger) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, to: to, logger: logger}
}

func (m *Mailer) Enabled() bool {
	return m.host != "" && m.to != ""
}

// SendContact forwards a contact-form message, using the visitor's address as
// the reply target.
func (m *Mailer) SendContact(from, message string) error {
	if !m.Enabled() {
		m.logger.Info("Mailer disabled, dropping contact message", zap.String("from", from))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.username)
	msg.SetHeader("Reply-To", from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "Home Harmony contact form")
	msg.SetBody("text/plain", message)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send contact email", zap.Error(err))
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	m.logger.Info("Contact email sent", zap.String("from", from))
	return nil
}
