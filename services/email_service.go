// File: /services/email_service.go
package services

import (
	"fmt"

	"github.com/ChakradarReddy/event-management/config"
	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail. Delivery is best effort; callers log
// failures and move on, nothing in the registration lifecycle depends on it.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendWelcomeEmail greets a newly created account.
func (es *EmailService) SendWelcomeEmail(to, name string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to EventHub, %s!</h2>
		<p>Your account has been created. You can now browse upcoming college
		events and register for the ones you like.</p>
	`, name)

	return es.send(to, "Welcome to EventHub", body)
}

// SendCertificateEmail tells a participant their certificate is ready.
func (es *EmailService) SendCertificateEmail(to, name, eventTitle string) error {
	body := fmt.Sprintf(`
		<h2>Certificate Issued</h2>
		<p>Hi %s,</p>
		<p>Your certificate of participation for <strong>%s</strong> has been
		issued. Log in to EventHub to download it.</p>
	`, name, eventTitle)

	return es.send(to, "Your certificate is ready", body)
}
