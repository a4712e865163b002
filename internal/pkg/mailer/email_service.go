package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, displayName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendWelcome(toEmail, displayName string) error {
	m := s.welcomeMessage(toEmail, displayName)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome mail to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) welcomeMessage(toEmail, displayName string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to your Study Assistant")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your study assistant is ready. Start a study session, ask for notes with "make notes" and test yourself with "quiz me".</p>
		</div>
	`, html.EscapeString(displayName))

	m.SetBody("text/html", body)
	return m
}

// NopEmailService is used when SMTP is not configured.
type NopEmailService struct{}

func (NopEmailService) SendWelcome(string, string) error { return nil }
