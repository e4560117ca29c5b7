package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSignInLink(toEmail, link string, ttlMinutes int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendSignInLink(toEmail, link string, ttlMinutes int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your sign-in link")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Sign in to OrgNotes</h2>
			<p>Click the button below to sign in. No password needed.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Sign in</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>This link will expire in %d minutes and can be used once.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, link, link, ttlMinutes)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send sign-in link to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Sign-in link sent to %s\n", toEmail)
	return nil
}
