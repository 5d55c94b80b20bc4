package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendApplicationAlert(toEmail, applicantName, loanType string, userScore int) error
	SendDecisionNotice(toEmail, lenderName, status string) error
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

func (s *emailService) SendApplicationAlert(toEmail, applicantName, loanType string, userScore int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "New Loan Application Received")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Loan Application</h2>
			<p><strong>%s</strong> has applied for a <strong>%s</strong> loan.</p>
			<p>Composite score: <strong>%d</strong></p>
			<p>Log in to your lender dashboard to review the full report.</p>
		</div>
	`, applicantName, loanType, userScore)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send application alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Application alert sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendDecisionNotice(toEmail, lenderName, status string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Update on Your Loan Application")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Application Update</h2>
			<p>%s has marked your application as <strong>%s</strong>.</p>
			<p>Open the marketplace chat to see the details and any messages from the lender.</p>
		</div>
	`, lenderName, status)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send decision notice to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
