package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendProposalLink(ctx context.Context, clientEmail, clientName, proposalTitle, link string) error {
	subject := fmt.Sprintf("Proposal: %s", proposalTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour proposal %q is ready for review:\n\n%s\n\nBest regards,\n%s",
		clientName, proposalTitle, link, s.fromName)
	return s.send(clientEmail, clientName, subject, body)
}

func (s *emailService) SendProposalAcceptedNotice(ctx context.Context, email, proposalTitle string, totalCents int64) error {
	subject := fmt.Sprintf("Proposal accepted: %s", proposalTitle)
	body := fmt.Sprintf("The proposal %q was accepted at a value of %s.\n\nA project and its receivables were created automatically.",
		proposalTitle, formatCents(totalCents))
	return s.send(email, "", subject, body)
}

func (s *emailService) SendPaymentOverdueReminder(ctx context.Context, email, description string, amountCents int64, dueDate time.Time) error {
	subject := "Payment overdue"
	body := fmt.Sprintf("The transaction %q (%s) was due on %s and is still unsettled.",
		description, formatCents(amountCents), dueDate.Format("2006-01-02"))
	return s.send(email, "", subject, body)
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
