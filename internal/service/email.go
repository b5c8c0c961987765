package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"driveshare-backend/internal/domain"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendBookingRequestNotification(ctx context.Context, hostEmail, renterName, carTitle, startDate, endDate string) error {
	subject := fmt.Sprintf("New Booking Request: %s", carTitle)
	plainText := fmt.Sprintf("%s wants to book your %s from %s to %s", renterName, carTitle, startDate, endDate)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>New Booking Request</h2>
				<p><strong>%s</strong> has requested your <strong>%s</strong> from %s to %s.</p>
			</body>
		</html>
	`, renterName, carTitle, startDate, endDate)
	return s.send(ctx, hostEmail, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendBookingDecisionNotification(ctx context.Context, renterEmail, carTitle string, approved bool) error {
	verb := "approved"
	if !approved {
		verb = "rejected"
	}
	subject := fmt.Sprintf("Booking %s: %s", verb, carTitle)
	plainText := fmt.Sprintf("Your booking request for %s was %s", carTitle, verb)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Your booking request for <strong>%s</strong> was %s.</p>
			</body>
		</html>
	`, carTitle, verb)
	return s.send(ctx, renterEmail, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendBookingTransitionNotification(ctx context.Context, renterEmail, carTitle string, status domain.BookingStatus) error {
	headline := "Booking started"
	detail := "is now active, enjoy your trip"
	if status == domain.BookingStatusCompleted {
		headline = "Booking completed"
		detail = "is complete, thanks for renting with us"
	}
	subject := fmt.Sprintf("%s: %s", headline, carTitle)
	plainText := fmt.Sprintf("Your booking for %s %s", carTitle, detail)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Your booking for <strong>%s</strong> %s.</p>
			</body>
		</html>
	`, carTitle, detail)
	return s.send(ctx, renterEmail, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendListingDecisionNotification(ctx context.Context, hostEmail, carTitle string, approved bool) error {
	verb := "approved"
	if !approved {
		verb = "rejected"
	}
	subject := fmt.Sprintf("Listing %s: %s", verb, carTitle)
	plainText := fmt.Sprintf("Your listing %s was %s", carTitle, verb)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Your listing <strong>%s</strong> was %s.</p>
			</body>
		</html>
	`, carTitle, verb)
	return s.send(ctx, hostEmail, subject, plainText, htmlContent)
}
