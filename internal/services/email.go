package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional mail through Resend. Delivery is always
// best effort; callers log failures and move on.
type EmailService struct {
	client *resend.Client
	from   string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("RESEND_API_KEY")
	from := os.Getenv("FROM_EMAIL")

	if apiKey == "" {
		log.Printf("⚠️  WARNING: RESEND_API_KEY is empty!")
	}
	if from == "" {
		from = "onboarding@resend.dev" // Resend's default test sender
	}

	return &EmailService{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendBidAcceptedEmail tells the bidder their bid was accepted and payment is
// verified, so work may commence.
func (es *EmailService) SendBidAcceptedEmail(to, projectName string, projectID int64, bidAmount float64) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Your bid was accepted!</h2>
        <p>The owner of <strong>%s</strong> (Project ID: %d) has accepted your bid of Rs %.2f and the payment has been verified.</p>
        <p>You can now start the work and chat with the project owner inside the app. Payment will be released after your work is verified.</p>
        <p style="margin-top: 30px; font-size: 12px; color: #666;">This is an automated message from MusicLancer, please do not reply.</p>
    </div>
</body>
</html>`, projectName, projectID, bidAmount)

	params := &resend.SendEmailRequest{
		From:    es.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Bid accepted for %s", projectName),
		Html:    htmlBody,
	}

	sent, err := es.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("✅ Email sent to %s (ID: %s)", to, sent.Id)
	return nil
}
