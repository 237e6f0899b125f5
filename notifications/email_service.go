package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/nileshk/portfolio_backend/configs"
	"github.com/nileshk/portfolio_backend/scheduling"
)

const brevoSendURL = "https://api.brevo.com/v3/smtp/email"

// BrevoService sends transactional email through the Brevo HTTP API. A nil
// *BrevoService means the service is not configured; callers surface that as
// a disabled collaborator instead of an error.
type BrevoService struct {
	apiKey      string
	senderEmail string
	senderName  string
	adminEmail  string
	url         string
	client      *http.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

type brevoResponse struct {
	MessageID string `json:"messageId"`
}

func NewEmailService() *BrevoService {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.ConfigDefault("EMAIL_SENDER_NAME", "Portfolio")
	adminEmail := config.ConfigDefault("ADMIN_EMAIL", senderEmail)

	if apiKey == "" || senderEmail == "" {
		log.Println("⚠️ Email service not configured. Missing API Key or Sender Email.")
		return nil
	}

	log.Println("✅ Email service initialized successfully.")
	return &BrevoService{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		adminEmail:  adminEmail,
		url:         brevoSendURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// SendBookingEmails delivers the client confirmation and the admin
// notification for one confirmed booking. Both messages are attempted; the
// first failure is returned.
func (s *BrevoService) SendBookingEmails(ctx context.Context, m scheduling.BookingEmail) (*scheduling.EmailResult, error) {
	clientID, err := s.send(ctx, m.To, m.Name, "Your Meeting is Confirmed!", clientConfirmationHTML(m))
	if err != nil {
		return nil, fmt.Errorf("client confirmation: %w", err)
	}

	adminID, err := s.send(ctx, s.adminEmail, s.senderName, "New Meeting Booked", adminNotificationHTML(m))
	if err != nil {
		return nil, fmt.Errorf("admin notification: %w", err)
	}

	return &scheduling.EmailResult{ClientMessageID: clientID, AdminMessageID: adminID}, nil
}

// SendReminder sends the one-hour-before reminder used by the cron job.
func (s *BrevoService) SendReminder(ctx context.Context, m scheduling.BookingEmail) error {
	_, err := s.send(ctx, m.To, m.Name, "Reminder: Your Meeting Starts in 1 Hour!", reminderHTML(m))
	return err
}

// SendContactNotification notifies the admin about a new contact message.
func (s *BrevoService) SendContactNotification(ctx context.Context, name, email, subject, message string) error {
	_, err := s.send(ctx, s.adminEmail, s.senderName, "New Contact Message: "+subject, contactNotificationHTML(name, email, subject, message))
	return err
}

func (s *BrevoService) send(ctx context.Context, toEmail, toName, subject, htmlContent string) (string, error) {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return "", fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.senderName, "email": s.senderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("failed to send email via Brevo: %s", string(respBody))
	}

	var parsed brevoResponse
	_ = json.Unmarshal(respBody, &parsed)

	log.Printf("✅ Email sent successfully to %s", toEmail)
	return parsed.MessageID, nil
}
