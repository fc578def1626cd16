package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
)

// Mailer delivers customer notifications through the Resend HTTP API.
type Mailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewMailer(from string) (*Mailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &Mailer{
		apiKey: key,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendConfirmation mails the registration confirmation link.
func (m *Mailer) SendConfirmation(ctx context.Context, toEmail, confirmURL string) error {
	return m.send(ctx, toEmail, "Confirm your registration", `
		<p>Welcome to the webshop!</p>
		<p>Please confirm your registration by clicking the link below:</p>
		<p><a href="`+confirmURL+`">Confirm Registration</a></p>
	`)
}

// NotifyPremiumPromotion congratulates a customer promoted to premium.
func (m *Mailer) NotifyPremiumPromotion(ctx context.Context, c *model.Customer) error {
	return m.send(ctx, c.Email, "You are now a premium customer", fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>Your total spending has earned you premium status. You can now
		buy and sell in Bombadil's Emporium.</p>
	`, c.FirstName, c.LastName))
}

func (m *Mailer) send(ctx context.Context, toEmail, subject, html string) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: subject,
		HTML:    html,
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New("failed to send email: " + buf.String())
	}
	return nil
}
