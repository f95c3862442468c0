package mailer

import (
	"fmt"

	"github.com/apex/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"citybuddy/config"
	"citybuddy/models"
)

// Mailer sends drafted complaint emails through SendGrid. Drafting stays a
// pure function in the draft package; this collaborator only dispatches, and
// the pipeline works without it when no API key is configured.
type Mailer struct {
	fromName  string
	fromEmail string
	client    *sendgrid.Client
}

// New creates a mailer, or nil when no SendGrid key is configured. Callers
// must treat a nil mailer as "drafts are returned but not sent".
func New(cfg *config.Config) *Mailer {
	if cfg.SendGridAPIKey == "" {
		return nil
	}
	return &Mailer{
		fromName:  cfg.SendGridFromName,
		fromEmail: cfg.SendGridFromEmail,
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
	}
}

// Send dispatches one drafted email to its recipient.
func (m *Mailer) Send(draft *models.EmailDraft) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(draft.To, draft.To)
	message := mail.NewSingleEmail(from, draft.Subject, to, draft.Body, "")

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	log.Infof("complaint email sent to %s", draft.To)
	return nil
}
