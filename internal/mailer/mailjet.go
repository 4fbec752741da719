package mailer

import (
	"context"
	"fmt"
	"time"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/contact"
	"github.com/atelierweb/site-backend/internal/meeting"
)

// Config carries the Mailjet credentials and addressing. Empty API
// keys disable delivery; callers still get outcome flags, all false.
type Config struct {
	APIKeyPublic  string
	APIKeyPrivate string
	SenderEmail   string
	SenderName    string
	OperatorEmail string
}

// Mailer sends transactional email through Mailjet. Delivery is best
// effort: failures are logged and reported through outcome flags,
// never as errors, so a mail outage cannot block a booking or a
// contact submission.
type Mailer struct {
	client *mailjet.Client
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger}
	if cfg.APIKeyPublic != "" && cfg.APIKeyPrivate != "" {
		m.client = mailjet.NewMailjetClient(cfg.APIKeyPublic, cfg.APIKeyPrivate)
	} else {
		logger.Warn("mailjet credentials not configured, email delivery disabled")
	}
	return m
}

var _ meeting.Notifier = (*Mailer)(nil)
var _ contact.Notifier = (*Mailer)(nil)

const displayTimeLayout = "Monday, January 2, 2006 at 3:04 PM"

// ContactReceived acknowledges a contact-form message to the sender
// and forwards it to the operator.
func (m *Mailer) ContactReceived(ctx context.Context, c *contact.Contact) contact.NotifyOutcome {
	var out contact.NotifyOutcome

	out.Requester = m.send(c.Email, c.Name,
		"We received your message",
		fmt.Sprintf(
			"Hi %s,\n\nThank you for reaching out. We received your message and will get back to you within one business day.\n\nYour message:\n%s\n",
			c.Name, c.Message,
		))

	out.Operator = m.sendToOperator(
		"New contact form submission",
		fmt.Sprintf("From: %s <%s>\n\n%s\n", c.Name, c.Email, c.Message))

	return out
}

// BookingRequested confirms a new meeting request to the requester and
// alerts the operator.
func (m *Mailer) BookingRequested(ctx context.Context, mt *meeting.Meeting) meeting.NotifyOutcome {
	var out meeting.NotifyOutcome
	when := mt.MeetingDatetime.Format(displayTimeLayout)

	out.Requester = m.send(mt.Email, mt.Name,
		"Your meeting request was received",
		fmt.Sprintf(
			"Hi %s,\n\nWe received your meeting request for %s. You will get a confirmation with the meeting link shortly.\n",
			mt.Name, when,
		))

	out.Operator = m.sendToOperator(
		"New meeting request",
		fmt.Sprintf("%s <%s> requested a meeting on %s.\n", mt.Name, mt.Email, when))

	return out
}

// Rescheduled notifies both parties that the meeting moved.
func (m *Mailer) Rescheduled(ctx context.Context, mt *meeting.Meeting, oldTime time.Time) meeting.NotifyOutcome {
	var out meeting.NotifyOutcome
	oldWhen := oldTime.Format(displayTimeLayout)
	newWhen := mt.MeetingDatetime.Format(displayTimeLayout)

	out.Requester = m.send(mt.Email, mt.Name,
		"Your meeting has been rescheduled",
		fmt.Sprintf(
			"Hi %s,\n\nYour meeting originally set for %s has been moved to %s.\n",
			mt.Name, oldWhen, newWhen,
		))

	out.Operator = m.sendToOperator(
		"Meeting rescheduled",
		fmt.Sprintf("Meeting with %s <%s> moved from %s to %s.\n", mt.Name, mt.Email, oldWhen, newWhen))

	return out
}

// LinkProvided sends the requester the confirmed meeting link.
func (m *Mailer) LinkProvided(ctx context.Context, mt *meeting.Meeting) meeting.NotifyOutcome {
	var out meeting.NotifyOutcome
	when := mt.MeetingDatetime.Format(displayTimeLayout)

	out.Requester = m.send(mt.Email, mt.Name,
		"Your meeting is confirmed",
		fmt.Sprintf(
			"Hi %s,\n\nYour meeting on %s is confirmed.\n\nJoin here: %s\n",
			mt.Name, when, mt.MeetingLink,
		))

	out.Operator = m.sendToOperator(
		"Meeting link sent",
		fmt.Sprintf("Link for the meeting with %s <%s> on %s was sent out.\n", mt.Name, mt.Email, when))

	return out
}

func (m *Mailer) sendToOperator(subject, body string) bool {
	if m.cfg.OperatorEmail == "" {
		return false
	}
	return m.send(m.cfg.OperatorEmail, "", subject, body)
}

func (m *Mailer) send(toEmail, toName, subject, body string) bool {
	if m.client == nil {
		return false
	}

	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: m.cfg.SenderEmail,
					Name:  m.cfg.SenderName,
				},
				To: &mailjet.RecipientsV31{
					{Email: toEmail, Name: toName},
				},
				Subject:  subject,
				TextPart: body,
			},
		},
	}

	if _, err := m.client.SendMailV31(&messages); err != nil {
		m.logger.Warn("mail delivery failed",
			zap.String("to", toEmail),
			zap.String("subject", subject),
			zap.Error(err))
		return false
	}
	return true
}
