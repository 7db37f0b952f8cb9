// Package mailgun sends transactional email through Mailgun.
package mailgun

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/core/domain"
)

type Config struct {
	APIKey string
	Domain string
	// Sender is the From address; defaults to no-reply@<Domain>.
	Sender string
	// APIBase overrides the Mailgun endpoint, e.g. the EU region or a test server.
	APIBase string
	Timeout time.Duration
}

// Mailer implements ports.Mailer.
type Mailer struct {
	mg     *mailgun.MailgunImpl
	sender string
	logger zerolog.Logger
}

func NewMailer(cfg Config, logger zerolog.Logger) (*Mailer, error) {
	if cfg.APIKey == "" || cfg.Domain == "" {
		return nil, errors.New("mailgun: api key and domain are required")
	}

	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.APIBase != "" {
		mg.SetAPIBase(cfg.APIBase)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	mg.SetClient(&http.Client{Timeout: timeout})

	sender := cfg.Sender
	if sender == "" {
		sender = "Summer Camp <no-reply@" + cfg.Domain + ">"
	}
	return &Mailer{mg: mg, sender: sender, logger: logger}, nil
}

// SendPaymentConfirmation mails a receipt to the payer.
func (m *Mailer) SendPaymentConfirmation(ctx context.Context, payment *domain.Payment) error {
	if payment == nil || payment.Email == "" {
		return errors.New("mailgun: payment has no recipient")
	}

	msg := m.mg.NewMessage(m.sender, confirmationSubject(payment), confirmationBody(payment), payment.Email)
	msg.AddTag("payment-confirmation")

	status, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	m.logger.Debug().Str("mailgun_id", id).Str("status", status).Msg("payment confirmation queued")
	return nil
}

func confirmationSubject(p *domain.Payment) string {
	if p.ClassName != "" {
		return "Payment confirmed: " + p.ClassName
	}
	return "Payment confirmed"
}

func confirmationBody(p *domain.Payment) string {
	var b strings.Builder
	b.WriteString("Thank you for your payment.\n\n")
	if p.ClassName != "" {
		fmt.Fprintf(&b, "Class: %s\n", p.ClassName)
	}
	fmt.Fprintf(&b, "Amount: $%.2f\n", p.Price)
	if p.TransactionID != "" {
		fmt.Fprintf(&b, "Transaction: %s\n", p.TransactionID)
	}
	if !p.Date.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", p.Date.UTC().Format(time.RFC1123))
	}
	return b.String()
}
