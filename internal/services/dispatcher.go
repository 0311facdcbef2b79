package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"contact-service/internal/models"
	"contact-service/internal/templates"
	"contact-service/pkg/apperrors"
)

// Fixed sender identity for outbound inquiry mail. Replies go to the
// inquirer via Reply-To, never to this address.
const (
	senderAddress = "contact@thefirstcoastal.com"
	senderName    = "First Coastal Contact Form"

	recipientName = "First Coastal"
)

// The sole email format check. No deliverability or MX verification.
var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Dispatcher validates an inquiry, composes the email and hands it to the
// configured provider. It holds no state across calls.
type Dispatcher struct {
	provider  Provider
	recipient string
	log       *logrus.Entry
}

// NewDispatcher creates a new dispatcher. Provider may be nil when no email
// provider is configured; Dispatch then fails with a configuration error.
func NewDispatcher(provider Provider, recipient string) *Dispatcher {
	return &Dispatcher{
		provider:  provider,
		recipient: recipient,
		log:       logrus.WithField("component", "dispatcher"),
	}
}

// Validate checks the inquiry's required fields and email format. Returns a
// validation error whose message is safe to echo to the caller.
func (d *Dispatcher) Validate(inq *models.Inquiry) error {
	if strings.TrimSpace(inq.Name) == "" || strings.TrimSpace(inq.Email) == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "Name and email are required")
	}
	if !emailFormat.MatchString(strings.TrimSpace(inq.Email)) {
		return apperrors.New(apperrors.ErrCodeValidation, "Invalid email format")
	}
	return nil
}

// Dispatch validates the inquiry, composes both email bodies and sends the
// message through the provider. Validation and the configuration check both
// short-circuit before any provider call; a provider failure is surfaced
// once and never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, inq *models.Inquiry) error {
	if err := d.Validate(inq); err != nil {
		d.log.WithField("email", inq.Email).Warnf("inquiry rejected: %v", err)
		return err
	}

	if d.provider == nil {
		d.log.Error("no email provider configured (MAILERSEND_API_KEY or an alternate provider is required)")
		return apperrors.New(apperrors.ErrCodeConfiguration, "Email service is not configured. Please contact support.")
	}

	doc := templates.Compose(inq)
	message := &Message{
		To:          d.recipient,
		ToName:      recipientName,
		Subject:     doc.Subject(),
		Body:        doc.Text(),
		BodyHTML:    doc.HTML(),
		From:        senderAddress,
		FromName:    senderName,
		ReplyTo:     strings.TrimSpace(inq.Email),
		ReplyToName: strings.TrimSpace(inq.Name),
	}

	result, err := d.provider.Send(ctx, message)
	if err != nil || result == nil || !result.Success {
		if err == nil && result != nil {
			err = result.Error
		}
		if err == nil {
			err = fmt.Errorf("provider %s reported failure", d.provider.GetName())
		}
		d.log.WithError(err).WithFields(logrus.Fields{
			"provider": d.provider.GetName(),
			"subject":  message.Subject,
		}).Error("failed to send inquiry email")
		return apperrors.Wrap(apperrors.ErrCodeDispatch, "Failed to send email. Please try again later.", err)
	}

	d.log.WithFields(logrus.Fields{
		"provider":   result.ProviderName,
		"providerId": result.ProviderID,
		"subject":    message.Subject,
	}).Info("inquiry email sent")
	return nil
}

// SelectProvider returns the first configured provider by priority:
// MailerSend > SendGrid > SES > SMTP. Returns nil when nothing is configured.
func SelectProvider(cfg *ProviderConfig) Provider {
	log := logrus.WithField("component", "provider-init")

	if cfg.MailerSendAPIKey != "" {
		log.Info("email provider configured: MailerSend")
		return NewMailerSendProvider(cfg)
	}

	if cfg.SendGridAPIKey != "" {
		log.Info("email provider configured: SendGrid")
		return NewSendGridProvider(cfg)
	}

	if cfg.SESFrom != "" && cfg.AWSRegion != "" {
		provider, err := NewSESProvider(cfg)
		if err != nil {
			log.WithError(err).Warn("failed to initialize AWS SES")
		} else {
			log.Infof("email provider configured: AWS SES (region: %s)", cfg.AWSRegion)
			return provider
		}
	}

	if cfg.SMTPHost != "" {
		log.Infof("email provider configured: SMTP (%s:%d)", cfg.SMTPHost, cfg.SMTPPort)
		return NewSMTPProvider(cfg)
	}

	log.Warn("no email provider configured")
	return nil
}
