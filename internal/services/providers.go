package services

import (
	"context"
)

// Provider represents a transactional email provider interface
type Provider interface {
	Send(ctx context.Context, message *Message) (*SendResult, error)
	GetName() string
}

// Message represents an email message to be sent
type Message struct {
	To          string
	ToName      string
	Subject     string
	Body        string
	BodyHTML    string
	From        string
	FromName    string
	ReplyTo     string
	ReplyToName string
}

// SendResult represents the result of a send operation
type SendResult struct {
	ProviderID   string
	ProviderName string
	Success      bool
	Error        error
	ProviderData map[string]interface{}
}

// ProviderConfig represents provider configuration
type ProviderConfig struct {
	// MailerSend HTTP API (primary)
	MailerSendAPIKey string
	MailerSendAPIURL string // override for tests; defaults to the hosted API

	// SendGrid (alternate)
	SendGridAPIKey string

	// AWS SES (alternate)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SESFrom            string

	// Generic SMTP (alternate)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}
