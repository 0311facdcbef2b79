package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultMailerSendAPIURL = "https://api.mailersend.com"

// MailerSendProvider implements email sending via the MailerSend HTTP API.
// MailerSend API docs: https://developers.mailersend.com/api/v1/email.html
type MailerSendProvider struct {
	apiURL string
	apiKey string
	client *http.Client
	log    *logrus.Entry
}

// mailerSendAddress is an email address with an optional display name
type mailerSendAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// mailerSendRequest represents the MailerSend send request body
type mailerSendRequest struct {
	From    mailerSendAddress   `json:"from"`
	To      []mailerSendAddress `json:"to"`
	ReplyTo *mailerSendAddress  `json:"reply_to,omitempty"`
	Subject string              `json:"subject"`
	Text    string              `json:"text,omitempty"`
	HTML    string              `json:"html,omitempty"`
}

// mailerSendErrorResponse represents a MailerSend error body
type mailerSendErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// NewMailerSendProvider creates a new MailerSend email provider
func NewMailerSendProvider(config *ProviderConfig) *MailerSendProvider {
	apiURL := config.MailerSendAPIURL
	if apiURL == "" {
		apiURL = defaultMailerSendAPIURL
	}
	return &MailerSendProvider{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		apiKey: config.MailerSendAPIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logrus.WithField("component", "mailersend"),
	}
}

// Send sends an email via the MailerSend HTTP API
func (p *MailerSendProvider) Send(ctx context.Context, message *Message) (*SendResult, error) {
	startTime := time.Now()

	req := mailerSendRequest{
		From:    mailerSendAddress{Email: message.From, Name: message.FromName},
		To:      []mailerSendAddress{{Email: message.To, Name: message.ToName}},
		Subject: message.Subject,
		Text:    message.Body,
		HTML:    message.BodyHTML,
	}
	if message.ReplyTo != "" {
		req.ReplyTo = &mailerSendAddress{Email: message.ReplyTo, Name: message.ReplyToName}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return &SendResult{
			ProviderName: "MailerSend",
			Success:      false,
			Error:        fmt.Errorf("failed to marshal request: %w", err),
		}, err
	}

	apiEndpoint := fmt.Sprintf("%s/v1/email", p.apiURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", apiEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return &SendResult{
			ProviderName: "MailerSend",
			Success:      false,
			Error:        fmt.Errorf("failed to create request: %w", err),
		}, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.log.WithError(err).Warnf("request failed (took %v)", time.Since(startTime))
		return &SendResult{
			ProviderName: "MailerSend",
			Success:      false,
			Error:        fmt.Errorf("HTTP request failed: %w", err),
		}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &SendResult{
			ProviderName: "MailerSend",
			Success:      false,
			Error:        fmt.Errorf("failed to read response: %w", err),
		}, err
	}

	// MailerSend returns 202 Accepted on success
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msErr mailerSendErrorResponse
		detail := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &msErr) == nil && msErr.Message != "" {
			detail = msErr.Message
		}
		errMsg := fmt.Errorf("MailerSend API error: %d - %s", resp.StatusCode, detail)
		p.log.Warnf("%v (took %v)", errMsg, time.Since(startTime))
		return &SendResult{
			ProviderName: "MailerSend",
			Success:      false,
			Error:        errMsg,
		}, errMsg
	}

	messageID := resp.Header.Get("X-Message-Id")
	p.log.Infof("email sent, message_id=%s (took %v)", messageID, time.Since(startTime))

	return &SendResult{
		ProviderID:   messageID,
		ProviderName: "MailerSend",
		Success:      true,
		ProviderData: map[string]interface{}{
			"status_code": resp.StatusCode,
			"to":          message.To,
			"subject":     message.Subject,
			"message_id":  messageID,
		},
	}, nil
}

// GetName returns the provider name
func (p *MailerSendProvider) GetName() string {
	return "MailerSend"
}

// IsConfigured returns true if the provider has required configuration
func (p *MailerSendProvider) IsConfigured() bool {
	return p.apiKey != ""
}
