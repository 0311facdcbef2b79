package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPProvider implements email sending via a generic SMTP relay
type SMTPProvider struct {
	host     string
	port     string
	username string
	password string
}

// NewSMTPProvider creates a new SMTP email provider
func NewSMTPProvider(config *ProviderConfig) *SMTPProvider {
	return &SMTPProvider{
		host:     config.SMTPHost,
		port:     fmt.Sprintf("%d", config.SMTPPort),
		username: config.SMTPUsername,
		password: config.SMTPPassword,
	}
}

// Send sends an email via SMTP
func (p *SMTPProvider) Send(ctx context.Context, message *Message) (*SendResult, error) {
	from := message.From
	if message.FromName != "" {
		from = fmt.Sprintf("%s <%s>", message.FromName, message.From)
	}

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = message.To
	headers["Subject"] = message.Subject
	headers["MIME-Version"] = "1.0"

	if message.ReplyTo != "" {
		replyTo := message.ReplyTo
		if message.ReplyToName != "" {
			replyTo = fmt.Sprintf("%s <%s>", message.ReplyToName, message.ReplyTo)
		}
		headers["Reply-To"] = replyTo
	}

	// Single-part body; HTML wins when both are present
	var body string
	if message.BodyHTML != "" {
		headers["Content-Type"] = "text/html; charset=utf-8"
		body = message.BodyHTML
	} else {
		headers["Content-Type"] = "text/plain; charset=utf-8"
		body = message.Body
	}

	var emailBuilder strings.Builder
	for k, v := range headers {
		emailBuilder.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	emailBuilder.WriteString("\r\n")
	emailBuilder.WriteString(body)

	recipients := []string{message.To}

	auth := smtp.PlainAuth("", p.username, p.password, p.host)
	addr := net.JoinHostPort(p.host, p.port)

	tlsConfig := &tls.Config{
		ServerName:         p.host,
		InsecureSkipVerify: false,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		// Try without TLS
		err = smtp.SendMail(addr, auth, message.From, recipients, []byte(emailBuilder.String()))
		if err != nil {
			return &SendResult{
				ProviderName: "SMTP",
				Success:      false,
				Error:        err,
			}, err
		}
	} else {
		defer conn.Close()

		client, err := smtp.NewClient(conn, p.host)
		if err != nil {
			return &SendResult{
				ProviderName: "SMTP",
				Success:      false,
				Error:        err,
			}, err
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			return &SendResult{
				ProviderName: "SMTP",
				Success:      false,
				Error:        err,
			}, err
		}

		if err = client.Mail(message.From); err != nil {
			return &SendResult{
				ProviderName: "SMTP",
				Success:      false,
				Error:        err,
			}, err
		}

		for _, recipient := range recipients {
			if err = client.Rcpt(recipient); err != nil {
				return &SendResult{
					ProviderName: "SMTP",
					Success:      false,
					Error:        err,
				}, err
			}
		}

		w, err := client.Data()
		if err != nil {
			return &SendResult{
				ProviderName: "SMTP",
				Success:      false,
				Error:        err,
			}, err
		}

		_, err = w.Write([]byte(emailBuilder.String()))
		if err != nil {
			return &SendResult{
				ProviderName: "SMTP",
				Success:      false,
				Error:        err,
			}, err
		}

		err = w.Close()
		if err != nil {
			return &SendResult{
				ProviderName: "SMTP",
				Success:      false,
				Error:        err,
			}, err
		}
	}

	return &SendResult{
		ProviderName: "SMTP",
		Success:      true,
		ProviderData: map[string]interface{}{
			"to":      message.To,
			"subject": message.Subject,
		},
	}, nil
}

// GetName returns the provider name
func (p *SMTPProvider) GetName() string {
	return "SMTP"
}
