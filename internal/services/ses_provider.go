package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESProvider implements email sending via AWS SES
type SESProvider struct {
	client *ses.Client
	from   string
	region string
}

// NewSESProvider creates a new AWS SES email provider
func NewSESProvider(cfg *ProviderConfig) (*SESProvider, error) {
	// Build AWS config options
	var awsOpts []func(*config.LoadOptions) error

	if cfg.AWSRegion != "" {
		awsOpts = append(awsOpts, config.WithRegion(cfg.AWSRegion))
	}

	// If explicit credentials provided, use them; otherwise fall back to default chain
	// (environment vars, shared config, EC2 instance role, EKS pod identity, etc.)
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsOpts = append(awsOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID,
				cfg.AWSSecretAccessKey,
				"", // session token (optional)
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), awsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESProvider{
		client: ses.NewFromConfig(awsCfg),
		from:   cfg.SESFrom,
		region: cfg.AWSRegion,
	}, nil
}

// Send sends an email via AWS SES
func (p *SESProvider) Send(ctx context.Context, message *Message) (*SendResult, error) {
	// SES requires a verified source identity; the message's fixed sender wins
	// over the configured default
	source := message.From
	if message.FromName != "" {
		source = fmt.Sprintf("%s <%s>", message.FromName, message.From)
	}
	if message.From == "" {
		source = p.from
	}

	destination := &types.Destination{
		ToAddresses: []string{message.To},
	}

	body := &types.Body{}
	if message.BodyHTML != "" {
		body.Html = &types.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(message.BodyHTML),
		}
	}
	if message.Body != "" {
		body.Text = &types.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(message.Body),
		}
	}

	sesMessage := &types.Message{
		Subject: &types.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(message.Subject),
		},
		Body: body,
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: destination,
		Message:     sesMessage,
	}

	if message.ReplyTo != "" {
		replyTo := message.ReplyTo
		if message.ReplyToName != "" {
			replyTo = fmt.Sprintf("%s <%s>", message.ReplyToName, message.ReplyTo)
		}
		input.ReplyToAddresses = []string{replyTo}
	}

	output, err := p.client.SendEmail(ctx, input)
	if err != nil {
		return &SendResult{
			ProviderName: "SES",
			Success:      false,
			Error:        fmt.Errorf("SES send failed: %w", err),
		}, err
	}

	messageID := ""
	if output.MessageId != nil {
		messageID = *output.MessageId
	}

	return &SendResult{
		ProviderID:   messageID,
		ProviderName: "SES",
		Success:      true,
		ProviderData: map[string]interface{}{
			"message_id": messageID,
			"region":     p.region,
			"to":         message.To,
		},
	}, nil
}

// GetName returns the provider name
func (p *SESProvider) GetName() string {
	return "SES"
}
