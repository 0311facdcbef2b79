package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration
type Config struct {
	Server  ServerConfig
	App     AppConfig
	Email   EmailConfig
	Content ContentConfig
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AppConfig holds application settings
type AppConfig struct {
	Environment string
}

// EmailConfig holds email provider settings
type EmailConfig struct {
	// Recipient for contact form inquiries
	ContactRecipient string

	// MailerSend HTTP API (primary)
	MailerSendAPIKey string

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

// ContentConfig holds headless CMS settings
type ContentConfig struct {
	SanityProjectID  string
	SanityDataset    string
	SanityAPIVersion string
	SanityUseCDN     bool
	CacheTTL         time.Duration
}

// Load loads configuration from environment
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		App: AppConfig{
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Email: EmailConfig{
			ContactRecipient:   getEnv("CONTACT_EMAIL", "info@thefirstcoastal.com"),
			MailerSendAPIKey:   getEnv("MAILERSEND_API_KEY", ""),
			SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
			AWSRegion:          getEnv("AWS_REGION", ""),
			AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			SESFrom:            getEnv("AWS_SES_FROM", ""),
			SMTPHost:           getEnv("SMTP_HOST", ""),
			SMTPPort:           getEnvInt("SMTP_PORT", 587),
			SMTPUsername:       getEnv("SMTP_USERNAME", ""),
			SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		},
		Content: ContentConfig{
			SanityProjectID:  getEnv("SANITY_PROJECT_ID", ""),
			SanityDataset:    getEnv("SANITY_DATASET", "production"),
			SanityAPIVersion: getEnv("SANITY_API_VERSION", "2024-01-01"),
			SanityUseCDN:     getEnvBool("SANITY_USE_CDN", true),
			CacheTTL:         time.Duration(getEnvInt("CONTENT_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode. Outside
// production, dispatch error detail is echoed in API responses.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
