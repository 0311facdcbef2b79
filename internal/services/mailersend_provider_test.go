package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *Message {
	return &Message{
		To:          "info@thefirstcoastal.com",
		ToName:      "First Coastal",
		Subject:     "New Contact Form: website - Jane Doe",
		Body:        "text body",
		BodyHTML:    "<p>html body</p>",
		From:        "contact@thefirstcoastal.com",
		FromName:    "First Coastal Contact Form",
		ReplyTo:     "jane@biz.com",
		ReplyToName: "Jane Doe",
	}
}

func TestMailerSendSend(t *testing.T) {
	var captured mailerSendRequest
	var gotAuth, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("X-Message-Id", "msg-abc123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	provider := NewMailerSendProvider(&ProviderConfig{
		MailerSendAPIKey: "test-key",
		MailerSendAPIURL: server.URL,
	})

	result, err := provider.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/v1/email", gotPath)
	assert.Equal(t, "contact@thefirstcoastal.com", captured.From.Email)
	require.Len(t, captured.To, 1)
	assert.Equal(t, "info@thefirstcoastal.com", captured.To[0].Email)
	require.NotNil(t, captured.ReplyTo)
	assert.Equal(t, "jane@biz.com", captured.ReplyTo.Email)
	assert.Equal(t, "Jane Doe", captured.ReplyTo.Name)
	assert.Equal(t, "New Contact Form: website - Jane Doe", captured.Subject)
	assert.Equal(t, "text body", captured.Text)
	assert.Equal(t, "<p>html body</p>", captured.HTML)

	assert.True(t, result.Success)
	assert.Equal(t, "MailerSend", result.ProviderName)
	assert.Equal(t, "msg-abc123", result.ProviderID)
}

func TestMailerSendOmitsReplyToWhenEmpty(t *testing.T) {
	var captured mailerSendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	provider := NewMailerSendProvider(&ProviderConfig{
		MailerSendAPIKey: "test-key",
		MailerSendAPIURL: server.URL,
	})

	msg := testMessage()
	msg.ReplyTo = ""
	msg.ReplyToName = ""
	_, err := provider.Send(context.Background(), msg)
	require.NoError(t, err)
	assert.Nil(t, captured.ReplyTo)
}

func TestMailerSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))
	defer server.Close()

	provider := NewMailerSendProvider(&ProviderConfig{
		MailerSendAPIKey: "bad-key",
		MailerSendAPIURL: server.URL,
	})

	result, err := provider.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Unauthenticated.")
	assert.False(t, result.Success)
}

func TestMailerSendNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := NewMailerSendProvider(&ProviderConfig{
		MailerSendAPIKey: "test-key",
		MailerSendAPIURL: server.URL,
	})

	result, err := provider.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.False(t, result.Success)
}

func TestMailerSendIsConfigured(t *testing.T) {
	assert.True(t, NewMailerSendProvider(&ProviderConfig{MailerSendAPIKey: "k"}).IsConfigured())
	assert.False(t, NewMailerSendProvider(&ProviderConfig{}).IsConfigured())
}

func TestSelectProviderPriority(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
		want string
	}{
		{"mailersend wins", ProviderConfig{MailerSendAPIKey: "ms", SendGridAPIKey: "sg", SMTPHost: "smtp.local"}, "MailerSend"},
		{"sendgrid next", ProviderConfig{SendGridAPIKey: "sg", SESFrom: "noreply@thefirstcoastal.com", AWSRegion: "us-east-1", SMTPHost: "smtp.local"}, "SendGrid"},
		{"ses before smtp", ProviderConfig{SESFrom: "noreply@thefirstcoastal.com", AWSRegion: "us-east-1", SMTPHost: "smtp.local"}, "SES"},
		{"ses needs a region", ProviderConfig{SESFrom: "noreply@thefirstcoastal.com", SMTPHost: "smtp.local"}, "SMTP"},
		{"smtp last", ProviderConfig{SMTPHost: "smtp.local", SMTPPort: 587}, "SMTP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := SelectProvider(&tt.cfg)
			require.NotNil(t, provider)
			assert.Equal(t, tt.want, provider.GetName())
		})
	}

	t.Run("nothing configured", func(t *testing.T) {
		assert.Nil(t, SelectProvider(&ProviderConfig{}))
	})
}
