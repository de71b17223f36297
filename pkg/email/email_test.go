package email

import (
	"net/smtp"
	"strings"
	"testing"

	"go-portfolio-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       "587",
		SMTPUsername:   "login@example.com",
		SMTPPassword:   "secret",
		ContactEmailTo: "owner@example.com",
	}
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewEmailService(testConfig()).IsConfigured())
	assert.False(t, NewEmailService(&config.Config{}).IsConfigured())
}

func TestBuildContactMessageEscapesInput(t *testing.T) {
	s := NewEmailService(testConfig())
	msg, err := s.BuildContactMessage(ContactEmailData{
		SenderName:  "Eve",
		SenderEmail: "eve@example.com",
		Subject:     "Hello",
		Message:     "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	body := string(msg)
	assert.Contains(t, body, "From: login@example.com\r\n")
	assert.Contains(t, body, "Reply-To: eve@example.com\r\n")
	assert.Contains(t, body, "Subject: Portfolio contact: Hello\r\n")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestBuildContactMessageKeepsSubjectOnOneHeader(t *testing.T) {
	s := NewEmailService(testConfig())
	msg, err := s.BuildContactMessage(ContactEmailData{
		SenderName:  "Eve",
		SenderEmail: "eve@example.com",
		Subject:     "Hi\r\nContent-Type: text/plain\r\n\r\nforged body",
		Message:     "M",
	})
	require.NoError(t, err)

	headers, _, found := strings.Cut(string(msg), "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, headers, "Subject: Portfolio contact: Hi Content-Type: text/plain forged body\r\n")
	for _, line := range strings.Split(headers, "\r\n") {
		assert.NotEqual(t, "Content-Type: text/plain", line)
	}
	assert.NotContains(t, string(msg), "\r\n\r\nforged body")
}

func TestBuildContactMessageEncodesNonASCIISubject(t *testing.T) {
	s := NewEmailService(testConfig())
	msg, err := s.BuildContactMessage(ContactEmailData{SenderName: "Zoë", SenderEmail: "z@example.com", Subject: "Grüße", Message: "M"})
	require.NoError(t, err)
	assert.Contains(t, string(msg), "Subject: =?utf-8?q?")
}

func TestSendContactEmailUsesRelay(t *testing.T) {
	s := NewEmailService(testConfig())
	var gotAddr string
	var gotTo []string
	s.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo = addr, to
		assert.True(t, strings.HasPrefix(string(msg), "From: "))
		return nil
	}

	require.NoError(t, s.SendContactEmail(ContactEmailData{SenderName: "A", SenderEmail: "a@b.co", Subject: "S", Message: "M"}))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
}
