package email

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/config"
)

func TestContactMessageEscapesInput(t *testing.T) {
	msg, err := ContactMessage("hello@jobboard.local", ContactEmailData{
		SenderName:  "<b>Eve</b>",
		SenderEmail: "eve@example.com",
		Subject:     "Hi",
		Message:     "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hello@jobboard.local"}, msg.To)
	assert.Equal(t, "eve@example.com", msg.ReplyTo)
	assert.Equal(t, "Contact Form: Hi", msg.Subject)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;b&gt;Eve&lt;/b&gt;")
}

func TestPlanExpiringMessage(t *testing.T) {
	msg, err := PlanExpiringMessage("r@example.com", PlanExpiringEmailData{
		PlanName: "Starter",
		EndDate:  time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		RenewURL: "https://jobboard.local/plans",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your Starter plan expires on 2 Nov 2026", msg.Subject)
	assert.Contains(t, msg.HTML, "https://jobboard.local/plans")
}

func TestSend(t *testing.T) {
	svc := NewEmailService(&config.Config{
		SMTPHost:      "smtp.example.com",
		SMTPPort:      "587",
		SMTPUsername:  "user",
		SMTPPassword:  "pass",
		SMTPFromEmail: "noreply@jobboard.local",
	})

	var gotAddr string
	var gotBody string
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotBody = string(msg)
		assert.Equal(t, "noreply@jobboard.local", from)
		assert.Equal(t, []string{"a@example.com"}, to)
		return nil
	}

	err := svc.Send(context.Background(), Message{
		To:      []string{"a@example.com"},
		Subject: "Hello\r\nBcc: victim@example.com",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.True(t, strings.HasPrefix(gotBody, "From: noreply@jobboard.local\r\n"))
	assert.NotContains(t, gotBody, "\r\nBcc:")
}

func TestSendNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.Config{})
	assert.ErrorIs(t, svc.Send(context.Background(), Message{To: []string{"a@b.c"}}), ErrNotConfigured)
}
