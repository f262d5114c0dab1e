package utils

import (
	"os"
	"strings"
	"testing"
)

func TestSendEmailWithoutSMTPConfig(t *testing.T) {
	os.Unsetenv("SMTP_HOST")
	os.Unsetenv("SMTP_PORT")
	os.Unsetenv("SMTP_FROM")

	err := SendEmail("admin@example.com", "subject", "<p>body</p>")
	if err == nil || !strings.Contains(err.Error(), "SMTP not configured") {
		t.Fatalf("expected SMTP not configured error, got %v", err)
	}
}

func TestContactNotificationBodyEscapesInput(t *testing.T) {
	body := ContactNotificationBody(ContactNotification{
		Name:       "<script>",
		Email:      "a@b.com",
		RegionCode: "UAE",
		Message:    "Hello & welcome",
	})
	if strings.Contains(body, "<script>") {
		t.Error("expected name to be escaped")
	}
	if !strings.Contains(body, "Hello &amp; welcome") {
		t.Errorf("expected escaped message, got %s", body)
	}
	if !strings.Contains(body, "UAE") {
		t.Error("expected region code in body")
	}
}
