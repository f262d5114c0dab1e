package utils

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"os"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Inbox    string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		Inbox:    os.Getenv("CONTACT_INBOX"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

// ContactNotification is the subset of a contact message shown in the notification mail.
type ContactNotification struct {
	Name       string
	Email      string
	Phone      string
	RegionCode string
	Message    string
}

// ContactNotificationBody renders the HTML body of the new-message notification.
func ContactNotificationBody(n ContactNotification) string {
	return fmt.Sprintf(`<h2>New contact message</h2>
<p><strong>Region:</strong> %s</p>
<p><strong>From:</strong> %s &lt;%s&gt; %s</p>
<p>%s</p>`,
		html.EscapeString(n.RegionCode),
		html.EscapeString(n.Name),
		html.EscapeString(n.Email),
		html.EscapeString(n.Phone),
		html.EscapeString(n.Message))
}

// SendContactNotification mails the configured inbox about a new contact message.
// It never blocks the caller; failures are only logged.
func SendContactNotification(n ContactNotification) {
	inbox := GetEmailConfig().Inbox
	if inbox == "" {
		return
	}
	go func() {
		subject := fmt.Sprintf("New contact message (%s)", n.RegionCode)
		if err := SendEmail(inbox, subject, ContactNotificationBody(n)); err != nil {
			log.Printf("Failed to send contact notification to %s: %v", inbox, err)
		}
	}()
}
