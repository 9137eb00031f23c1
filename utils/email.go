package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
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

func firstName(name string) string {
	if name == "" {
		return "there"
	}
	return strings.Split(name, " ")[0]
}

// SendStaffInvitationEmail notifies a newly created staff account of its
// temporary password. Sent in the background; failures are only logged.
func SendStaffInvitationEmail(email, name, job, password, consoleURL string) {
	go func() {
		subject := "Your fruit distribution console account"
		body := fmt.Sprintf(`<h2>Welcome aboard, %s!</h2>
<p>An account has been created for you with the role <strong>%s</strong>.</p>
<div style="background:#f5f5f5;padding:15px;border-radius:8px;margin:20px 0;">
<p style="margin:5px 0;"><strong>Email:</strong> %s</p>
<p style="margin:5px 0;"><strong>Temporary Password:</strong> %s</p>
</div>
<p><a href="%s">Open the admin console</a></p>
<p><strong>Important:</strong> Please log in and change your password immediately.</p>`,
			firstName(name), job, email, password, consoleURL)

		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send staff invitation email to %s: %v", email, err)
		}
	}()
}

// SendDeliveryStatusEmail notifies the destination location's contact that a
// shipment changed status. Sent in the background; failures are only logged.
func SendDeliveryStatusEmail(email, name, fruitName, status string, quantity int) {
	go func() {
		subject := fmt.Sprintf("Delivery update: %s", fruitName)
		body := fmt.Sprintf(`<h2>Delivery Status Update</h2>
<p>Hi %s,</p>
<p>The shipment of <strong>%d x %s</strong> to your location is now: <strong>%s</strong></p>`,
			firstName(name), quantity, fruitName, status)

		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send delivery status email to %s: %v", email, err)
		}
	}()
}
