package notice

import (
	"fmt"

	"github.com/hypeit-za/panel/pkg/config"
	"github.com/hypeit-za/panel/pkg/notification"
)

// LoadSMTPConfigFromEnv builds the SMTP settings from SMTP_* env vars.
// From falls back to the username so a plain authenticated mailbox
// needs no extra configuration.
func LoadSMTPConfigFromEnv() (notification.SMTPConfig, error) {
	username := config.GetEnv("SMTP_USERNAME")

	smtp := notification.SMTPConfig{
		Host:     config.GetEnvOrDefault("SMTP_HOST", "localhost"),
		Port:     config.GetEnvInt("SMTP_PORT", 587),
		TLS:      config.GetEnvBool("SMTP_TLS", true),
		Username: username,
		Password: config.GetEnv("SMTP_PASSWORD"),
		From:     config.GetEnvOrDefault("SMTP_FROM", username),
	}

	if smtp.From == "" {
		return notification.SMTPConfig{}, fmt.Errorf("SMTP_FROM or SMTP_USERNAME is required")
	}

	return smtp, nil
}
