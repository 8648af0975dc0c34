// Package notice assembles the panel's notification manager: SMTP
// configuration from the environment plus the embedded email templates
// for account-security notices.
package notice

import (
	"embed"
	"log/slog"

	"github.com/hypeit-za/panel/pkg/notification"
)

//go:embed templates/*
var templateFiles embed.FS

func loadTemplate(filename string) string {
	content, err := templateFiles.ReadFile(filename)
	if err != nil {
		slog.Error("Error reading template file!", "err", err, "filename", filename)
		return ""
	}
	return string(content)
}

// RegisterPanelTemplates registers the panel's account-security email
// templates on the given manager.
func RegisterPanelTemplates(nm *notification.NotificationManager) error {
	err := nm.RegisterNotification(notification.TwoFactorEnabledNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Two-Factor Authentication Enabled",
		Html:    loadTemplate("templates/email/two_factor_enabled.html"),
	})
	if err != nil {
		return err
	}

	err = nm.RegisterNotification(notification.TwoFactorDisabledNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Two-Factor Authentication Disabled",
		Html:    loadTemplate("templates/email/two_factor_disabled.html"),
	})
	if err != nil {
		return err
	}

	err = nm.RegisterNotification(notification.RecoveryCodeUsedNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Recovery Code Used",
		Html:    loadTemplate("templates/email/recovery_code_used.html"),
	})
	if err != nil {
		return err
	}

	return nil
}

// NewNotificationManager creates the panel's notification manager with
// an email notifier and the panel templates registered.
func NewNotificationManager(baseUrl string, smtpConfig notification.SMTPConfig) (*notification.NotificationManager, error) {
	notificationManager := notification.NewNotificationManager(baseUrl)

	emailNotifier, err := notification.NewEmailNotifier(smtpConfig)
	if err != nil {
		return nil, err
	}

	notificationManager.RegisterNotifier(notification.EmailSystem, emailNotifier)

	if err := RegisterPanelTemplates(notificationManager); err != nil {
		slog.Error("failed to register panel notice templates", "error", err)
		return nil, err
	}

	return notificationManager, nil
}
