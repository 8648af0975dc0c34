package notice

import (
	"os"
	"testing"

	"github.com/hypeit-za/panel/pkg/notification"
)

func TestRegisterPanelTemplates(t *testing.T) {
	nm := notification.NewNotificationManager("")
	mock := &notification.MockNotifier{}
	nm.RegisterNotifier(notification.EmailSystem, mock)

	if err := RegisterPanelTemplates(nm); err != nil {
		t.Fatalf("RegisterPanelTemplates() error = %v", err)
	}

	// Every panel notice type must be sendable
	noticeTypes := []notification.NoticeType{
		notification.TwoFactorEnabledNotice,
		notification.TwoFactorDisabledNotice,
		notification.RecoveryCodeUsedNotice,
	}

	for _, noticeType := range noticeTypes {
		err := nm.Send(noticeType, notification.NotificationData{
			To:   "user@example.com",
			Data: map[string]string{"Name": "Alex", "CodesRemaining": "9"},
		})
		if err != nil {
			t.Errorf("Send(%s) error = %v", noticeType, err)
		}
	}

	if len(mock.SentNotifications) != len(noticeTypes) {
		t.Errorf("Expected %d sent notices, got %d", len(noticeTypes), len(mock.SentNotifications))
	}
}

func TestLoadSMTPConfigFromEnv(t *testing.T) {
	os.Setenv("SMTP_USERNAME", "test@example.com")
	os.Setenv("SMTP_PASSWORD", "password")
	defer os.Unsetenv("SMTP_USERNAME")
	defer os.Unsetenv("SMTP_PASSWORD")

	config, err := LoadSMTPConfigFromEnv()
	if err != nil {
		t.Errorf("LoadSMTPConfigFromEnv() error = %v", err)
		return
	}

	// Check default values
	if config.Host != "localhost" {
		t.Errorf("Expected default host localhost, got %s", config.Host)
	}
	if config.Port != 587 {
		t.Errorf("Expected default port 587, got %d", config.Port)
	}
	if config.From != "test@example.com" {
		t.Errorf("Expected from to match username, got %s", config.From)
	}

	// Custom values win
	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Setenv("SMTP_PORT", "465")
	os.Setenv("SMTP_FROM", "panel@example.com")
	defer os.Unsetenv("SMTP_HOST")
	defer os.Unsetenv("SMTP_PORT")
	defer os.Unsetenv("SMTP_FROM")

	config, err = LoadSMTPConfigFromEnv()
	if err != nil {
		t.Errorf("LoadSMTPConfigFromEnv() error = %v", err)
		return
	}

	if config.Host != "smtp.example.com" {
		t.Errorf("Expected custom host smtp.example.com, got %s", config.Host)
	}
	if config.Port != 465 {
		t.Errorf("Expected custom port 465, got %d", config.Port)
	}
	if config.From != "panel@example.com" {
		t.Errorf("Expected custom from panel@example.com, got %s", config.From)
	}
}
