package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager("")
	require.NotNil(t, nm)
	assert.NotNil(t, nm.notifiers)
	assert.NotNil(t, nm.notificationRegistry)
}

func TestRegisterNotifier(t *testing.T) {
	nm := NewNotificationManager("")

	first := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, first)
	assert.Same(t, first, nm.notifiers[EmailSystem])

	// Registering again overwrites
	second := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, second)
	assert.Same(t, second, nm.notifiers[EmailSystem])
}

func TestRegisterNotification(t *testing.T) {
	tests := []struct {
		name       string
		noticeType NoticeType
		system     NotificationSystem
		template   NoticeTemplate
		wantErr    bool
	}{
		{
			name:       "two-factor enabled with both bodies",
			noticeType: TwoFactorEnabledNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Subject: "Two-factor authentication enabled", Text: "2FA is now on for your account", Html: "<p>2FA is now on for your account</p>"},
		},
		{
			name:       "two-factor disabled, text only",
			noticeType: TwoFactorDisabledNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Subject: "Two-factor authentication disabled", Text: "2FA was turned off for your account"},
		},
		{
			name:       "recovery code used, html only",
			noticeType: RecoveryCodeUsedNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Subject: "A recovery code was used", Html: "<p>{{.CodesRemaining}} codes remain</p>"},
		},
		{
			name:     "empty notice type",
			system:   EmailSystem,
			template: NoticeTemplate{Subject: "Two-factor authentication enabled", Text: "body"},
			wantErr:  true,
		},
		{
			name:       "empty system",
			noticeType: TwoFactorEnabledNotice,
			template:   NoticeTemplate{Subject: "Two-factor authentication enabled", Text: "body"},
			wantErr:    true,
		},
		{
			name:       "empty subject",
			noticeType: TwoFactorEnabledNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Text: "body"},
			wantErr:    true,
		},
		{
			name:       "no content at all",
			noticeType: TwoFactorEnabledNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Subject: "Two-factor authentication enabled"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nm := NewNotificationManager("")

			err := nm.RegisterNotification(tt.noticeType, tt.system, tt.template)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			registered, ok := nm.notificationRegistry[tt.noticeType][tt.system]
			require.True(t, ok)
			assert.Equal(t, tt.template, registered)
		})
	}
}

func TestSend(t *testing.T) {
	nm := NewNotificationManager("")
	mock := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, mock)

	require.NoError(t, nm.RegisterNotification(RecoveryCodeUsedNotice, EmailSystem,
		NoticeTemplate{Subject: "A recovery code was used", Text: "A recovery code was used on your account", Html: "<p>A recovery code was used on your account</p>"}))

	data := NotificationData{
		To:      "operator@example.com",
		Subject: "A recovery code was used",
		Body:    "A recovery code was used on your account",
	}
	require.NoError(t, nm.Send(RecoveryCodeUsedNotice, data))

	require.Len(t, mock.SentNotifications, 1)
	sent := mock.SentNotifications[0]
	assert.Equal(t, data.To, sent.To)
	assert.Equal(t, data.Subject, sent.Subject)
	assert.Equal(t, data.Body, sent.Body)
	assert.Equal(t, RecoveryCodeUsedNotice, mock.SentNoticeTypes[0])
}

func TestSendErrors(t *testing.T) {
	nm := NewNotificationManager("")

	// Nothing registered for this notice type
	assert.Error(t, nm.Send(TwoFactorDisabledNotice, NotificationData{}))

	// Template registered but no notifier for the system
	require.NoError(t, nm.RegisterNotification(TwoFactorDisabledNotice, EmailSystem,
		NoticeTemplate{Subject: "Two-factor authentication disabled", Html: "<p>2FA was turned off</p>"}))

	err := nm.Send(TwoFactorDisabledNotice, NotificationData{})
	require.Error(t, err)
	assert.EqualError(t, err, "no notifier registered for system: email")
}
