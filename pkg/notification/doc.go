// Package notification provides template-based notice delivery for the
// panel. A NotificationManager pairs registered Notifier
// implementations (one per delivery system) with NoticeTemplate
// entries keyed by notice type, and Send fans a notice out to every
// system that has a template for it.
//
// # Basic Usage
//
//	nm := notification.NewNotificationManager("https://panel.example.com")
//
//	emailNotifier, err := notification.NewEmailNotifier(smtpConfig)
//	if err != nil {
//		return err
//	}
//	nm.RegisterNotifier(notification.EmailSystem, emailNotifier)
//
//	err = nm.RegisterNotification(notification.TwoFactorEnabledNotice, notification.EmailSystem,
//		notification.NoticeTemplate{
//			Subject: "Two-factor authentication enabled",
//			Html:    "<p>2FA was enabled on your account.</p>",
//		})
//
//	err = nm.Send(notification.TwoFactorEnabledNotice, notification.NotificationData{
//		To:   "user@example.com",
//		Data: map[string]string{"Name": "Alex"},
//	})
//
// # Custom Notifiers
//
// Any type implementing Notifier can be registered for a system. The
// template's Text and Html fields are parsed as Go templates and
// executed against NotificationData.Data before delivery. MockNotifier
// records sent notices and is intended for tests.
package notification
