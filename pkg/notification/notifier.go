package notification

// NotificationSystem represents a delivery channel (e.g., email).
type NotificationSystem string

// NoticeType represents a kind of notice (e.g., "two_factor_enabled").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// Account-security notices sent by the panel
	TwoFactorEnabledNotice  NoticeType = "two_factor_enabled"
	TwoFactorDisabledNotice NoticeType = "two_factor_disabled"
	RecoveryCodeUsedNotice  NoticeType = "recovery_code_used"
)

// NoticeTemplate holds the renderable content for one notice on one
// system. Text and Html are templates executed against
// NotificationData.Data.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

type NotificationData struct {
	To      string            // Recipient identifier (e.g., email address)
	Subject string            // Optional: subject override for systems that support one
	Body    string            // Optional: pre-rendered content
	Data    map[string]string // Template data
}

type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
