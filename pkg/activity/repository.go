package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account-security event names recorded by the panel
const (
	EventTwoFactorEnabled  = "two_factor.enabled"
	EventTwoFactorDisabled = "two_factor.disabled"
	EventTwoFactorSetup    = "two_factor.setup_initiated"
	EventRecoveryCodeUsed  = "two_factor.recovery_code_used"
)

// Event is one recorded account-security action
type Event struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Actor     string // who performed the action, usually the user's own id
	Event     string
	IP        string
	Metadata  map[string]string
	CreatedAt time.Time
}

// RecordEventParams contains the data for recording a new event
type RecordEventParams struct {
	UserID   uuid.UUID
	Actor    string
	Event    string
	IP       string
	Metadata map[string]string
}

// EventRepository defines the interface for activity event storage
type EventRepository interface {
	Create(ctx context.Context, params RecordEventParams) (Event, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]Event, error)
}
