// Package activity keeps a best-effort trail of account-security
// events. Recording never fails a caller's request: storage errors are
// logged and dropped.
package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ActivityService records and lists account-security events
type ActivityService struct {
	repository EventRepository
}

// NewActivityService creates a new activity service
func NewActivityService(repository EventRepository) *ActivityService {
	return &ActivityService{
		repository: repository,
	}
}

// Record stores one event. Errors are logged, never returned: the
// event trail must not take down the operation it documents.
func (s *ActivityService) Record(ctx context.Context, params RecordEventParams) {
	if _, err := s.repository.Create(ctx, params); err != nil {
		slog.Error("Failed to record activity event",
			"userId", params.UserID,
			"event", params.Event,
			"error", err)
	}
}

// ListForUser returns the user's most recent events
func (s *ActivityService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repository.ListByUserID(ctx, userID, limit)
}
