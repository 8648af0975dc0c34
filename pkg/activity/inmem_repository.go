package activity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemEventRepository implements EventRepository using in-memory storage
type InMemEventRepository struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemEventRepository creates a new in-memory event repository
func NewInMemEventRepository() *InMemEventRepository {
	return &InMemEventRepository{}
}

// Create stores one activity event
func (r *InMemEventRepository) Create(ctx context.Context, params RecordEventParams) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event := Event{
		ID:        uuid.New(),
		UserID:    params.UserID,
		Actor:     params.Actor,
		Event:     params.Event,
		IP:        params.IP,
		Metadata:  params.Metadata,
		CreatedAt: time.Now().UTC(),
	}
	r.events = append(r.events, event)
	return event, nil
}

// ListByUserID returns the user's events, newest first
func (r *InMemEventRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []Event
	for i := len(r.events) - 1; i >= 0 && len(events) < limit; i-- {
		if r.events[i].UserID == userID {
			events = append(events, r.events[i])
		}
	}
	return events, nil
}
