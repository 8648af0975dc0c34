package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	db DBTX
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db DBTX) *PostgresEventRepository {
	return &PostgresEventRepository{
		db: db,
	}
}

// Create inserts one activity event. Metadata is stored as jsonb.
func (r *PostgresEventRepository) Create(ctx context.Context, params RecordEventParams) (Event, error) {
	event := Event{
		ID:        uuid.New(),
		UserID:    params.UserID,
		Actor:     params.Actor,
		Event:     params.Event,
		IP:        params.IP,
		Metadata:  params.Metadata,
		CreatedAt: time.Now().UTC(),
	}

	metadata, err := json.Marshal(params.Metadata)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event metadata: %w", err)
	}

	query := `
		INSERT INTO activity_events (id, user_id, actor, event, ip, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Exec(ctx, query,
		event.ID, event.UserID, event.Actor, event.Event, event.IP, metadata, event.CreatedAt)
	if err != nil {
		return Event{}, fmt.Errorf("failed to insert activity event: %w", err)
	}

	return event, nil
}

// ListByUserID retrieves the most recent events for a user
func (r *PostgresEventRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]Event, error) {
	query := `
		SELECT id, user_id, actor, event, ip, metadata, created_at
		FROM activity_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var metadata []byte
		if err := rows.Scan(&event.ID, &event.UserID, &event.Actor, &event.Event, &event.IP, &metadata, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
			}
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating activity event rows: %w", rows.Err())
	}

	return events, nil
}
