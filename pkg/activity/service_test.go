package activity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	service := NewActivityService(NewInMemEventRepository())
	ctx := context.Background()
	userID := uuid.New()

	service.Record(ctx, RecordEventParams{
		UserID: userID,
		Actor:  userID.String(),
		Event:  EventTwoFactorEnabled,
		IP:     "203.0.113.7",
		Metadata: map[string]string{
			"codes_issued": "10",
		},
	})
	service.Record(ctx, RecordEventParams{
		UserID: userID,
		Actor:  userID.String(),
		Event:  EventRecoveryCodeUsed,
	})
	// An event for someone else must not show up
	service.Record(ctx, RecordEventParams{
		UserID: uuid.New(),
		Event:  EventTwoFactorDisabled,
	})

	events, err := service.ListForUser(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first
	assert.Equal(t, EventRecoveryCodeUsed, events[0].Event)
	assert.Equal(t, EventTwoFactorEnabled, events[1].Event)
	assert.Equal(t, "10", events[1].Metadata["codes_issued"])
	assert.Equal(t, "203.0.113.7", events[1].IP)
	assert.False(t, events[0].CreatedAt.IsZero())
}

func TestListLimit(t *testing.T) {
	service := NewActivityService(NewInMemEventRepository())
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		service.Record(ctx, RecordEventParams{UserID: userID, Event: EventTwoFactorEnabled})
	}

	events, err := service.ListForUser(ctx, userID, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	// Out-of-range limits fall back to the default
	events, err = service.ListForUser(ctx, userID, -1)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}
