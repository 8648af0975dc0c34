package twofactor

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecoveryCode represents one single-use backup credential. Only the
// bcrypt hash of the generated code is ever stored; the plaintext is
// shown once at generation time and is not recoverable afterwards.
type RecoveryCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CodeHash  string
	CreatedAt time.Time
}

// RecoveryCodeRepository defines the storage operations for recovery codes
type RecoveryCodeRepository interface {
	// CreateBatch persists a batch of recovery codes in a single insert
	CreateBatch(ctx context.Context, codes []RecoveryCode) error
	// DeleteByUserID removes all recovery codes belonging to a user
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	// DeleteByID removes a single recovery code after it has been consumed
	DeleteByID(ctx context.Context, id uuid.UUID) error
	// ListByUserID retrieves all recovery codes for a user
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]RecoveryCode, error)
	// CountByUserID counts the recovery codes a user still holds
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	// WithTx returns a repository that runs its operations inside the
	// given transaction. The concrete type of tx depends on the backend.
	WithTx(tx interface{}) RecoveryCodeRepository
}
