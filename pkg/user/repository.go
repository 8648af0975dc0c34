package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the storage operations the panel needs on user
// accounts. Account creation and registration live in another service;
// this repository only reads rows and applies partial updates.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateTwoFactor(ctx context.Context, params UpdateTwoFactorParams) error
	UpdateTotpSecret(ctx context.Context, params UpdateTotpSecretParams) error
	// WithTx returns a repository that runs its operations inside the
	// given transaction. The concrete type of tx depends on the backend.
	WithTx(tx interface{}) UserRepository
}
