package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
)

// InMemUserRepository implements UserRepository using an in-memory map.
// Used by unit tests and the inmem persistence mode.
type InMemUserRepository struct {
	mutex sync.RWMutex
	users map[uuid.UUID]User
}

// NewInMemUserRepository creates a new in-memory user repository
func NewInMemUserRepository() *InMemUserRepository {
	return &InMemUserRepository{
		users: make(map[uuid.UUID]User),
	}
}

// AddUser seeds a user record. Registration is out of scope for the
// panel, so tests and the inmem mode load accounts through this.
func (r *InMemUserRepository) AddUser(u User) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = u
}

// GetByID retrieves a user by id
func (r *InMemUserRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return User{}, pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", id)
	}
	return u, nil
}

// GetByEmail retrieves a user by email
func (r *InMemUserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", email)
}

// UpdateTwoFactor applies the partial two-factor update
func (r *InMemUserRepository) UpdateTwoFactor(ctx context.Context, params UpdateTwoFactorParams) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	u, exists := r.users[params.ID]
	if !exists {
		return pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", params.ID)
	}

	u.TwoFactorEnabled = params.TwoFactorEnabled
	u.TwoFactorVerifiedAt = params.VerifiedAt
	u.VerifiedAtValid = params.VerifiedAtValid
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedAtValid = true
	r.users[params.ID] = u

	return nil
}

// UpdateTotpSecret stores a new encrypted TOTP secret
func (r *InMemUserRepository) UpdateTotpSecret(ctx context.Context, params UpdateTotpSecretParams) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	u, exists := r.users[params.ID]
	if !exists {
		return pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", params.ID)
	}

	u.TotpSecretEncrypted = params.TotpSecretEncrypted
	u.SecretValid = params.SecretValid
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedAtValid = true
	r.users[params.ID] = u

	return nil
}

// WithTx returns the same repository (no-op for in-memory)
func (r *InMemUserRepository) WithTx(tx interface{}) UserRepository {
	return r
}

// Snapshot captures the current state and returns a restore function.
// Used by the in-memory transaction manager to roll back failed toggles.
func (r *InMemUserRepository) Snapshot() func() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	saved := make(map[uuid.UUID]User, len(r.users))
	for id, u := range r.users {
		saved[id] = u
	}

	return func() {
		r.mutex.Lock()
		defer r.mutex.Unlock()
		r.users = saved
	}
}
