package twofactor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
)

// InMemRecoveryCodeRepository implements RecoveryCodeRepository using an
// in-memory map. Used by unit tests and the inmem persistence mode.
type InMemRecoveryCodeRepository struct {
	mutex sync.RWMutex
	codes map[uuid.UUID]RecoveryCode // keyed by code ID

	// failNext makes the next mutating call fail, for rollback tests
	failNext bool
}

// NewInMemRecoveryCodeRepository creates a new in-memory recovery-code repository
func NewInMemRecoveryCodeRepository() *InMemRecoveryCodeRepository {
	return &InMemRecoveryCodeRepository{
		codes: make(map[uuid.UUID]RecoveryCode),
	}
}

// FailNextMutation makes the next CreateBatch or delete call return a
// storage error. Test hook only.
func (r *InMemRecoveryCodeRepository) FailNextMutation() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.failNext = true
}

func (r *InMemRecoveryCodeRepository) takeFailure() bool {
	failed := r.failNext
	r.failNext = false
	return failed
}

// CreateBatch persists a batch of recovery codes
func (r *InMemRecoveryCodeRepository) CreateBatch(ctx context.Context, codes []RecoveryCode) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.takeFailure() {
		return pkgerrors.New(pkgerrors.ErrCodeStorageError, "simulated storage failure")
	}

	for _, code := range codes {
		if code.ID == uuid.Nil {
			code.ID = uuid.New()
		}
		if code.CreatedAt.IsZero() {
			code.CreatedAt = time.Now().UTC()
		}
		r.codes[code.ID] = code
	}

	return nil
}

// DeleteByUserID removes all recovery codes belonging to a user
func (r *InMemRecoveryCodeRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.takeFailure() {
		return pkgerrors.New(pkgerrors.ErrCodeStorageError, "simulated storage failure")
	}

	for id, code := range r.codes {
		if code.UserID == userID {
			delete(r.codes, id)
		}
	}

	return nil
}

// DeleteByID removes a single consumed recovery code
func (r *InMemRecoveryCodeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.takeFailure() {
		return pkgerrors.New(pkgerrors.ErrCodeStorageError, "simulated storage failure")
	}

	if _, exists := r.codes[id]; !exists {
		return pkgerrors.Newf(pkgerrors.ErrCodeStorageError, "recovery code not found: %s", id)
	}
	delete(r.codes, id)

	return nil
}

// ListByUserID retrieves all recovery codes for a user
func (r *InMemRecoveryCodeRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]RecoveryCode, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var codes []RecoveryCode
	for _, code := range r.codes {
		if code.UserID == userID {
			codes = append(codes, code)
		}
	}

	return codes, nil
}

// CountByUserID counts the recovery codes a user still holds
func (r *InMemRecoveryCodeRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	count := 0
	for _, code := range r.codes {
		if code.UserID == userID {
			count++
		}
	}

	return count, nil
}

// WithTx returns the same repository (no-op for in-memory)
func (r *InMemRecoveryCodeRepository) WithTx(tx interface{}) RecoveryCodeRepository {
	return r
}

// Snapshot captures the current state and returns a restore function
func (r *InMemRecoveryCodeRepository) Snapshot() func() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	saved := make(map[uuid.UUID]RecoveryCode, len(r.codes))
	for id, code := range r.codes {
		saved[id] = code
	}

	return func() {
		r.mutex.Lock()
		defer r.mutex.Unlock()
		r.codes = saved
	}
}
