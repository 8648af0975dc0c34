package twofactor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Transaction is one storage transaction scope. Tx exposes the
// driver-level transaction for repository WithTx calls.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Tx() interface{}
}

// TransactionManager begins transactions shared by the user store and
// the recovery-code store, so a toggle either applies all of its
// mutations or none of them.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// PgxTransactionManager implements TransactionManager over a pgx pool
type PgxTransactionManager struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionManager creates a transaction manager backed by the
// given connection pool
func NewPgxTransactionManager(pool *pgxpool.Pool) *PgxTransactionManager {
	return &PgxTransactionManager{
		pool: pool,
	}
}

// Begin starts a new database transaction
func (m *PgxTransactionManager) Begin(ctx context.Context) (Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &pgxTransaction{tx: tx}, nil
}

type pgxTransaction struct {
	tx interface {
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}
}

func (t *pgxTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback after a successful commit is a no-op at the driver level, so
// callers can defer it unconditionally.
func (t *pgxTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *pgxTransaction) Tx() interface{} {
	return t.tx
}

// Snapshotter is implemented by in-memory stores that can capture and
// restore their state
type Snapshotter interface {
	Snapshot() func()
}

// InMemTransactionManager implements TransactionManager for in-memory
// stores by snapshotting them at Begin and restoring on Rollback
type InMemTransactionManager struct {
	stores []Snapshotter
}

// NewInMemTransactionManager creates a transaction manager over the
// given in-memory stores
func NewInMemTransactionManager(stores ...Snapshotter) *InMemTransactionManager {
	return &InMemTransactionManager{
		stores: stores,
	}
}

// Begin captures the state of every store
func (m *InMemTransactionManager) Begin(ctx context.Context) (Transaction, error) {
	restores := make([]func(), 0, len(m.stores))
	for _, store := range m.stores {
		restores = append(restores, store.Snapshot())
	}
	return &inMemTransaction{restores: restores}, nil
}

type inMemTransaction struct {
	restores []func()
	done     bool
}

func (t *inMemTransaction) Commit(ctx context.Context) error {
	t.done = true
	return nil
}

func (t *inMemTransaction) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	for _, restore := range t.restores {
		restore()
	}
	return nil
}

func (t *inMemTransaction) Tx() interface{} {
	return nil
}
