package twofactor

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hypeit-za/panel/pkg/user"
)

// RepositoryConfig contains configuration for creating the two-factor stores
type RepositoryConfig struct {
	// Pool is required for PostgreSQL repositories
	Pool *pgxpool.Pool
}

// Stores bundles the collaborators that must share a transaction scope
type Stores struct {
	Users     user.UserRepository
	Codes     RecoveryCodeRepository
	TxManager TransactionManager
}

// NewStores creates the user store, recovery-code store, and
// transaction manager for the given persistence type
func NewStores(persistenceType string, config RepositoryConfig) (Stores, error) {
	switch persistenceType {
	case "postgres", "postgresql":
		if config.Pool == nil {
			return Stores{}, fmt.Errorf("pool required for postgres repositories")
		}
		return Stores{
			Users:     user.NewPostgresUserRepository(config.Pool),
			Codes:     NewPostgresRecoveryCodeRepository(config.Pool),
			TxManager: NewPgxTransactionManager(config.Pool),
		}, nil
	case "inmem", "memory":
		users := user.NewInMemUserRepository()
		codes := NewInMemRecoveryCodeRepository()
		return Stores{
			Users:     users,
			Codes:     codes,
			TxManager: NewInMemTransactionManager(users, codes),
		}, nil
	default:
		return Stores{}, fmt.Errorf("unsupported persistence type: %s (supported: postgres, inmem)", persistenceType)
	}
}
