package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db DBTX
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

const userColumns = `id, email, name, totp_secret_encrypted, two_factor_enabled, two_factor_verified_at, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	var name, secret *string
	var verifiedAt, updatedAt *time.Time

	err := row.Scan(
		&u.ID,
		&u.Email,
		&name,
		&secret,
		&u.TwoFactorEnabled,
		&verifiedAt,
		&u.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return User{}, err
	}

	if name != nil {
		u.Name = *name
		u.NameValid = true
	}
	if secret != nil {
		u.TotpSecretEncrypted = *secret
		u.SecretValid = true
	}
	if verifiedAt != nil {
		u.TwoFactorVerifiedAt = *verifiedAt
		u.VerifiedAtValid = true
	}
	if updatedAt != nil {
		u.UpdatedAt = *updatedAt
		u.UpdatedAtValid = true
	}

	return u, nil
}

// GetByID retrieves a user by id
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", id)
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`

	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", email)
		}
		return User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// UpdateTwoFactor applies the partial two-factor update without
// reloading the row
func (r *PostgresUserRepository) UpdateTwoFactor(ctx context.Context, params UpdateTwoFactorParams) error {
	query := `
		UPDATE users
		SET two_factor_enabled = $1, two_factor_verified_at = $2, updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL
	`

	var verifiedAt *time.Time
	if params.VerifiedAtValid {
		verifiedAt = &params.VerifiedAt
	}

	result, err := r.db.Exec(ctx, query, params.TwoFactorEnabled, verifiedAt, params.ID)
	if err != nil {
		return fmt.Errorf("failed to update two-factor state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", params.ID)
	}

	return nil
}

// UpdateTotpSecret stores a new encrypted TOTP secret on the user row
func (r *PostgresUserRepository) UpdateTotpSecret(ctx context.Context, params UpdateTotpSecretParams) error {
	query := `
		UPDATE users
		SET totp_secret_encrypted = $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
	`

	var secret *string
	if params.SecretValid {
		secret = &params.TotpSecretEncrypted
	}

	result, err := r.db.Exec(ctx, query, secret, params.ID)
	if err != nil {
		return fmt.Errorf("failed to update totp secret: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeUserNotFound, "user not found: %s", params.ID)
	}

	return nil
}

// WithTx returns a new repository that uses the provided transaction
func (r *PostgresUserRepository) WithTx(tx interface{}) UserRepository {
	if tx == nil {
		return r
	}

	pgxTx, ok := tx.(pgx.Tx)
	if !ok {
		// Keep the original connection if the transaction type is wrong
		return r
	}

	return &PostgresUserRepository{
		db: pgxTx,
	}
}
