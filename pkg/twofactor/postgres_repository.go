package twofactor

import (
	"context"
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
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresRecoveryCodeRepository implements RecoveryCodeRepository using PostgreSQL
type PostgresRecoveryCodeRepository struct {
	db DBTX
}

// NewPostgresRecoveryCodeRepository creates a new PostgreSQL recovery-code repository
func NewPostgresRecoveryCodeRepository(db DBTX) *PostgresRecoveryCodeRepository {
	return &PostgresRecoveryCodeRepository{
		db: db,
	}
}

// CreateBatch persists a batch of recovery codes in one bulk insert
func (r *PostgresRecoveryCodeRepository) CreateBatch(ctx context.Context, codes []RecoveryCode) error {
	if len(codes) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(codes))
	for i, code := range codes {
		createdAt := code.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		rows[i] = []interface{}{code.ID, code.UserID, code.CodeHash, createdAt}
	}

	copyCount, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"recovery_codes"},
		[]string{"id", "user_id", "code_hash", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError, "failed to insert recovery codes")
	}
	if copyCount != int64(len(codes)) {
		return pkgerrors.Newf(pkgerrors.ErrCodeStorageError,
			"expected to insert %d recovery codes, inserted %d", len(codes), copyCount)
	}

	return nil
}

// DeleteByUserID removes all recovery codes belonging to a user
func (r *PostgresRecoveryCodeRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM recovery_codes WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError, "failed to delete recovery codes")
	}

	return nil
}

// DeleteByID removes a single consumed recovery code
func (r *PostgresRecoveryCodeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM recovery_codes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError, "failed to delete recovery code")
	}
	if result.RowsAffected() == 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeStorageError, "recovery code not found: %s", id)
	}

	return nil
}

// ListByUserID retrieves all recovery codes for a user
func (r *PostgresRecoveryCodeRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]RecoveryCode, error) {
	query := `
		SELECT id, user_id, code_hash, created_at
		FROM recovery_codes
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError, "failed to query recovery codes")
	}
	defer rows.Close()

	var codes []RecoveryCode
	for rows.Next() {
		var code RecoveryCode
		if err := rows.Scan(&code.ID, &code.UserID, &code.CodeHash, &code.CreatedAt); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError, "failed to scan recovery code")
		}
		codes = append(codes, code)
	}
	if rows.Err() != nil {
		return nil, pkgerrors.Wrap(rows.Err(), pkgerrors.ErrCodeStorageError, "error iterating recovery code rows")
	}

	return codes, nil
}

// CountByUserID counts the recovery codes a user still holds
func (r *PostgresRecoveryCodeRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM recovery_codes WHERE user_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError, "failed to count recovery codes")
	}

	return count, nil
}

// WithTx returns a new repository that uses the provided transaction
func (r *PostgresRecoveryCodeRepository) WithTx(tx interface{}) RecoveryCodeRepository {
	if tx == nil {
		return r
	}

	pgxTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}

	return &PostgresRecoveryCodeRepository{
		db: pgxTx,
	}
}
