package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a panel account without database-specific types
type User struct {
	ID                  uuid.UUID
	Email               string
	Name                string
	NameValid           bool
	TotpSecretEncrypted string
	SecretValid         bool
	TwoFactorEnabled    bool
	TwoFactorVerifiedAt time.Time
	VerifiedAtValid     bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	UpdatedAtValid      bool
}

// UpdateTwoFactorParams represents parameters for the partial two-factor
// update. Only the enabled flag and the confirmation timestamp are
// written; the caller keeps its in-memory copy of the rest of the row.
type UpdateTwoFactorParams struct {
	ID               uuid.UUID
	TwoFactorEnabled bool
	VerifiedAt       time.Time
	VerifiedAtValid  bool
}

// UpdateTotpSecretParams represents parameters for storing a freshly
// minted encrypted TOTP secret on a user row
type UpdateTotpSecretParams struct {
	ID                  uuid.UUID
	TotpSecretEncrypted string
	SecretValid         bool
}
