package twofactor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
	"github.com/hypeit-za/panel/pkg/user"
)

// SecretCipher encrypts TOTP secrets for storage and decrypts them for
// verification. Key management is external; the cipher arrives ready.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// TwoFactorService is the account-security surface of the panel
type TwoFactorService interface {
	// Toggle verifies the passcode, flips (or forces) the user's 2FA
	// state, and manages recovery codes. The returned plaintexts are
	// observable only here; afterwards only their hashes exist.
	Toggle(ctx context.Context, u user.User, passcode string, desired *bool) ([]string, error)
	// Setup mints and stores a new encrypted TOTP secret for enrollment
	Setup(ctx context.Context, u user.User) (SetupResult, error)
	// VerifyPasscode is the login-challenge check; it never mutates state
	VerifyPasscode(ctx context.Context, u user.User, passcode string) error
	// ConsumeRecoveryCode burns a single-use backup code
	ConsumeRecoveryCode(ctx context.Context, u user.User, code string) error
	// Status reports the enabled flag and remaining recovery codes
	Status(ctx context.Context, userID uuid.UUID) (Status, error)
}

type (
	// SetupResult carries the enrollment data shown once to the caller
	SetupResult struct {
		Secret string `json:"secret"`
		URI    string `json:"uri"`
	}

	// Status is the read-only two-factor state of an account
	Status struct {
		Enabled        bool `json:"enabled"`
		CodesRemaining int  `json:"codes_remaining"`
	}
)

// TwoFaService implements TwoFactorService
type TwoFaService struct {
	users       user.UserRepository
	codes       RecoveryCodeRepository
	txManager   TransactionManager
	cipher      SecretCipher
	verifier    TotpVerifier
	provisioner TotpProvisioner
	codeGen     CodeGenerator
	hasher      RecoveryCodeHasher
	now         func() time.Time
}

// Option configures a TwoFaService
type Option func(*TwoFaService)

// WithCodeGenerator substitutes the recovery-code generator
func WithCodeGenerator(gen CodeGenerator) Option {
	return func(s *TwoFaService) {
		s.codeGen = gen
	}
}

// WithHasher substitutes the recovery-code hasher
func WithHasher(hasher RecoveryCodeHasher) Option {
	return func(s *TwoFaService) {
		s.hasher = hasher
	}
}

// WithProvisioner sets the TOTP provisioner used by Setup
func WithProvisioner(p TotpProvisioner) Option {
	return func(s *TwoFaService) {
		s.provisioner = p
	}
}

// WithClock substitutes the wall clock, for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(s *TwoFaService) {
		s.now = now
	}
}

// NewTwoFaService creates a new two-factor service. If the verifier
// also provisions secrets, Setup uses it without further wiring.
func NewTwoFaService(users user.UserRepository, codes RecoveryCodeRepository, txManager TransactionManager,
	cipher SecretCipher, verifier TotpVerifier, opts ...Option) *TwoFaService {
	s := &TwoFaService{
		users:     users,
		codes:     codes,
		txManager: txManager,
		cipher:    cipher,
		verifier:  verifier,
		codeGen:   NewCodeGenerator(),
		hasher:    &BcryptCodeHasher{},
		now:       time.Now,
	}

	if p, ok := verifier.(TotpProvisioner); ok {
		s.provisioner = p
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// gate decrypts the stored secret and verifies the submitted passcode.
// This is the sole validation protecting every mutation below it.
func (s *TwoFaService) gate(u user.User, passcode string) error {
	if !u.SecretValid || u.TotpSecretEncrypted == "" {
		return pkgerrors.New(pkgerrors.ErrCode2FANotConfigured, "two-factor authentication is not configured for this account")
	}

	secret, err := s.cipher.Decrypt(u.TotpSecretEncrypted)
	if err != nil {
		slog.Error("Failed to decrypt totp secret", "userId", u.ID, "error", err)
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSecretDecryptionFailed, "failed to decrypt totp secret")
	}

	valid, err := s.verifier.VerifyPasscode(secret, passcode)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCode2FAInvalid, "failed to verify passcode")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.ErrCode2FAInvalid, "invalid passcode")
	}

	return nil
}

// Toggle verifies the passcode and applies the state transition. The
// branch is chosen from the explicit desired state and the previous
// flag: an explicit desired=true always takes the enabling path, even
// when 2FA is already on, in which case a fresh batch of codes is
// issued alongside the old ones.
func (s *TwoFaService) Toggle(ctx context.Context, u user.User, passcode string, desired *bool) ([]string, error) {
	if err := s.gate(u, passcode); err != nil {
		return nil, err
	}

	target := !u.TwoFactorEnabled
	if desired != nil {
		target = *desired
	}
	enabling := (desired != nil && *desired) || (desired == nil && !u.TwoFactorEnabled)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodePersistenceFailed, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	users := s.users.WithTx(tx.Tx())
	codes := s.codes.WithTx(tx.Tx())

	var plaintexts []string
	if enabling {
		plaintexts, err = s.issueRecoveryCodes(ctx, codes, u.ID)
		if err != nil {
			return nil, err
		}
	} else {
		if err := codes.DeleteByUserID(ctx, u.ID); err != nil {
			return nil, err
		}
		plaintexts = []string{}
	}

	err = users.UpdateTwoFactor(ctx, user.UpdateTwoFactorParams{
		ID:               u.ID,
		TwoFactorEnabled: target,
		VerifiedAt:       s.now().UTC(),
		VerifiedAtValid:  true,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodePersistenceFailed, "failed to commit transaction")
	}

	slog.Info("Two-factor state changed", "userId", u.ID, "enabled", target, "codesIssued", len(plaintexts))
	return plaintexts, nil
}

// issueRecoveryCodes generates the batch and stores one hash per code
func (s *TwoFaService) issueRecoveryCodes(ctx context.Context, codes RecoveryCodeRepository, userID uuid.UUID) ([]string, error) {
	plaintexts := make([]string, 0, RecoveryCodeCount)
	records := make([]RecoveryCode, 0, RecoveryCodeCount)

	for i := 0; i < RecoveryCodeCount; i++ {
		code, err := s.codeGen.Generate()
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeInternal, "failed to generate recovery code")
		}

		hash, err := s.hasher.Hash(code)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeInternal, "failed to hash recovery code")
		}

		plaintexts = append(plaintexts, code)
		records = append(records, RecoveryCode{
			ID:       uuid.New(),
			UserID:   userID,
			CodeHash: hash,
		})
	}

	if err := codes.CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	return plaintexts, nil
}

// Setup mints a new TOTP secret, encrypts it, and stores it on the user
// row. The enabled flag is untouched; a Toggle with a valid passcode
// completes enrollment.
func (s *TwoFaService) Setup(ctx context.Context, u user.User) (SetupResult, error) {
	if s.provisioner == nil {
		return SetupResult{}, pkgerrors.New(pkgerrors.ErrCodeInternal, "totp provisioner not configured")
	}

	secret, uri, err := s.provisioner.GenerateSecret(u.Email)
	if err != nil {
		return SetupResult{}, pkgerrors.Wrap(err, pkgerrors.ErrCodeInternal, "failed to generate totp secret")
	}

	encrypted, err := s.cipher.Encrypt(secret)
	if err != nil {
		return SetupResult{}, pkgerrors.Wrap(err, pkgerrors.ErrCodeInternal, "failed to encrypt totp secret")
	}

	err = s.users.UpdateTotpSecret(ctx, user.UpdateTotpSecretParams{
		ID:                  u.ID,
		TotpSecretEncrypted: encrypted,
		SecretValid:         true,
	})
	if err != nil {
		return SetupResult{}, err
	}

	return SetupResult{Secret: secret, URI: uri}, nil
}

// VerifyPasscode is the login-challenge check. No state changes.
func (s *TwoFaService) VerifyPasscode(ctx context.Context, u user.User, passcode string) error {
	return s.gate(u, passcode)
}

// ConsumeRecoveryCode compares the submitted plaintext against the
// user's stored hashes; a match deletes that single code and stamps the
// user's two-factor timestamp in one transaction.
func (s *TwoFaService) ConsumeRecoveryCode(ctx context.Context, u user.User, code string) error {
	stored, err := s.codes.ListByUserID(ctx, u.ID)
	if err != nil {
		return err
	}

	var matched *RecoveryCode
	for i := range stored {
		ok, err := s.hasher.Verify(code, stored[i].CodeHash)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.ErrCodeInternal, "failed to verify recovery code")
		}
		if ok {
			matched = &stored[i]
			break
		}
	}
	if matched == nil {
		slog.Warn("Recovery code did not match", "userId", u.ID)
		return pkgerrors.New(pkgerrors.ErrCode2FAInvalid, "invalid recovery code")
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodePersistenceFailed, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if err := s.codes.WithTx(tx.Tx()).DeleteByID(ctx, matched.ID); err != nil {
		return err
	}

	err = s.users.WithTx(tx.Tx()).UpdateTwoFactor(ctx, user.UpdateTwoFactorParams{
		ID:               u.ID,
		TwoFactorEnabled: u.TwoFactorEnabled,
		VerifiedAt:       s.now().UTC(),
		VerifiedAtValid:  true,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodePersistenceFailed, "failed to commit transaction")
	}

	slog.Info("Recovery code consumed", "userId", u.ID)
	return nil
}

// Status reports the enabled flag and remaining recovery-code count
func (s *TwoFaService) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	count, err := s.codes.CountByUserID(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Enabled:        u.TwoFactorEnabled,
		CodesRemaining: count,
	}, nil
}
