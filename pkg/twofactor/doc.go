// Package twofactor provides TOTP-based two-factor authentication for
// panel accounts, including recovery-code lifecycle management.
//
// # Overview
//
// The twofactor package provides:
//   - TOTP (Time-based One-Time Password) verification with a
//     configurable step-tolerance window
//   - A single toggle operation that flips or forces the account's 2FA
//     state behind a passcode gate
//   - Batches of 10 single-use recovery codes, bcrypt-hashed at rest
//   - TOTP secret enrollment (otpauth provisioning URI)
//   - Login-challenge passcode verification and recovery-code consumption
//
// # Basic Usage
//
//	import "github.com/hypeit-za/panel/pkg/twofactor"
//
//	stores, err := twofactor.NewStores("postgres", twofactor.RepositoryConfig{Pool: pool})
//	if err != nil {
//		return err
//	}
//
//	verifier := twofactor.NewVerifier(twoFactorConfig)
//	service := twofactor.NewTwoFaService(
//		stores.Users,
//		stores.Codes,
//		stores.TxManager,
//		cipher,
//		verifier,
//	)
//
//	// Toggle 2FA (nil desired state means "flip")
//	codes, err := service.Toggle(ctx, user, "123456", nil)
//
// # The Toggle Operation
//
// Toggle decrypts the account's stored secret, verifies the submitted
// passcode, and then branches on the explicit desired state and the
// previous flag:
//
//   - Enabling (desired true, or no desired state while disabled):
//     10 new recovery codes are generated, their bcrypt hashes stored in
//     one batch, and the plaintexts returned. This is the only time the
//     plaintexts are observable.
//   - Disabling (desired false, or no desired state while enabled): all
//     of the account's recovery codes are deleted.
//
// The code mutation and the user-row update run in one transaction; a
// failure partway through leaves nothing visible.
//
// An explicit desired=true while 2FA is already enabled takes the
// enabling branch and issues a fresh batch WITHOUT deleting the old
// codes, so codes accumulate across repeated enables. Callers that want
// a clean slate should disable first.
//
// # Recovery Codes
//
// Each code is a random 10-character alphanumeric string drawn from
// crypto/rand. Only bcrypt hashes are persisted. ConsumeRecoveryCode
// compares a submitted plaintext against the stored hashes and deletes
// the matching row, so each code works exactly once.
//
// # Error Codes
//
// Service methods return pkg/errors coded errors:
//   - TWO_FA_INVALID - passcode or recovery code rejected; no mutation
//   - TWO_FA_NOT_CONFIGURED - account has no stored TOTP secret
//   - SECRET_DECRYPTION_FAILED - stored secret is corrupt or the key is wrong
//   - USER_NOT_FOUND - user row vanished at update time
//   - STORAGE_ERROR - recovery-code store backend failure
//   - PERSISTENCE_FAILED - transaction begin/commit failure
package twofactor
