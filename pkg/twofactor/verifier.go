package twofactor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/hypeit-za/panel/pkg/config"
)

// TotpVerifier validates a submitted passcode against a TOTP secret.
// Implementations are pure functions of (secret, passcode, clock).
type TotpVerifier interface {
	VerifyPasscode(secret, passcode string) (bool, error)
}

// TotpProvisioner mints new TOTP secrets for enrollment
type TotpProvisioner interface {
	GenerateSecret(accountName string) (secret, uri string, err error)
}

// Verifier implements TotpVerifier and TotpProvisioner over pquerna/otp.
// The step-tolerance window comes from configuration, not ambient state.
type Verifier struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
	now    func() time.Time
}

// NewVerifier creates a Verifier from the two-factor configuration
func NewVerifier(cfg config.TwoFactorConfig) *Verifier {
	digits := otp.DigitsSix
	if cfg.Digits == 8 {
		digits = otp.DigitsEight
	}

	return &Verifier{
		issuer: cfg.Issuer,
		period: cfg.Period,
		skew:   cfg.WindowSteps,
		digits: digits,
		now:    time.Now,
	}
}

// WithClock substitutes the wall clock, for deterministic tests
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// VerifyPasscode checks the passcode against the secret within the
// configured step-tolerance window
func (v *Verifier) VerifyPasscode(secret, passcode string) (bool, error) {
	valid, err := totp.ValidateCustom(passcode, secret, v.now().UTC(), totp.ValidateOpts{
		Period:    v.period,
		Skew:      v.skew,
		Digits:    v.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		slog.Error("Failed to validate totp passcode", "error", err)
		return false, err
	}
	return valid, nil
}

// GenerateSecret mints a new TOTP secret and its otpauth provisioning URI
func (v *Verifier) GenerateSecret(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      v.issuer,
		AccountName: accountName,
		Period:      v.period,
		Digits:      v.digits,
	})
	if err != nil {
		slog.Error("Failed to generate totp secret", "accountName", accountName, "issuer", v.issuer, "error", err)
		return "", "", fmt.Errorf("failed to generate totp secret: %w", err)
	}

	slog.Info("Generated new totp secret", "accountName", accountName)
	return key.Secret(), key.URL(), nil
}
