package twofactor

import (
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypeit-za/panel/pkg/config"
)

func mintCode(t *testing.T, secret string, at time.Time) string {
	t.Helper()

	code, err := totp.GenerateCodeCustom(secret, at.UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}

func TestVerifierAcceptsCurrentCode(t *testing.T) {
	verifier := NewVerifier(config.DefaultTwoFactorConfig())

	valid, err := verifier.VerifyPasscode(testTotpSecret, mintCode(t, testTotpSecret, time.Now()))
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifierWindowTolerance(t *testing.T) {
	// Pin the clock so the step arithmetic is exact
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	verifier := NewVerifier(config.DefaultTwoFactorConfig()).WithClock(func() time.Time { return now })

	// One step behind and one step ahead are inside the default window
	valid, err := verifier.VerifyPasscode(testTotpSecret, mintCode(t, testTotpSecret, now.Add(-30*time.Second)))
	require.NoError(t, err)
	assert.True(t, valid, "code one step behind should verify")

	valid, err = verifier.VerifyPasscode(testTotpSecret, mintCode(t, testTotpSecret, now.Add(30*time.Second)))
	require.NoError(t, err)
	assert.True(t, valid, "code one step ahead should verify")

	// Far outside the window fails
	valid, err = verifier.VerifyPasscode(testTotpSecret, mintCode(t, testTotpSecret, now.Add(-10*time.Minute)))
	require.NoError(t, err)
	assert.False(t, valid, "stale code should not verify")
}

func TestVerifierRejectsOtherSecret(t *testing.T) {
	verifier := NewVerifier(config.DefaultTwoFactorConfig())

	otherSecret := "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	valid, err := verifier.VerifyPasscode(testTotpSecret, mintCode(t, otherSecret, time.Now()))
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifierWiderWindow(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	cfg := config.DefaultTwoFactorConfig()
	cfg.WindowSteps = 4
	wide := NewVerifier(cfg).WithClock(func() time.Time { return now })

	// Two minutes of drift is inside a 4-step window
	valid, err := wide.VerifyPasscode(testTotpSecret, mintCode(t, testTotpSecret, now.Add(-2*time.Minute)))
	require.NoError(t, err)
	assert.True(t, valid)

	narrow := NewVerifier(config.DefaultTwoFactorConfig()).WithClock(func() time.Time { return now })
	valid, err = narrow.VerifyPasscode(testTotpSecret, mintCode(t, testTotpSecret, now.Add(-2*time.Minute)))
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifierGenerateSecret(t *testing.T) {
	verifier := NewVerifier(config.DefaultTwoFactorConfig())

	secret, uri, err := verifier.GenerateSecret("operator@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, "issuer=panel")
}
