package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "hello")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "yes")
	t.Setenv("TEST_DUR", "90s")
	t.Setenv("TEST_BAD_INT", "not-a-number")

	assert.Equal(t, "hello", GetEnvOrDefault("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("TEST_MISSING", "fallback"))
	assert.Equal(t, 42, GetEnvInt("TEST_INT", 7))
	assert.Equal(t, 7, GetEnvInt("TEST_BAD_INT", 7))
	assert.True(t, GetEnvBool("TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DUR", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("TEST_MISSING", time.Minute))
}

func TestValidationHelpers(t *testing.T) {
	assert.Nil(t, RequireNonEmpty("field", "value"))
	assert.NotNil(t, RequireNonEmpty("field", ""))

	assert.Nil(t, RequireInRange("digits", 6, 6, 8))
	assert.NotNil(t, RequireInRange("digits", 9, 6, 8))

	assert.Nil(t, RequireMinLength("key", "long-enough-value", 16))
	assert.NotNil(t, RequireMinLength("key", "short", 16))

	assert.Nil(t, RequireValidPort("port", 5432))
	assert.NotNil(t, RequireValidPort("port", 0))
}

func TestValidateCombinesErrors(t *testing.T) {
	err := Validate(func() ValidationErrors {
		return CollectErrors(
			RequireNonEmpty("host", ""),
			RequirePositive("period", 0),
		)
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "host: is required")
}

func TestTwoFactorConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultTwoFactorConfig().Validate())

	bad := TwoFactorConfig{Issuer: "", Period: 0, Digits: 4}
	assert.Error(t, bad.Validate())
}

func TestDatabaseConfigFromEnv(t *testing.T) {
	t.Setenv("PANEL_PG_HOST", "db.internal")
	t.Setenv("PANEL_PG_PORT", "6432")

	cfg := NewDatabaseConfigFromEnv()
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, uint16(6432), cfg.Port)
	assert.Equal(t, "panel_db", cfg.Database)
	assert.NoError(t, cfg.Validate())

	dbCfg := cfg.ToDbConfig()
	assert.Equal(t, "db.internal", dbCfg.Host)
	assert.Equal(t, uint16(6432), dbCfg.Port)
}

func TestSecretsConfigValidate(t *testing.T) {
	assert.NoError(t, SecretsConfig{EncryptionKey: "a-sufficiently-long-key"}.Validate())
	assert.Error(t, SecretsConfig{EncryptionKey: "short"}.Validate())
}

func TestJWTConfigValidate(t *testing.T) {
	cfg := NewJWTConfigFromEnv()
	assert.NoError(t, cfg.Validate())

	bad := JWTConfig{Secret: "short", AccessTokenExpiry: 0}
	assert.Error(t, bad.Validate())
}
