package config

// SecretsConfig holds the key used to encrypt stored TOTP secrets
type SecretsConfig struct {
	EncryptionKey string `env:"PANEL_ENCRYPTION_KEY" env-default:"dev-only-encryption-key"`
}

// Validate checks that the encryption key meets the minimum strength requirement
func (s SecretsConfig) Validate() error {
	return Validate(
		func() ValidationErrors {
			return CollectErrors(
				RequireMinLength("encryption_key", s.EncryptionKey, 16),
			)
		},
	)
}

// NewSecretsConfigFromEnv creates a SecretsConfig from environment variables
func NewSecretsConfigFromEnv() SecretsConfig {
	return SecretsConfig{
		EncryptionKey: GetEnvOrDefault("PANEL_ENCRYPTION_KEY", "dev-only-encryption-key"),
	}
}
