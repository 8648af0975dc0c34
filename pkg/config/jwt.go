package config

import (
	"time"
)

// JWTConfig holds JWT authentication configuration
// This is shared across all services to avoid duplication
type JWTConfig struct {
	Secret            string        `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	AccessTokenExpiry time.Duration `env:"ACCESS_TOKEN_EXPIRY" env-default:"5m"`
	Issuer            string        `env:"JWT_ISSUER" env-default:"panel"`
	Audience          string        `env:"JWT_AUDIENCE" env-default:"panel"`
}

// Validate checks that the JWT configuration is usable
func (j JWTConfig) Validate() error {
	return Validate(
		func() ValidationErrors {
			return CollectErrors(
				RequireMinLength("secret", j.Secret, 16),
				RequirePositiveDuration("access_token_expiry", j.AccessTokenExpiry),
			)
		},
	)
}

// NewJWTConfigFromEnv creates a JWTConfig from environment variables
func NewJWTConfigFromEnv() JWTConfig {
	return JWTConfig{
		Secret:            GetEnvOrDefault("JWT_SECRET", "very-secure-jwt-secret"),
		AccessTokenExpiry: GetEnvDuration("ACCESS_TOKEN_EXPIRY", 5*time.Minute),
		Issuer:            GetEnvOrDefault("JWT_ISSUER", "panel"),
		Audience:          GetEnvOrDefault("JWT_AUDIENCE", "panel"),
	}
}
