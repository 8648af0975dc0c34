// Package config provides common configuration utilities and patterns for the panel.
//
// This package centralizes configuration loading and validation so that every
// service binary handles environment variables the same way. Each concern has
// a small config struct with env tags (for cleanenv), a FromEnv constructor,
// and where it matters a Validate method.
//
// # Overview
//
// The config package provides:
//   - Environment variable helpers with type conversion
//   - Configuration validation utilities
//   - Database, JWT, secrets, rate limit and two-factor settings
//   - Environment detection (development, staging, production)
//
// # Environment Variable Helpers
//
// Load configuration from environment variables with automatic type conversion and defaults:
//
//	// String values
//	host := config.GetEnvOrDefault("PANEL_PG_HOST", "localhost")
//
//	// Integer values
//	port := config.GetEnvInt("PANEL_PG_PORT", 5432)
//	steps := config.GetEnvUint("TWOFA_WINDOW_STEPS", 1)
//
//	// Boolean values
//	debug := config.GetEnvBool("DEBUG", false)
//
//	// Duration values
//	expiry := config.GetEnvDuration("ACCESS_TOKEN_EXPIRY", 5*time.Minute)
//
//	// Float values (rate limiter refill rates)
//	rate := config.GetEnvFloat64("RATELIMIT_PER_IP_REFILL_RATE", 1.67)
//
// # Configuration Validation
//
// Validate configuration with structured error handling:
//
//	func (c *ServerConfig) Validate() error {
//		return config.Validate(
//			func() config.ValidationErrors {
//				return config.CollectErrors(
//					config.RequireNonEmpty("host", c.Host),
//					config.RequireValidPort("port", c.Port),
//					config.RequireMinLength("jwt_secret", c.JwtSecret, 16),
//				)
//			},
//		)
//	}
//
// # Service Configuration
//
// Putting it together in a service binary:
//
//	dbConfig := config.NewDatabaseConfigFromEnv()
//	if err := dbConfig.Validate(); err != nil {
//		slog.Error("Invalid database config", "error", err)
//		os.Exit(1)
//	}
//
//	twofaConfig := config.NewTwoFactorConfigFromEnv()
//	secretsConfig := config.NewSecretsConfigFromEnv()
//	rateLimits := config.NewRateLimitConfigFromEnv()
//
// # Environment Detection
//
// Detect and respond to different deployment environments:
//
//	if config.IsProduction() {
//		// Use production settings
//	}
//
//	if config.IsDevelopment() {
//		// Relaxed settings for local work
//	}
package config
