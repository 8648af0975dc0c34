package config

// RateLimitConfig contains rate limiting settings.
// Fields have no env tags - populate manually or use NewRateLimitConfigFromEnv() for standard env var names.
type RateLimitConfig struct {
	// Global rate limiting
	GlobalEnabled    bool
	GlobalCapacity   int
	GlobalRefillRate float64 // tokens per second

	// Per-IP rate limiting
	PerIPEnabled    bool
	PerIPCapacity   int
	PerIPRefillRate float64 // tokens per second

	// Per-User rate limiting (for authenticated requests)
	PerUserEnabled    bool
	PerUserCapacity   int
	PerUserRefillRate float64 // tokens per second

	// Two-factor endpoint specific limits (to prevent passcode guessing)
	TwoFactorEnabled    bool
	TwoFactorCapacity   int
	TwoFactorRefillRate float64 // tokens per second

	// Recovery-code endpoint specific limits (codes are single use, keep this tight)
	RecoveryEnabled    bool
	RecoveryCapacity   int
	RecoveryRefillRate float64 // tokens per second

	// IncludeHeaders controls whether rate limit headers are included in responses
	IncludeHeaders bool
}

// DefaultRateLimitConfig returns a RateLimitConfig with sensible defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		// Global: ~1000 requests per minute
		GlobalEnabled:    true,
		GlobalCapacity:   1000,
		GlobalRefillRate: 16.67,

		// Per-IP: ~100 requests per minute
		PerIPEnabled:    true,
		PerIPCapacity:   100,
		PerIPRefillRate: 1.67,

		// Per-User: ~200 requests per minute
		PerUserEnabled:    true,
		PerUserCapacity:   200,
		PerUserRefillRate: 3.33,

		// Two-factor: 10 per minute (passcode guessing protection)
		TwoFactorEnabled:    true,
		TwoFactorCapacity:   10,
		TwoFactorRefillRate: 0.167,

		// Recovery codes: 5 per 5 minutes
		RecoveryEnabled:    true,
		RecoveryCapacity:   5,
		RecoveryRefillRate: 0.017,

		IncludeHeaders: true,
	}
}

// NewRateLimitConfigFromEnv loads RateLimitConfig from standard environment variables.
// This is an optional convenience function - you can also populate the struct manually.
//
// Environment variables:
//   - RATELIMIT_GLOBAL_ENABLED: Enable global rate limiting (default: true)
//   - RATELIMIT_GLOBAL_CAPACITY: Global bucket capacity (default: 1000)
//   - RATELIMIT_GLOBAL_REFILL_RATE: Global refill rate in tokens/sec (default: 16.67)
//   - RATELIMIT_PER_IP_ENABLED: Enable per-IP rate limiting (default: true)
//   - RATELIMIT_PER_IP_CAPACITY: Per-IP bucket capacity (default: 100)
//   - RATELIMIT_PER_IP_REFILL_RATE: Per-IP refill rate in tokens/sec (default: 1.67)
//   - RATELIMIT_PER_USER_ENABLED: Enable per-user rate limiting (default: true)
//   - RATELIMIT_PER_USER_CAPACITY: Per-user bucket capacity (default: 200)
//   - RATELIMIT_PER_USER_REFILL_RATE: Per-user refill rate in tokens/sec (default: 3.33)
//   - RATELIMIT_TWOFA_ENABLED: Enable two-factor endpoint rate limiting (default: true)
//   - RATELIMIT_TWOFA_CAPACITY: Two-factor bucket capacity (default: 10)
//   - RATELIMIT_TWOFA_REFILL_RATE: Two-factor refill rate in tokens/sec (default: 0.167)
//   - RATELIMIT_RECOVERY_ENABLED: Enable recovery-code endpoint rate limiting (default: true)
//   - RATELIMIT_RECOVERY_CAPACITY: Recovery-code bucket capacity (default: 5)
//   - RATELIMIT_RECOVERY_REFILL_RATE: Recovery-code refill rate in tokens/sec (default: 0.017)
//   - RATELIMIT_INCLUDE_HEADERS: Include rate limit headers in responses (default: true)
func NewRateLimitConfigFromEnv() RateLimitConfig {
	return RateLimitConfig{
		GlobalEnabled:       GetEnvBool("RATELIMIT_GLOBAL_ENABLED", true),
		GlobalCapacity:      GetEnvInt("RATELIMIT_GLOBAL_CAPACITY", 1000),
		GlobalRefillRate:    GetEnvFloat64("RATELIMIT_GLOBAL_REFILL_RATE", 16.67),
		PerIPEnabled:        GetEnvBool("RATELIMIT_PER_IP_ENABLED", true),
		PerIPCapacity:       GetEnvInt("RATELIMIT_PER_IP_CAPACITY", 100),
		PerIPRefillRate:     GetEnvFloat64("RATELIMIT_PER_IP_REFILL_RATE", 1.67),
		PerUserEnabled:      GetEnvBool("RATELIMIT_PER_USER_ENABLED", true),
		PerUserCapacity:     GetEnvInt("RATELIMIT_PER_USER_CAPACITY", 200),
		PerUserRefillRate:   GetEnvFloat64("RATELIMIT_PER_USER_REFILL_RATE", 3.33),
		TwoFactorEnabled:    GetEnvBool("RATELIMIT_TWOFA_ENABLED", true),
		TwoFactorCapacity:   GetEnvInt("RATELIMIT_TWOFA_CAPACITY", 10),
		TwoFactorRefillRate: GetEnvFloat64("RATELIMIT_TWOFA_REFILL_RATE", 0.167),
		RecoveryEnabled:     GetEnvBool("RATELIMIT_RECOVERY_ENABLED", true),
		RecoveryCapacity:    GetEnvInt("RATELIMIT_RECOVERY_CAPACITY", 5),
		RecoveryRefillRate:  GetEnvFloat64("RATELIMIT_RECOVERY_REFILL_RATE", 0.017),
		IncludeHeaders:      GetEnvBool("RATELIMIT_INCLUDE_HEADERS", true),
	}
}
