package config

// TwoFactorConfig holds TOTP verification settings shared by the
// two-factor service and the enrollment endpoints. WindowSteps is the
// number of 30-second steps before and after the current time for which
// a passcode is still accepted.
type TwoFactorConfig struct {
	Issuer      string `env:"TWOFA_ISSUER" env-default:"panel"`
	Period      uint   `env:"TWOFA_PERIOD" env-default:"30"`
	WindowSteps uint   `env:"TWOFA_WINDOW_STEPS" env-default:"1"`
	Digits      int    `env:"TWOFA_DIGITS" env-default:"6"`
}

// DefaultTwoFactorConfig returns a TwoFactorConfig with sensible defaults
func DefaultTwoFactorConfig() TwoFactorConfig {
	return TwoFactorConfig{
		Issuer:      "panel",
		Period:      30,
		WindowSteps: 1,
		Digits:      6,
	}
}

// Validate checks that the TOTP settings are within supported bounds
func (c TwoFactorConfig) Validate() error {
	return Validate(
		func() ValidationErrors {
			return CollectErrors(
				RequireNonEmpty("issuer", c.Issuer),
				RequirePositive("period", int(c.Period)),
				RequireInRange("digits", c.Digits, 6, 8),
			)
		},
	)
}

// NewTwoFactorConfigFromEnv creates a TwoFactorConfig from environment variables
func NewTwoFactorConfigFromEnv() TwoFactorConfig {
	return TwoFactorConfig{
		Issuer:      GetEnvOrDefault("TWOFA_ISSUER", "panel"),
		Period:      GetEnvUint("TWOFA_PERIOD", 30),
		WindowSteps: GetEnvUint("TWOFA_WINDOW_STEPS", 1),
		Digits:      GetEnvInt("TWOFA_DIGITS", 6),
	}
}
