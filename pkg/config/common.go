package config

import (
	"os"
	"strconv"
	"time"
)

// GetEnv reads an environment variable, empty string when unset
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable with a fallback
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt reads an integer variable, falling back when unset or unparsable
func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetEnvUint reads an unsigned integer variable
func GetEnvUint(key string, defaultValue uint) uint {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return uint(parsed)
}

// GetEnvUint16 reads a uint16 variable, used for ports
func GetEnvUint16(key string, defaultValue uint16) uint16 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return defaultValue
	}
	return uint16(parsed)
}

// GetEnvFloat64 reads a float variable
func GetEnvFloat64(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetEnvBool reads a boolean variable. Accepts true/1/yes/on and
// false/0/no/off in any casing; anything else falls back.
func GetEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes", "on", "True", "TRUE", "Yes", "YES", "On", "ON":
		return true
	case "false", "0", "no", "off", "False", "FALSE", "No", "NO", "Off", "OFF":
		return false
	}
	return defaultValue
}

// GetEnvDuration reads a Go duration string ("5m", "1h30m", "24h")
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Environment names a deployment tier
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
	Test        Environment = "test"
)

// GetEnvironment reads APP_ENV, defaulting to development
func GetEnvironment() Environment {
	switch GetEnv("APP_ENV") {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	case "test", "testing":
		return Test
	default:
		return Development
	}
}

// IsDevelopment reports whether APP_ENV names the development tier
func IsDevelopment() bool {
	return GetEnvironment() == Development
}

// IsProduction reports whether APP_ENV names the production tier
func IsProduction() bool {
	return GetEnvironment() == Production
}
