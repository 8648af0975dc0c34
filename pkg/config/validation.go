package config

import (
	"fmt"
	"net/url"
	"regexp"
	"time"
)

// ValidationError is one failed check on a single config field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failed check so the operator sees
// all configuration problems at once instead of one per restart.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}

	msg := "configuration validation failed:"
	for _, err := range e {
		msg += fmt.Sprintf("\n  - %s", err.Error())
	}
	return msg
}

// HasErrors reports whether any check failed
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator runs a group of checks and returns their failures
type Validator func() ValidationErrors

// Validate runs the validators and combines their failures into one
// error, or nil when everything passed
func Validate(validators ...Validator) error {
	var all ValidationErrors
	for _, v := range validators {
		all = append(all, v()...)
	}

	if all.HasErrors() {
		return all
	}
	return nil
}

func fieldError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RequireNonEmpty checks that a string field is set
func RequireNonEmpty(field, value string) *ValidationError {
	if value == "" {
		return fieldError(field, "is required")
	}
	return nil
}

// RequirePositive checks that an integer field is greater than zero
func RequirePositive(field string, value int) *ValidationError {
	if value <= 0 {
		return fieldError(field, "must be positive, got %d", value)
	}
	return nil
}

// RequirePositiveDuration checks that a duration field is greater than zero
func RequirePositiveDuration(field string, value time.Duration) *ValidationError {
	if value <= 0 {
		return fieldError(field, "must be positive, got %v", value)
	}
	return nil
}

// RequireInRange checks that an integer lies within [min, max]
func RequireInRange(field string, value, min, max int) *ValidationError {
	if value < min || value > max {
		return fieldError(field, "must be between %d and %d, got %d", min, max, value)
	}
	return nil
}

// RequireValidURL checks that a string parses as a URL with a scheme
func RequireValidURL(field, value string) *ValidationError {
	if value == "" {
		return fieldError(field, "is required")
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return fieldError(field, "invalid URL: %v", err)
	}
	if parsed.Scheme == "" {
		return fieldError(field, "URL must have a scheme (http:// or https://)")
	}

	return nil
}

// RequireHTTPSURL checks that a string is a valid URL using https
func RequireHTTPSURL(field, value string) *ValidationError {
	if err := RequireValidURL(field, value); err != nil {
		return err
	}

	if parsed, _ := url.Parse(value); parsed.Scheme != "https" {
		return fieldError(field, "must use HTTPS")
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RequireValidEmail checks that a string looks like an email address
func RequireValidEmail(field, value string) *ValidationError {
	if value == "" {
		return fieldError(field, "is required")
	}
	if !emailPattern.MatchString(value) {
		return fieldError(field, "invalid email format")
	}
	return nil
}

// RequireValidPort checks that a port number is non-zero
func RequireValidPort(field string, value uint16) *ValidationError {
	if value == 0 {
		return fieldError(field, "port must be between 1 and 65535")
	}
	return nil
}

// RequireMinLength checks that a string meets a minimum length
func RequireMinLength(field, value string, minLength int) *ValidationError {
	if len(value) < minLength {
		return fieldError(field, "must be at least %d characters, got %d", minLength, len(value))
	}
	return nil
}

// WhenSet runs the check only when the value is non-empty, for
// optional fields that are validated if provided
func WhenSet(value string, validator func() *ValidationError) *ValidationError {
	if value == "" {
		return nil
	}
	return validator()
}

// CollectErrors gathers the non-nil failures from a series of checks
func CollectErrors(errors ...*ValidationError) ValidationErrors {
	var result ValidationErrors
	for _, err := range errors {
		if err != nil {
			result = append(result, *err)
		}
	}
	return result
}
