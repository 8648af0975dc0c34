package twofactorapi

import "github.com/hypeit-za/panel/pkg/user"

// ToggleRequest flips or forces the two-factor state of an account.
// Enabled is optional: absent means "flip whatever the current state
// is", present forces that state.
type ToggleRequest struct {
	UserID   *string `json:"user_id,omitempty"` // admins may target another account
	Passcode string  `json:"passcode"`
	Enabled  *bool   `json:"enabled,omitempty"`
}

// ToggleResponse carries the new state and, when 2FA was enabled, the
// one-time plaintext recovery codes.
type ToggleResponse struct {
	Enabled       bool     `json:"enabled"`
	RecoveryCodes []string `json:"recovery_codes"`
}

// SetupRequest starts TOTP enrollment
type SetupRequest struct {
	UserID *string `json:"user_id,omitempty"`
}

// SetupResponse returns the enrollment secret and provisioning URI
type SetupResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

// RecoveryRequest burns a single-use recovery code
type RecoveryRequest struct {
	Code string `json:"code"`
}

// RecoveryResponse reports the remaining code count after consumption
type RecoveryResponse struct {
	Message        string `json:"message"`
	CodesRemaining int    `json:"codes_remaining"`
}

// StatusResponse is the read-only two-factor state of the account,
// together with the account view it belongs to
type StatusResponse struct {
	User           user.UserInfo `json:"user"`
	Enabled        bool          `json:"enabled"`
	CodesRemaining int           `json:"codes_remaining"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
