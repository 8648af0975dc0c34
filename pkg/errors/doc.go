// Package errors provides structured error handling with error codes for the panel.
//
// This package standardizes error handling across all services with typed error codes,
// structured error details, and automatic HTTP status code mapping.
//
// # Overview
//
// The errors package provides:
//   - Structured Error type with error codes
//   - Predefined error codes for the panel's account and two-factor flows
//   - Error wrapping with context
//   - HTTP status code mapping
//   - Error inspection utilities
//
// # Basic Usage
//
// Creating errors with codes:
//
//	import "github.com/hypeit-za/panel/pkg/errors"
//
//	// Create a simple error
//	err := errors.New(errors.ErrCodeUserNotFound, "user not found")
//
//	// Create error with formatted message
//	err := errors.Newf(errors.ErrCode2FAInvalid, "passcode rejected for user %s", userID)
//
//	// Wrap an existing error
//	err := errors.Wrap(dbErr, errors.ErrCodeStorageError, "failed to store recovery codes")
//
//	// Use convenience constructors
//	err := errors.NotFound("user", userID)
//	err := errors.InvalidInput("code", "must be 6 digits")
//
// # Error Codes
//
// All error codes are strongly typed and organized by category:
//
// Generic:
//   - ErrCodeInternal
//   - ErrCodeInvalidInput
//   - ErrCodeNotFound
//   - ErrCodeUnauthorized
//   - ErrCodeForbidden
//   - ErrCodeRateLimitExceeded
//
// Authentication:
//   - ErrCodeTokenExpired
//   - ErrCodeTokenInvalid
//
// Two-factor:
//   - ErrCode2FARequired
//   - ErrCode2FAInvalid
//   - ErrCode2FANotConfigured
//   - ErrCodeSecretDecryptionFailed
//
// Storage:
//   - ErrCodeStorageError
//   - ErrCodePersistenceFailed
//
// See errors.go for the complete list of error codes.
//
// # Error Details
//
// Add structured details to errors for better debugging:
//
//	err := errors.NotFound("user", userID).
//		WithDetail("user_id", userID).
//		WithDetail("search_by", "email")
//
// # Error Inspection
//
// Check error codes and extract information:
//
//	// Check if error has specific code
//	if errors.IsCode(err, errors.ErrCode2FAInvalid) {
//		// Reject the toggle, nothing was changed
//	}
//
//	// Get error code
//	code := errors.GetCode(err)
//
//	// Get error details
//	details := errors.GetDetails(err)
//
//	// Standard error wrapping still works
//	if errors.Is(err, pgx.ErrNoRows) {
//		// Handle no rows
//	}
//
// # HTTP Status Code Mapping
//
// Automatically map errors to HTTP status codes:
//
//	func handleError(w http.ResponseWriter, err error) {
//		var structuredErr *errors.Error
//		if errors.As(err, &structuredErr) {
//			statusCode := structuredErr.HTTPStatusCode()
//			http.Error(w, structuredErr.Message, statusCode)
//			return
//		}
//		http.Error(w, "Internal server error", 500)
//	}
//
// Error code to HTTP status mapping:
//   - ErrCodeInvalidInput, ErrCode2FANotConfigured → 400 Bad Request
//   - ErrCodeUnauthorized, ErrCode2FAInvalid → 401 Unauthorized
//   - ErrCodeForbidden → 403 Forbidden
//   - ErrCodeNotFound, ErrCodeUserNotFound → 404 Not Found
//   - ErrCodeRateLimitExceeded → 429 Too Many Requests
//   - ErrCodeInternal, ErrCodeStorageError, ErrCodePersistenceFailed → 500 Internal Server Error
//
// # Service Layer Example
//
// Using structured errors in a service:
//
//	func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
//		user, err := s.repo.GetByID(ctx, id)
//		if err != nil {
//			if errors.Is(err, pgx.ErrNoRows) {
//				return User{}, errors.NotFound("user", id.String())
//			}
//			return User{}, errors.Wrap(err, errors.ErrCodeStorageError, "failed to query user")
//		}
//		return user, nil
//	}
//
// # Testing
//
// Test error handling:
//
//	func TestToggle_InvalidPasscode(t *testing.T) {
//		service := setupTest(t)
//
//		_, err := service.Toggle(ctx, user, "000000", nil)
//
//		assert.Error(t, err)
//		assert.True(t, errors.IsCode(err, errors.ErrCode2FAInvalid))
//	}
package errors
