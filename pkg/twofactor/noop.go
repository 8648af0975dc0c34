package twofactor

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
	"github.com/hypeit-za/panel/pkg/user"
)

// NoOpTwoFactorService is a no-op implementation of TwoFactorService.
// This allows the panel to run with 2FA administratively disabled while
// handlers that depend on the service keep working.
//
// Mutating methods return errors indicating 2FA is not configured.
type NoOpTwoFactorService struct{}

// NewNoOpTwoFactorService creates a new no-op two-factor service.
// Use this when you don't need 2FA functionality.
func NewNoOpTwoFactorService() TwoFactorService {
	return &NoOpTwoFactorService{}
}

func (n *NoOpTwoFactorService) Toggle(ctx context.Context, u user.User, passcode string, desired *bool) ([]string, error) {
	return nil, pkgerrors.New(pkgerrors.ErrCode2FANotConfigured, "two-factor authentication not configured")
}

func (n *NoOpTwoFactorService) Setup(ctx context.Context, u user.User) (SetupResult, error) {
	return SetupResult{}, pkgerrors.New(pkgerrors.ErrCode2FANotConfigured, "two-factor authentication not configured")
}

func (n *NoOpTwoFactorService) VerifyPasscode(ctx context.Context, u user.User, passcode string) error {
	return pkgerrors.New(pkgerrors.ErrCode2FANotConfigured, "two-factor authentication not configured")
}

func (n *NoOpTwoFactorService) ConsumeRecoveryCode(ctx context.Context, u user.User, code string) error {
	return pkgerrors.New(pkgerrors.ErrCode2FANotConfigured, "two-factor authentication not configured")
}

func (n *NoOpTwoFactorService) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	return Status{}, nil // Report disabled, not an error
}
