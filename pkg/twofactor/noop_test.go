package twofactor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
	"github.com/hypeit-za/panel/pkg/user"
)

func TestNoOpServiceRejectsMutations(t *testing.T) {
	svc := NewNoOpTwoFactorService()
	ctx := context.Background()
	u := user.User{ID: uuid.New(), Email: "ops@example.com"}

	_, err := svc.Toggle(ctx, u, "123456", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCode2FANotConfigured, pkgerrors.GetCode(err))

	_, err = svc.Setup(ctx, u)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCode2FANotConfigured, pkgerrors.GetCode(err))

	err = svc.VerifyPasscode(ctx, u, "123456")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCode2FANotConfigured, pkgerrors.GetCode(err))

	err = svc.ConsumeRecoveryCode(ctx, u, "ABCDE12345")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCode2FANotConfigured, pkgerrors.GetCode(err))
}

func TestNoOpServiceStatusReportsDisabled(t *testing.T) {
	svc := NewNoOpTwoFactorService()

	status, err := svc.Status(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, status.Enabled)
	assert.Equal(t, 0, status.CodesRemaining)
}
