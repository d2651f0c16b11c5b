package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGatewayOTPFlow(t *testing.T) {
	ctx := context.Background()
	gw := NewMockGateway()

	// No session before login.
	_, err := gw.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, gw.SendOTP(ctx, "asha@example.com"))

	// Wrong code, then the right one.
	_, err = gw.VerifyOTP(ctx, "asha@example.com", "000000")
	assert.Error(t, err)

	user, err := gw.VerifyOTP(ctx, "asha@example.com", MockOTP)
	require.NoError(t, err)
	assert.Equal(t, "mock-asha", user.ID)
	assert.Equal(t, "customer", user.Role)

	current, err := gw.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	require.NoError(t, gw.Logout(ctx))
	_, err = gw.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestMockGatewayRequiresSendBeforeVerify(t *testing.T) {
	gw := NewMockGateway()
	_, err := gw.VerifyOTP(context.Background(), "asha@example.com", MockOTP)
	assert.Error(t, err)
}

func TestMockGatewayRejectsBadEmail(t *testing.T) {
	gw := NewMockGateway()
	assert.Error(t, gw.SendOTP(context.Background(), "not-an-email"))
}

func TestNewSignedInMockStartsAuthenticated(t *testing.T) {
	gw := NewSignedInMock("dev@swapcell.local")

	user, err := gw.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mock-dev", user.ID)
	assert.Equal(t, "dev@swapcell.local", user.Email)
}
