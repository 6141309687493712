package admin_test

import (
	"context"
	"testing"

	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

// TestBecomeAdminFirstCallerWins verifies the one-time admin claim: the
// first authenticated caller is granted the role, everyone after that is
// refused, including the winner asking again.
func TestBecomeAdminFirstCallerWins(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	ctx := context.Background()
	sdk := adminClient(t, baseURL)

	// The claim binds the token subject to the role, so the accounts have
	// to exist first.
	first, err := sdk.CreateUser(ctx, adminsdk.User{Name: "first", AgentType: 1})
	require.NoError(t, err)
	second, err := sdk.CreateUser(ctx, adminsdk.User{Name: "second", AgentType: 1})
	require.NoError(t, err)

	firstClient := adminsdk.NewSDKClient(baseURL, signToken(t, first.ID))
	secondClient := adminsdk.NewSDKClient(baseURL, signToken(t, second.ID))

	resp, err := firstClient.BecomeAdmin(ctx)
	require.NoError(t, err)
	require.True(t, resp.Granted)

	// The second caller is refused with a 403.
	_, err = secondClient.BecomeAdmin(ctx)
	requireAPIStatus(t, err, 403)

	// So is the winner asking again; the grant is not idempotent-true.
	_, err = firstClient.BecomeAdmin(ctx)
	requireAPIStatus(t, err, 403)

	// The winner now shows up as an administrator in the registry.
	list, err := sdk.ListUsers(ctx, adminsdk.ListQuery{Filter: "admin"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Amount)
	require.Equal(t, first.ID, list.Payload[0].ID)
}

// TestBecomeAdminRequiresAuthentication checks that the endpoint still
// demands a valid token even though it skips the role gate.
func TestBecomeAdminRequiresAuthentication(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	_, err := anonymousClient(baseURL).BecomeAdmin(context.Background())
	requireAPIStatus(t, err, 401)
}
