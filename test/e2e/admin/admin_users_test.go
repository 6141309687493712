package admin_test

import (
	"context"
	"testing"

	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

// TestUserLifecycle covers create with admin grant, filtering, email
// confirmation and cascade delete over the HTTP surface.
func TestUserLifecycle(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	ctx := context.Background()
	sdk := adminClient(t, baseURL)

	grace, err := sdk.CreateUser(ctx, adminsdk.User{
		Name:      "grace",
		AgentType: 2,
		IsAdmin:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, grace.ID, "server assigns the id")
	require.True(t, grace.IsAdmin)
	require.False(t, grace.Confirmed)

	_, err = sdk.CreateUser(ctx, adminsdk.User{Name: "hopper", AgentType: 1})
	require.NoError(t, err)

	list, err := sdk.ListUsers(ctx, adminsdk.ListQuery{Filter: "admin"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Amount)
	require.Equal(t, "grace", list.Payload[0].Name)

	// Email confirmation is anonymous; the link lands without a token.
	require.NoError(t, anonymousClient(baseURL).ConfirmEmail(ctx, grace.ID))

	list, err = sdk.ListUsers(ctx, adminsdk.ListQuery{Filter: "confirmed"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Amount)
	require.Equal(t, grace.ID, list.Payload[0].ID)
	require.True(t, list.Payload[0].Confirmed)

	grace.IsAdmin = false
	updated, err := sdk.UpdateUser(ctx, grace)
	require.NoError(t, err)
	require.False(t, updated.IsAdmin)

	require.NoError(t, sdk.DeleteUser(ctx, grace.ID))

	list, err = sdk.ListUsers(ctx, adminsdk.ListQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Amount)
	require.Equal(t, "hopper", list.Payload[0].Name)
}

// TestConfirmEmailUnknownUser checks the 404 on a bad confirmation link.
func TestConfirmEmailUnknownUser(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	err := anonymousClient(baseURL).ConfirmEmail(context.Background(), "no-such-user")
	requireAPIStatus(t, err, 404)
}

// TestUserValidationMessages checks the duplicate and whitespace rules.
func TestUserValidationMessages(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	ctx := context.Background()
	sdk := adminClient(t, baseURL)

	_, err := sdk.CreateUser(ctx, adminsdk.User{Name: "grace"})
	require.NoError(t, err)

	_, err = sdk.CreateUser(ctx, adminsdk.User{Name: "grace"})
	apiErr := requireAPIStatus(t, err, 400)
	require.Equal(t, []string{"The user with this name exists already"}, apiErr.Messages)

	_, err = sdk.CreateUser(ctx, adminsdk.User{Name: "ada lovelace"})
	apiErr = requireAPIStatus(t, err, 400)
	require.Equal(t, []string{"The name must not contain spaces"}, apiErr.Messages)
}
