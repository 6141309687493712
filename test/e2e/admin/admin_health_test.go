package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints checks liveness and readiness of a freshly booted
// registry.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	ctx := context.Background()
	sdk := anonymousClient(baseURL)

	live, err := sdk.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)

	ready, err := sdk.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Verifier)
}

// TestAgentTypesFallback checks the built-in directory served when no
// upstream is configured.
func TestAgentTypesFallback(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	types, err := anonymousClient(baseURL).ListAgentTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 3)
	require.Equal(t, "Man", types[0].Name)
	require.Equal(t, 1, types[0].Code)
	require.Equal(t, "Men", types[1].Name)
	require.Equal(t, "Machine", types[2].Name)
}
