package service

import (
	"context"
	"testing"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/internal/admin/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// mustCreateScope seeds an API scope directly through the store.
func mustCreateScope(t *testing.T, st store.Store, name string) {
	t.Helper()

	_, err := st.Scopes().CreateScope(context.Background(), domain.Scope{
		Name:    name,
		Enabled: true,
	})
	require.NoError(t, err)
}

// mustCreateIdentityResource seeds an identity resource directly through the store.
func mustCreateIdentityResource(t *testing.T, st store.Store, name string) {
	t.Helper()

	_, err := st.IdentityResources().CreateIdentityResource(
		context.Background(),
		domain.IdentityResource{Name: name, Enabled: true},
	)
	require.NoError(t, err)
}

// requireValidation asserts err is a ValidationError carrying exactly the
// expected messages, in order.
func requireValidation(t *testing.T, err error, messages ...string) {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, messages, verr.Messages)
}
