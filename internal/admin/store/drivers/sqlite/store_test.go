package sqlite

import (
	"context"
	"testing"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestClaimIfEmptyIsConditional(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: "u1", Name: "one"}))
	require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: "u2", Name: "two"}))

	granted, err := st.RoleBindings().ClaimIfEmpty(ctx, domain.AdminRole, "u1")
	require.NoError(t, err)
	require.True(t, granted)

	// Claimed role refuses everyone, including the holder.
	granted, err = st.RoleBindings().ClaimIfEmpty(ctx, domain.AdminRole, "u2")
	require.NoError(t, err)
	require.False(t, granted)

	granted, err = st.RoleBindings().ClaimIfEmpty(ctx, domain.AdminRole, "u1")
	require.NoError(t, err)
	require.False(t, granted)

	count, err := st.RoleBindings().CountMembers(ctx, domain.AdminRole)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestDeleteUserCascadesBindings(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: "u1", Name: "one"}))
	require.NoError(t, st.RoleBindings().Grant(ctx, domain.AdminRole, "u1"))

	require.NoError(t, st.Users().DeleteUser(ctx, "u1"))

	has, err := st.RoleBindings().HasMember(ctx, domain.AdminRole, "u1")
	require.NoError(t, err)
	require.False(t, has)
}

func TestUpdateMissingRowReportsNotFound(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()

	err := st.Clients().UpdateClient(ctx, domain.Client{ID: 41, ClientID: "x", ClientName: "X"})
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.Scopes().DeleteScope(ctx, 41)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByID(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListColumnsRoundTripSpaceJoined(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()

	id, err := st.Clients().CreateClient(ctx, domain.Client{
		ClientID:     "web",
		ClientName:   "Web",
		RedirectURIs: []string{"https://a.example/cb", "https://b.example/cb"},
		Scopes:       []string{"one", "two", "one"},
		GrantTypes:   []string{domain.GrantTypeAuthorizationCode},
	})
	require.NoError(t, err)

	got, err := st.Clients().GetClientByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example/cb", "https://b.example/cb"}, got.RedirectURIs)
	// Duplicates collapse on write.
	require.Equal(t, []string{"one", "two"}, got.Scopes)
	require.False(t, got.CreatedAt.IsZero())
	require.False(t, got.UpdatedAt.IsZero())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()

	sentinel := store.ErrAlreadyExists
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Scopes().CreateScope(ctx, domain.Scope{Name: "doomed"}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	names, err := st.Scopes().ExistingScopeNames(ctx, []string{"doomed"})
	require.NoError(t, err)
	require.Empty(t, names)
}
