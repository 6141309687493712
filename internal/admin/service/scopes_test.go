package service

import (
	"context"
	"testing"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/stretchr/testify/require"
)

func TestScopeValidationMessages(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &ScopesService{Store: st}
	ctx := context.Background()

	_, err := svc.CreateScope(ctx, domain.Scope{Name: "api.read"})
	require.NoError(t, err)

	_, err = svc.CreateScope(ctx, domain.Scope{Name: "api.read"})
	requireValidation(t, err, "The scope with this name exists already")

	_, err = svc.CreateScope(ctx, domain.Scope{Name: "api read"})
	requireValidation(t, err, "The name must not contain spaces")
}

func TestScopeUpdateAndDelete(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &ScopesService{Store: st}
	ctx := context.Background()

	created, err := svc.CreateScope(ctx, domain.Scope{Name: "api.write", Enabled: true})
	require.NoError(t, err)

	created.DisplayName = "Write access"
	updated, err := svc.UpdateScope(ctx, created)
	require.NoError(t, err)
	require.Equal(t, "Write access", updated.DisplayName)

	require.NoError(t, svc.DeleteScope(ctx, created.ID))
	require.ErrorIs(t, svc.DeleteScope(ctx, created.ID), ErrNotFound)
}

func TestIdentityResourceDuplicateSharesScopeMessage(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &IdentityResourcesService{Store: st}
	ctx := context.Background()

	_, err := svc.CreateIdentityResource(ctx, domain.IdentityResource{Name: "openid"})
	require.NoError(t, err)

	_, err = svc.CreateIdentityResource(ctx, domain.IdentityResource{Name: "openid"})
	requireValidation(t, err, "The scope with this name exists already")
}

// The two namespaces are unioned, not shared: the same name may exist as
// both an API scope and an identity resource.
func TestScopeAndIdentityResourceNamespacesAreIndependent(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	scopes := &ScopesService{Store: st}
	identity := &IdentityResourcesService{Store: st}

	_, err := scopes.CreateScope(ctx, domain.Scope{Name: "profile"})
	require.NoError(t, err)

	_, err = identity.CreateIdentityResource(ctx, domain.IdentityResource{Name: "profile"})
	require.NoError(t, err)
}
