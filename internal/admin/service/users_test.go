package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAssignsIDAndReconcilesAdmin(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &UsersService{Store: st}
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.User{Name: "alice", AgentType: 1}, true)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsAdmin)

	isAdmin, err := st.RoleBindings().HasMember(ctx, domain.AdminRole, created.ID)
	require.NoError(t, err)
	require.True(t, isAdmin)
}

func TestUpdateUserRevokesAdminBinding(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &UsersService{Store: st}
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.User{Name: "bob", AgentType: 2}, true)
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, created.User, false)
	require.NoError(t, err)
	require.False(t, updated.IsAdmin)

	isAdmin, err := st.RoleBindings().HasMember(ctx, domain.AdminRole, created.ID)
	require.NoError(t, err)
	require.False(t, isAdmin)
}

func TestUserValidationMessages(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &UsersService{Store: st}
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.User{Name: "carol"}, false)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, domain.User{Name: "carol"}, false)
	requireValidation(t, err, "The user with this name exists already")

	_, err = svc.CreateUser(ctx, domain.User{Name: "bad name"}, false)
	requireValidation(t, err, "The name must not contain spaces")
}

func TestDeleteUserCascadesAdminBinding(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &UsersService{Store: st}
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.User{Name: "dave"}, true)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	members, err := st.RoleBindings().Members(ctx, domain.AdminRole)
	require.NoError(t, err)
	require.Empty(t, members)

	require.ErrorIs(t, svc.DeleteUser(ctx, created.ID), ErrNotFound)
}

func TestListUsersFilters(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &UsersService{Store: st}
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.User{Name: "erin", AgentType: 1, Confirmed: true}, true)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, domain.User{Name: "frank", AgentType: 3}, false)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, domain.User{Name: "gus", AgentType: 1}, true)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, domain.User{Name: "hana", AgentType: 1, Confirmed: true}, false)
	require.NoError(t, err)

	t.Run("plus shorthand selects admins and confirmed", func(t *testing.T) {
		total, page, err := svc.ListUsers(ctx, 0, AllRows, "+")
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Equal(t, "erin", page[0].Name)
		require.Equal(t, "gus", page[1].Name)
		require.Equal(t, "hana", page[2].Name)
	})

	t.Run("admin keyword", func(t *testing.T) {
		total, page, err := svc.ListUsers(ctx, 0, AllRows, "admin")
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Equal(t, "erin", page[0].Name)
		require.Equal(t, "gus", page[1].Name)
	})

	t.Run("confirmed keyword", func(t *testing.T) {
		total, page, err := svc.ListUsers(ctx, 0, AllRows, "confirmed")
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Equal(t, "erin", page[0].Name)
		require.Equal(t, "hana", page[1].Name)
	})

	t.Run("exact agent type number", func(t *testing.T) {
		total, page, err := svc.ListUsers(ctx, 0, AllRows, "3")
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "frank", page[0].Name)
	})

	t.Run("name substring", func(t *testing.T) {
		total, page, err := svc.ListUsers(ctx, 0, AllRows, "ran")
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "frank", page[0].Name)
	})
}

func TestConfirmDispatchesNotification(t *testing.T) {
	t.Parallel()

	var delivered atomic.Int32
	var lastBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		lastBody.Store(string(buf))
		delivered.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	st := newTestStore(t)
	notifier := &Notifier{URL: srv.URL, Timeout: 2 * time.Second}
	svc := &UsersService{Store: st, Notifier: notifier}
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.User{Name: "grace", AgentType: 2}, false)
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(ctx, created.ID))
	notifier.Wait()
	require.Equal(t, int32(1), delivered.Load())
	require.JSONEq(t, `{"name":"grace","agentType":{"code":2}}`, lastBody.Load().(string))

	got, err := st.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, got.Confirmed)

	// Second confirm is a no-op and does not re-notify.
	require.NoError(t, svc.Confirm(ctx, created.ID))
	notifier.Wait()
	require.Equal(t, int32(1), delivered.Load())
}

func TestConfirmSucceedsWhenWebhookIsDown(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	notifier := &Notifier{
		URL:     "http://127.0.0.1:1", // nothing listens here
		Timeout: 500 * time.Millisecond,
	}
	svc := &UsersService{Store: st, Notifier: notifier}
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.User{Name: "henry"}, false)
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(ctx, created.ID))
	notifier.Wait()

	got, err := st.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, got.Confirmed)
}

func TestConfirmUnknownUser(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &UsersService{Store: st}

	require.ErrorIs(t, svc.Confirm(context.Background(), "missing"), ErrNotFound)
}
