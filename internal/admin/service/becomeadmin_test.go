package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/stretchr/testify/require"
)

func TestClaimIsIdempotent(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &BecomeAdminService{Store: st}
	ctx := context.Background()

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: "user-1", Name: "one"}))
	require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: "user-2", Name: "two"}))

	granted, err := svc.Claim(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, granted)

	// The winner asking again is still refused: the role is claimed.
	granted, err = svc.Claim(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, granted)

	granted, err = svc.Claim(ctx, "user-2")
	require.NoError(t, err)
	require.False(t, granted)

	members, err := st.RoleBindings().Members(ctx, domain.AdminRole)
	require.NoError(t, err)
	require.Equal(t, []string{"user-1"}, members)
}

func TestClaimUnknownAccount(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &BecomeAdminService{Store: st}
	ctx := context.Background()

	// A token subject without a registered account cannot claim the role.
	granted, err := svc.Claim(ctx, "no-such-account")
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, granted)

	// The role is still up for grabs afterwards.
	require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: "user-1", Name: "one"}))
	granted, err = svc.Claim(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, granted)
}

func TestClaimRaceAdmitsExactlyOneWinner(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &BecomeAdminService{Store: st}
	ctx := context.Background()

	const callers = 16

	for i := 0; i < callers; i++ {
		require.NoError(t, st.Users().CreateUser(ctx, domain.User{
			ID:   fmt.Sprintf("racer-%d", i),
			Name: fmt.Sprintf("racer-%d", i),
		}))
	}

	results := make([]bool, callers)
	errs := make([]error, callers)

	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = svc.Claim(ctx, fmt.Sprintf("racer-%d", i))
		}(i)
	}
	start.Done()
	done.Wait()

	winners := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		if results[i] {
			winners++
		}
	}
	require.Equal(t, 1, winners)

	count, err := st.RoleBindings().CountMembers(ctx, domain.AdminRole)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
