package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/filter"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/pkg/idx"
	"github.com/keystead/identity-admin/pkg/slogx"
)

// UserAccount is a user joined with its administrator role membership.
type UserAccount struct {
	domain.User
	IsAdmin bool
}

// UsersService manages local user accounts and their administrator role
// binding. The identity provider owns credentials; this service only
// touches the administrative attributes.
type UsersService struct {
	Store    store.Store
	Notifier *Notifier
}

// ListUsers filters the name-ordered user set. Besides free-text matching
// on name, the filter accepts an exact numeric agent type and the
// "confirmed" and "admin" boolean keywords.
func (s *UsersService) ListUsers(
	ctx context.Context,
	from, amount int,
	rawFilter string,
) (int, []UserAccount, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return 0, nil, err
	}
	admins, err := s.adminSet(ctx)
	if err != nil {
		return 0, nil, err
	}

	accounts := make([]UserAccount, 0, len(users))
	for _, u := range users {
		_, isAdmin := admins[u.ID]
		accounts = append(accounts, UserAccount{User: u, IsAdmin: isAdmin})
	}

	if rawFilter != "" {
		accounts = filterSlice(accounts, func(a UserAccount) bool {
			return filter.Confirmed(rawFilter) && a.Confirmed ||
				filter.Admin(rawFilter) && a.IsAdmin ||
				rawFilter == strconv.Itoa(a.AgentType) ||
				filter.MatchesAny(rawFilter, a.Name)
		})
	}
	return len(accounts), paginate(accounts, from, amount), nil
}

// CreateUser inserts a new account. A missing id is assigned a fresh ULID.
// The admin binding is reconciled with the candidate's IsAdmin flag inside
// the same transaction.
func (s *UsersService) CreateUser(
	ctx context.Context,
	u domain.User,
	isAdmin bool,
) (UserAccount, error) {
	l := slogx.FromContext(ctx)

	if u.ID == "" {
		u.ID = idx.New().String()
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.validateUser(ctx, tx, u); err != nil {
			return err
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return reconcileAdminBinding(ctx, tx, u.ID, isAdmin)
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			l.Error("failed to create user", "error", err, "name", u.Name)
		}
		return UserAccount{}, err
	}

	l.Info("user created", "id", u.ID, "name", u.Name, "is_admin", isAdmin)
	return UserAccount{User: u, IsAdmin: isAdmin}, nil
}

// UpdateUser replaces the account's administrative attributes and
// reconciles the admin binding with the candidate's IsAdmin flag.
func (s *UsersService) UpdateUser(
	ctx context.Context,
	u domain.User,
	isAdmin bool,
) (UserAccount, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, u.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.validateUser(ctx, tx, u); err != nil {
			return err
		}
		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		return reconcileAdminBinding(ctx, tx, u.ID, isAdmin)
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, ErrNotFound) {
			l.Error("failed to update user", "error", err, "id", u.ID)
		}
		return UserAccount{}, err
	}

	l.Info("user updated", "id", u.ID, "name", u.Name, "is_admin", isAdmin)
	return UserAccount{User: u, IsAdmin: isAdmin}, nil
}

// DeleteUser removes the account. The admin binding cascades with the row.
func (s *UsersService) DeleteUser(ctx context.Context, id string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Users().DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		l.Error("failed to delete user", "error", err, "id", id)
		return err
	}

	l.Info("user deleted", "id", id)
	return nil
}

// Confirm flips the account's confirmed flag and dispatches the best-effort
// confirmation webhook after the write commits. Confirming an already
// confirmed account is a no-op and does not re-notify.
func (s *UsersService) Confirm(ctx context.Context, id string) error {
	l := slogx.FromContext(ctx)

	var u domain.User
	var alreadyConfirmed bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetUserByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if u.Confirmed {
			alreadyConfirmed = true
			return nil
		}
		return tx.Users().SetConfirmed(ctx, id, true)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.Error("failed to confirm user", "error", err, "id", id)
		}
		return err
	}
	if alreadyConfirmed {
		return nil
	}

	l.Info("user confirmed", "id", id, "name", u.Name)
	if s.Notifier != nil {
		s.Notifier.Dispatch(ctx, u.Name, u.AgentType)
	}
	return nil
}

func (s *UsersService) validateUser(ctx context.Context, tx store.Tx, u domain.User) error {
	verr := &ValidationError{}

	if containsSpace(u.Name) {
		verr.add(msgNameHasSpaces)
	}

	taken, err := tx.Users().UserNameTaken(ctx, u.Name, u.ID)
	if err != nil {
		return err
	}
	if taken {
		verr.add(msgUserNameExists)
	}

	return verr.errOrNil()
}

func (s *UsersService) adminSet(ctx context.Context) (map[string]struct{}, error) {
	members, err := s.Store.RoleBindings().Members(ctx, domain.AdminRole)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(members))
	for _, id := range members {
		set[id] = struct{}{}
	}
	return set, nil
}

// reconcileAdminBinding makes the binding match the desired flag. Grant and
// Revoke are both idempotent so no pre-read is needed.
func reconcileAdminBinding(ctx context.Context, tx store.Tx, userID string, isAdmin bool) error {
	if isAdmin {
		return tx.RoleBindings().Grant(ctx, domain.AdminRole, userID)
	}
	return tx.RoleBindings().Revoke(ctx, domain.AdminRole, userID)
}
