package service

import (
	"context"
	"errors"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/pkg/slogx"
)

// BecomeAdminService grants the administrator role to the first caller who
// asks for it, once per deployment.
type BecomeAdminService struct {
	Store store.Store
}

// Claim attempts the one-time grant for userID. It returns true when this
// call transitioned the role from no members to one member, and false when
// anyone (including the caller) already held it. The caller must be a
// registered account; an unknown id yields ErrNotFound. The membership check
// and the grant run as one conditional insert inside a write transaction, so
// two concurrent first callers cannot both win.
func (s *BecomeAdminService) Claim(ctx context.Context, userID string) (bool, error) {
	l := slogx.FromContext(ctx)

	var granted bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		var err error
		granted, err = tx.RoleBindings().ClaimIfEmpty(ctx, domain.AdminRole, userID)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		l.Info("admin role claim by unknown account", "user_id", userID)
		return false, err
	}
	if err != nil {
		l.Error("failed to claim admin role", "error", err, "user_id", userID)
		return false, err
	}

	if granted {
		l.Info("admin role claimed", "user_id", userID)
	} else {
		l.Info("admin role already claimed", "user_id", userID)
	}
	return granted, nil
}
