package service

import (
	"context"
	"errors"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/filter"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/pkg/slogx"
)

// ScopesService manages API scope definitions. Scopes have no outgoing
// references, so writes only validate the name itself.
type ScopesService struct {
	Store store.Store
}

func (s *ScopesService) ListScopes(
	ctx context.Context,
	from, amount int,
	rawFilter string,
) (int, []domain.Scope, error) {
	scopes, err := s.Store.Scopes().ListScopes(ctx)
	if err != nil {
		return 0, nil, err
	}
	if rawFilter != "" {
		scopes = filterSlice(scopes, func(sc domain.Scope) bool {
			return filter.Enabled(rawFilter) && sc.Enabled ||
				filter.Disabled(rawFilter) && !sc.Enabled ||
				filter.MatchesAny(rawFilter, sc.Name, sc.DisplayName, sc.Description)
		})
	}
	return len(scopes), paginate(scopes, from, amount), nil
}

func (s *ScopesService) CreateScope(
	ctx context.Context,
	sc domain.Scope,
) (domain.Scope, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.validateScope(ctx, tx, sc, 0); err != nil {
			return err
		}
		id, err := tx.Scopes().CreateScope(ctx, sc)
		if err != nil {
			return err
		}
		sc.ID = id
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			l.Error("failed to create scope", "error", err, "name", sc.Name)
		}
		return domain.Scope{}, err
	}

	l.Info("scope created", "id", sc.ID, "name", sc.Name)
	return sc, nil
}

func (s *ScopesService) UpdateScope(
	ctx context.Context,
	sc domain.Scope,
) (domain.Scope, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Scopes().GetScopeByID(ctx, sc.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.validateScope(ctx, tx, sc, sc.ID); err != nil {
			return err
		}
		return tx.Scopes().UpdateScope(ctx, sc)
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, ErrNotFound) {
			l.Error("failed to update scope", "error", err, "id", sc.ID)
		}
		return domain.Scope{}, err
	}

	l.Info("scope updated", "id", sc.ID, "name", sc.Name)
	return sc, nil
}

// DeleteScope removes a scope by key. Clients and resources that still
// reference the name keep a dangling reference; deletion does not block on
// or cascade to them.
func (s *ScopesService) DeleteScope(ctx context.Context, id int64) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Scopes().DeleteScope(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		l.Error("failed to delete scope", "error", err, "id", id)
		return err
	}

	l.Info("scope deleted", "id", id)
	return nil
}

func (s *ScopesService) validateScope(
	ctx context.Context,
	tx store.Tx,
	sc domain.Scope,
	excludeID int64,
) error {
	verr := &ValidationError{}

	if containsSpace(sc.Name) {
		verr.add(msgNameHasSpaces)
	}

	taken, err := tx.Scopes().ScopeNameTaken(ctx, sc.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.add(msgScopeNameExists)
	}

	return verr.errOrNil()
}
