package service

import (
	"context"
	"errors"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/filter"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/pkg/slogx"
)

// IdentityResourcesService manages identity resources, the identity-side
// half of the scope namespace.
type IdentityResourcesService struct {
	Store store.Store
}

func (s *IdentityResourcesService) ListIdentityResources(
	ctx context.Context,
	from, amount int,
	rawFilter string,
) (int, []domain.IdentityResource, error) {
	resources, err := s.Store.IdentityResources().ListIdentityResources(ctx)
	if err != nil {
		return 0, nil, err
	}
	if rawFilter != "" {
		resources = filterSlice(resources, func(ir domain.IdentityResource) bool {
			return filter.Enabled(rawFilter) && ir.Enabled ||
				filter.Disabled(rawFilter) && !ir.Enabled ||
				filter.MatchesAny(rawFilter, ir.Name, ir.DisplayName, ir.Description)
		})
	}
	return len(resources), paginate(resources, from, amount), nil
}

func (s *IdentityResourcesService) CreateIdentityResource(
	ctx context.Context,
	ir domain.IdentityResource,
) (domain.IdentityResource, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.validateIdentityResource(ctx, tx, ir, 0); err != nil {
			return err
		}
		id, err := tx.IdentityResources().CreateIdentityResource(ctx, ir)
		if err != nil {
			return err
		}
		ir.ID = id
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			l.Error("failed to create identity resource", "error", err, "name", ir.Name)
		}
		return domain.IdentityResource{}, err
	}

	l.Info("identity resource created", "id", ir.ID, "name", ir.Name)
	return ir, nil
}

func (s *IdentityResourcesService) UpdateIdentityResource(
	ctx context.Context,
	ir domain.IdentityResource,
) (domain.IdentityResource, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.IdentityResources().GetIdentityResourceByID(ctx, ir.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.validateIdentityResource(ctx, tx, ir, ir.ID); err != nil {
			return err
		}
		return tx.IdentityResources().UpdateIdentityResource(ctx, ir)
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, ErrNotFound) {
			l.Error("failed to update identity resource", "error", err, "id", ir.ID)
		}
		return domain.IdentityResource{}, err
	}

	l.Info("identity resource updated", "id", ir.ID, "name", ir.Name)
	return ir, nil
}

func (s *IdentityResourcesService) DeleteIdentityResource(ctx context.Context, id int64) error {
	l := slogx.FromContext(ctx)

	err := s.Store.IdentityResources().DeleteIdentityResource(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		l.Error("failed to delete identity resource", "error", err, "id", id)
		return err
	}

	l.Info("identity resource deleted", "id", id)
	return nil
}

func (s *IdentityResourcesService) validateIdentityResource(
	ctx context.Context,
	tx store.Tx,
	ir domain.IdentityResource,
	excludeID int64,
) error {
	verr := &ValidationError{}

	if containsSpace(ir.Name) {
		verr.add(msgNameHasSpaces)
	}

	taken, err := tx.IdentityResources().IdentityResourceNameTaken(ctx, ir.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.add(msgScopeNameExists)
	}

	return verr.errOrNil()
}
