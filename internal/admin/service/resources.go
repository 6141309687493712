package service

import (
	"context"
	"errors"
	"strings"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/filter"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/pkg/slogx"
)

// ResourcesService manages protected API resources.
type ResourcesService struct {
	Store store.Store
}

func (s *ResourcesService) ListResources(
	ctx context.Context,
	from, amount int,
	rawFilter string,
) (int, []domain.Resource, error) {
	resources, err := s.Store.Resources().ListResources(ctx)
	if err != nil {
		return 0, nil, err
	}
	if rawFilter != "" {
		resources = filterSlice(resources, func(r domain.Resource) bool {
			return filter.Enabled(rawFilter) && r.Enabled ||
				filter.Disabled(rawFilter) && !r.Enabled ||
				filter.MatchesAny(rawFilter,
					r.Name, r.DisplayName, r.Description, strings.Join(r.Scopes, " "))
		})
	}
	return len(resources), paginate(resources, from, amount), nil
}

func (s *ResourcesService) CreateResource(
	ctx context.Context,
	r domain.Resource,
) (domain.Resource, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.validateResource(ctx, tx, r, 0); err != nil {
			return err
		}
		id, err := tx.Resources().CreateResource(ctx, r)
		if err != nil {
			return err
		}
		r.ID = id
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			l.Error("failed to create resource", "error", err, "name", r.Name)
		}
		return domain.Resource{}, err
	}

	l.Info("resource created", "id", r.ID, "name", r.Name)
	return r, nil
}

func (s *ResourcesService) UpdateResource(
	ctx context.Context,
	r domain.Resource,
) (domain.Resource, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Resources().GetResourceByID(ctx, r.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.validateResource(ctx, tx, r, r.ID); err != nil {
			return err
		}
		return tx.Resources().UpdateResource(ctx, r)
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, ErrNotFound) {
			l.Error("failed to update resource", "error", err, "id", r.ID)
		}
		return domain.Resource{}, err
	}

	l.Info("resource updated", "id", r.ID, "name", r.Name)
	return r, nil
}

// DeleteResource removes a resource by key. References from clients to the
// resource's scopes are not checked.
func (s *ResourcesService) DeleteResource(ctx context.Context, id int64) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Resources().DeleteResource(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		l.Error("failed to delete resource", "error", err, "id", id)
		return err
	}

	l.Info("resource deleted", "id", id)
	return nil
}

func (s *ResourcesService) validateResource(
	ctx context.Context,
	tx store.Tx,
	r domain.Resource,
	excludeID int64,
) error {
	verr := &ValidationError{}

	if containsSpace(r.Name) {
		verr.add(msgNameHasSpaces)
	}

	taken, err := tx.Resources().ResourceNameTaken(ctx, r.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.add(msgResourceNameExists)
	}

	checker := &ScopeChecker{Store: tx}
	invalid, err := checker.FindInvalidScopes(ctx, r.Scopes)
	if err != nil {
		return err
	}
	if len(invalid) > 0 {
		verr.add(invalidScopesMessage(invalid))
	}

	return verr.errOrNil()
}
