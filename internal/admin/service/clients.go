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

// ClientsService manages registered OAuth2/OIDC clients.
type ClientsService struct {
	Store store.Store
}

// ListClients applies the filter over the name-ordered client set and slices
// out a page. Returns the pre-pagination matching count alongside the page.
func (s *ClientsService) ListClients(
	ctx context.Context,
	from, amount int,
	rawFilter string,
) (int, []domain.Client, error) {
	clients, err := s.Store.Clients().ListClients(ctx)
	if err != nil {
		return 0, nil, err
	}
	if rawFilter != "" {
		clients = filterSlice(clients, func(c domain.Client) bool {
			return filter.Enabled(rawFilter) && c.Enabled ||
				filter.Disabled(rawFilter) && !c.Enabled ||
				filter.MatchesAny(rawFilter,
					c.ClientID, c.ClientName, c.Description,
					strings.Join(c.Scopes, " "), strings.Join(c.RedirectURIs, " "))
		})
	}
	return len(clients), paginate(clients, from, amount), nil
}

// CreateClient validates the candidate, applies derived fields and inserts
// it. All validation reads and the insert share one transaction.
func (s *ClientsService) CreateClient(
	ctx context.Context,
	c domain.Client,
) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.validateClient(ctx, tx, c, 0); err != nil {
			return err
		}
		applyClientDerivedFields(&c)
		id, err := tx.Clients().CreateClient(ctx, c)
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			l.Error("failed to create client", "error", err, "client_id", c.ClientID)
		}
		return domain.Client{}, err
	}

	l.Info("client created", "id", c.ID, "client_id", c.ClientID, "name", c.ClientName)
	return c, nil
}

// UpdateClient validates the candidate against every other client and
// replaces the row, recomputing derived fields wholesale.
func (s *ClientsService) UpdateClient(
	ctx context.Context,
	c domain.Client,
) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().GetClientByID(ctx, c.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.validateClient(ctx, tx, c, c.ID); err != nil {
			return err
		}
		applyClientDerivedFields(&c)
		return tx.Clients().UpdateClient(ctx, c)
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, ErrNotFound) {
			l.Error("failed to update client", "error", err, "id", c.ID)
		}
		return domain.Client{}, err
	}

	l.Info("client updated", "id", c.ID, "client_id", c.ClientID)
	return c, nil
}

// DeleteClient removes a client by key. It does not check whether anything
// still references the client.
func (s *ClientsService) DeleteClient(ctx context.Context, id int64) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Clients().DeleteClient(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		l.Error("failed to delete client", "error", err, "id", id)
		return err
	}

	l.Info("client deleted", "id", id)
	return nil
}

// validateClient collects every failed rule. The rules are independent and
// do not short-circuit each other.
func (s *ClientsService) validateClient(
	ctx context.Context,
	tx store.Tx,
	c domain.Client,
	excludeID int64,
) error {
	verr := &ValidationError{}

	if containsSpace(c.ClientID) {
		verr.add(msgClientIDHasSpaces)
	}
	if containsSpace(c.ClientName) {
		verr.add(msgNameHasSpaces)
	}

	idTaken, err := tx.Clients().ClientIDTaken(ctx, c.ClientID, excludeID)
	if err != nil {
		return err
	}
	if idTaken {
		verr.add(msgClientIDExists)
	}

	nameTaken, err := tx.Clients().ClientNameTaken(ctx, c.ClientName, excludeID)
	if err != nil {
		return err
	}
	if nameTaken {
		verr.add(msgClientNameExists)
	}

	checker := &ScopeChecker{Store: tx}
	invalid, err := checker.FindInvalidScopes(ctx, c.Scopes)
	if err != nil {
		return err
	}
	if len(invalid) > 0 {
		verr.add(invalidScopesMessage(invalid))
	}

	return verr.errOrNil()
}

// applyClientDerivedFields recomputes the derived and fixed protocol fields.
// They are replaced wholesale on every write, never merged with caller input.
func applyClientDerivedFields(c *domain.Client) {
	if len(c.RedirectURIs) > 0 {
		c.CorsOrigins = []string{c.RedirectURIs[0]}
		c.PostLogoutRedirectURIs = []string{c.RedirectURIs[0]}
	} else {
		c.CorsOrigins = nil
		c.PostLogoutRedirectURIs = nil
	}
	c.GrantTypes = []string{domain.GrantTypeAuthorizationCode}
	c.AllowOfflineAccess = true
	c.RequireClientSecret = false
	c.IncludeJWTID = true
}
