package service

import (
	"context"

	"github.com/keystead/identity-admin/internal/admin/store"
)

// ScopeChecker resolves scope-name references against the union of the API
// scope and identity resource namespaces. A name is valid when it exists in
// either one.
type ScopeChecker struct {
	Store store.Store
}

// FindInvalidScopes returns the candidate names that exist in neither
// namespace, in input order with duplicates removed. Absence is reported,
// never treated as an error. An empty input yields an empty result.
func (c *ScopeChecker) FindInvalidScopes(
	ctx context.Context,
	names []string,
) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	apiScopes, err := c.Store.Scopes().ExistingScopeNames(ctx, names)
	if err != nil {
		return nil, err
	}
	identityResources, err := c.Store.IdentityResources().ExistingIdentityResourceNames(ctx, names)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(apiScopes)+len(identityResources))
	for _, n := range apiScopes {
		known[n] = struct{}{}
	}
	for _, n := range identityResources {
		known[n] = struct{}{}
	}

	var invalid []string
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := known[n]; !ok {
			invalid = append(invalid, n)
		}
	}
	return invalid, nil
}
