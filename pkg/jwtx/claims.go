package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims this service cares about. The identity
// provider mints tokens carrying the caller's roles; the admin API only reads
// them. Additive changes only, to stay compatible with whatever the provider
// adds later.
type Claims struct {
	jwt.RegisteredClaims

	// Roles the authenticated user holds, e.g. "IdentityAdmin".
	Roles []string `json:"role,omitempty"`

	// Permission scopes, if the provider issues them.
	Scopes []string `json:"scope,omitempty"`

	// Username for the authenticated user.
	Username string `json:"username,omitempty"`
}

// HasRole reports whether the token carries the given role claim.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ValidateIssuer checks the issuer against the expected value. Empty means
// "don't care".
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it becomes valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
