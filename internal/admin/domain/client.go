package domain

import "time"

// GrantTypeAuthorizationCode is the only grant type registry-managed clients
// may use. It is applied on every write, not taken from the caller.
const GrantTypeAuthorizationCode = "authorization_code"

// Client is a registered OAuth2/OIDC relying party. ClientID and ClientName
// are each globally unique. The CORS origin and post-logout redirect sets
// are derived from the first redirect URI on every write, and the protocol
// attributes below the derived fields are constants of the registry.
type Client struct {
	ID           int64
	ClientID     string
	ClientName   string
	Description  string
	Enabled      bool
	RedirectURIs []string
	Scopes       []string

	// Derived on every create/update: both equal {RedirectURIs[0]}.
	CorsOrigins            []string
	PostLogoutRedirectURIs []string
	GrantTypes             []string

	// Fixed protocol attributes.
	AllowOfflineAccess  bool
	RequireClientSecret bool
	IncludeJWTID        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
