// Package adminsdk provides the wire types and a typed HTTP client for the
// identity admin registry. The service's own handlers use the same types,
// so SDK consumers and the server cannot drift apart.
package adminsdk

// ListResponse wraps every list endpoint's body. Amount is the number of
// rows matching the filter before pagination, not the page length.
type ListResponse[T any] struct {
	Amount  int `json:"amount"`
	Payload []T `json:"payload"`
}

// Client is the wire form of a registered OAuth2/OIDC client. The derived
// and protocol fields are server-owned: values sent by the caller are
// ignored and recomputed on every write.
type Client struct {
	ID           int64    `json:"id"`
	ClientID     string   `json:"clientId"`
	ClientName   string   `json:"clientName"`
	Description  string   `json:"description"`
	Enabled      bool     `json:"enabled"`
	RedirectURIs []string `json:"redirectUris"`
	Scopes       []string `json:"scopes"`

	CorsOrigins            []string `json:"corsOrigins"`
	PostLogoutRedirectURIs []string `json:"postLogoutRedirectUris"`
	GrantTypes             []string `json:"grantTypes"`
	AllowOfflineAccess     bool     `json:"allowOfflineAccess"`
	RequireClientSecret    bool     `json:"requireClientSecret"`
	IncludeJWTID           bool     `json:"includeJwtId"`
}

// Resource is the wire form of a protected API resource.
type Resource struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
	Scopes      []string `json:"scopes"`
}

// Scope is the wire form of an API scope.
type Scope struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// IdentityResource is the wire form of an identity resource. It is shaped
// like Scope; the two share the scope reference namespace.
type IdentityResource struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// User is the wire form of a local account.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AgentType int    `json:"agentType"`
	Confirmed bool   `json:"confirmed"`
	IsAdmin   bool   `json:"isAdmin"`
}

// AgentType is one entry of the account classification list.
type AgentType struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// BecomeAdminResponse reports the outcome of the one-time admin claim.
type BecomeAdminResponse struct {
	Granted bool `json:"granted"`
}

// HealthResponse is the body of the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks details the readiness of each critical dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Verifier string `json:"verifier"`
}
