package domain

import "time"

// Scope is a named permission grant (an API scope). Scopes have no outgoing
// references; clients and resources reference them by name.
type Scope struct {
	ID          int64
	Name        string
	DisplayName string
	Description string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdentityResource is the identity-side counterpart of Scope. It shares the
// scope reference namespace: a scope reference is valid when it names either
// a Scope or an IdentityResource.
type IdentityResource struct {
	ID          int64
	Name        string
	DisplayName string
	Description string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
