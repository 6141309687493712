package domain

import "time"

// Resource is a protected API resource. Every entry in Scopes must resolve
// to an existing Scope or IdentityResource name at write time.
type Resource struct {
	ID          int64
	Name        string
	DisplayName string
	Description string
	Enabled     bool
	Scopes      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
