package domain

import "time"

// AdminRole is the well-known role granting access to the admin registry
// endpoints. There is exactly one such role per deployment.
const AdminRole = "IdentityAdmin"

// User is a local account in the identity provider's user store. The
// identity provider owns credentials; the registry only manages the
// administrative attributes below.
type User struct {
	ID        string
	Name      string
	AgentType int
	Confirmed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
