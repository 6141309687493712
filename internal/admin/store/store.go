package store

import (
	"context"
	"errors"

	"github.com/keystead/identity-admin/internal/admin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories per entity to keep concerns
// tidy and testable.
type Store interface {
	Clients() Clients
	Resources() Resources
	Scopes() Scopes
	IdentityResources() IdentityResources
	Users() Users
	RoleBindings() RoleBindings

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Every registry
	// mutation goes through this so validation reads and writes land
	// atomically.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByID returns a client by its integer key.
	GetClientByID(ctx context.Context, id int64) (domain.Client, error)

	// ListClients returns all clients ordered by client name ascending.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// ClientIDTaken reports whether another client (id != excludeID) already
	// uses the given external client id. Pass excludeID 0 for creates.
	ClientIDTaken(ctx context.Context, clientID string, excludeID int64) (bool, error)

	// ClientNameTaken reports whether another client already uses the name.
	ClientNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	// CreateClient inserts a new client and returns its assigned key.
	CreateClient(ctx context.Context, c domain.Client) (int64, error)

	// UpdateClient replaces all mutable columns of the client row.
	UpdateClient(ctx context.Context, c domain.Client) error

	// DeleteClient removes a client by key.
	DeleteClient(ctx context.Context, id int64) error
}

type Resources interface {
	GetResourceByID(ctx context.Context, id int64) (domain.Resource, error)

	// ListResources returns all API resources ordered by name ascending.
	ListResources(ctx context.Context) ([]domain.Resource, error)

	ResourceNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	CreateResource(ctx context.Context, r domain.Resource) (int64, error)

	UpdateResource(ctx context.Context, r domain.Resource) error

	DeleteResource(ctx context.Context, id int64) error
}

type Scopes interface {
	GetScopeByID(ctx context.Context, id int64) (domain.Scope, error)

	// ListScopes returns all API scopes ordered by name ascending.
	ListScopes(ctx context.Context) ([]domain.Scope, error)

	ScopeNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	// ExistingScopeNames returns the subset of names that exist as API
	// scopes. Used by scope reference validation.
	ExistingScopeNames(ctx context.Context, names []string) ([]string, error)

	CreateScope(ctx context.Context, s domain.Scope) (int64, error)

	UpdateScope(ctx context.Context, s domain.Scope) error

	DeleteScope(ctx context.Context, id int64) error
}

type IdentityResources interface {
	GetIdentityResourceByID(ctx context.Context, id int64) (domain.IdentityResource, error)

	ListIdentityResources(ctx context.Context) ([]domain.IdentityResource, error)

	IdentityResourceNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	// ExistingIdentityResourceNames returns the subset of names that exist
	// as identity resources. Unioned with ExistingScopeNames by the scope
	// reference validator.
	ExistingIdentityResourceNames(ctx context.Context, names []string) ([]string, error)

	CreateIdentityResource(ctx context.Context, ir domain.IdentityResource) (int64, error)

	UpdateIdentityResource(ctx context.Context, ir domain.IdentityResource) error

	DeleteIdentityResource(ctx context.Context, id int64) error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// ListUsers returns all users ordered by name ascending.
	ListUsers(ctx context.Context) ([]domain.User, error)

	UserNameTaken(ctx context.Context, name string, excludeID string) (bool, error)

	// CreateUser inserts a new user (id is provided by the caller via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to role_bindings (per schema).
	DeleteUser(ctx context.Context, id string) error

	// SetConfirmed flips the confirmed flag and bumps updated_at.
	SetConfirmed(ctx context.Context, id string, confirmed bool) error
}

type RoleBindings interface {
	// Members returns the user ids bound to the role.
	Members(ctx context.Context, role string) ([]string, error)

	// HasMember reports whether the user is bound to the role.
	HasMember(ctx context.Context, role, userID string) (bool, error)

	// CountMembers returns the number of users bound to the role.
	CountMembers(ctx context.Context, role string) (int, error)

	// Grant binds the user to the role. No-op if already bound.
	Grant(ctx context.Context, role, userID string) error

	// Revoke removes the binding. No-op if not bound.
	Revoke(ctx context.Context, role, userID string) error

	// ClaimIfEmpty binds the user to the role only if the role currently has
	// no members at all, as a single conditional insert. Returns true when
	// the claim succeeded. This is the check-then-act of the admin bootstrap
	// collapsed into one atomic statement.
	ClaimIfEmpty(ctx context.Context, role, userID string) (bool, error)
}
