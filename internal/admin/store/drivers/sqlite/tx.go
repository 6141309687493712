package sqlite

import (
	"context"
	"database/sql"

	"github.com/keystead/identity-admin/internal/admin/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open; caller commits/rolls back

// Ping is a no-op inside a transaction; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts

func (t *txStore) Clients() store.Clients     { return &clientsRepo{db: t.tx} }
func (t *txStore) Resources() store.Resources { return &resourcesRepo{db: t.tx} }
func (t *txStore) Scopes() store.Scopes       { return &scopesRepo{db: t.tx} }
func (t *txStore) IdentityResources() store.IdentityResources {
	return &identityResourcesRepo{db: t.tx}
}
func (t *txStore) Users() store.Users               { return &usersRepo{db: t.tx} }
func (t *txStore) RoleBindings() store.RoleBindings { return &roleBindingsRepo{db: t.tx} }
