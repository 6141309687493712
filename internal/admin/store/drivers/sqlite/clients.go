package sqlite

import (
	"context"
	"database/sql"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/store"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, client_id, client_name, description, enabled,
	redirect_uris, scopes, cors_origins, post_logout_redirect_uris, grant_types,
	allow_offline_access, require_client_secret, include_jwt_id,
	created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (domain.Client, error) {
	var c domain.Client
	var redirectURIs, scopes, corsOrigins, postLogout, grantTypes string
	err := row.Scan(
		&c.ID, &c.ClientID, &c.ClientName, &c.Description, &c.Enabled,
		&redirectURIs, &scopes, &corsOrigins, &postLogout, &grantTypes,
		&c.AllowOfflineAccess, &c.RequireClientSecret, &c.IncludeJWTID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, err
	}
	c.RedirectURIs = splitList(redirectURIs)
	c.Scopes = splitList(scopes)
	c.CorsOrigins = splitList(corsOrigins)
	c.PostLogoutRedirectURIs = splitList(postLogout)
	c.GrantTypes = splitList(grantTypes)
	return c, nil
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id int64) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY client_name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) ClientIDTaken(
	ctx context.Context,
	clientID string,
	excludeID int64,
) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE client_id = ? AND id != ?`,
		clientID, excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r *clientsRepo) ClientNameTaken(
	ctx context.Context,
	name string,
	excludeID int64,
) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE client_name = ? AND id != ?`,
		name, excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) (int64, error) {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (
			client_id, client_name, description, enabled,
			redirect_uris, scopes, cors_origins, post_logout_redirect_uris, grant_types,
			allow_offline_access, require_client_secret, include_jwt_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ClientID, c.ClientName, c.Description, c.Enabled,
		joinList(c.RedirectURIs), joinList(c.Scopes),
		joinList(c.CorsOrigins), joinList(c.PostLogoutRedirectURIs), joinList(c.GrantTypes),
		c.AllowOfflineAccess, c.RequireClientSecret, c.IncludeJWTID,
		ts, ts,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET
			client_id = ?, client_name = ?, description = ?, enabled = ?,
			redirect_uris = ?, scopes = ?, cors_origins = ?,
			post_logout_redirect_uris = ?, grant_types = ?,
			allow_offline_access = ?, require_client_secret = ?, include_jwt_id = ?,
			updated_at = ?
		WHERE id = ?`,
		c.ClientID, c.ClientName, c.Description, c.Enabled,
		joinList(c.RedirectURIs), joinList(c.Scopes), joinList(c.CorsOrigins),
		joinList(c.PostLogoutRedirectURIs), joinList(c.GrantTypes),
		c.AllowOfflineAccess, c.RequireClientSecret, c.IncludeJWTID,
		now(), c.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// requireRowAffected maps "statement touched nothing" onto ErrNotFound so
// update/delete callers can report missing targets.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
