package sqlite

import (
	"context"

	"github.com/keystead/identity-admin/internal/admin/domain"
)

type scopesRepo struct {
	db dbtx
}

const scopeColumns = `id, name, display_name, description, enabled,
	created_at, updated_at`

func scanScope(row interface{ Scan(...any) error }) (domain.Scope, error) {
	var s domain.Scope
	err := row.Scan(
		&s.ID, &s.Name, &s.DisplayName, &s.Description, &s.Enabled,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *scopesRepo) GetScopeByID(ctx context.Context, id int64) (domain.Scope, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scopeColumns+` FROM api_scopes WHERE id = ?`, id)
	s, err := scanScope(row)
	if err != nil {
		return domain.Scope{}, mapNotFound(err)
	}
	return s, nil
}

func (r *scopesRepo) ListScopes(ctx context.Context) ([]domain.Scope, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scopeColumns+` FROM api_scopes ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scopes []domain.Scope
	for rows.Next() {
		s, err := scanScope(rows)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, s)
	}
	return scopes, rows.Err()
}

func (r *scopesRepo) ScopeNameTaken(
	ctx context.Context,
	name string,
	excludeID int64,
) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM api_scopes WHERE name = ? AND id != ?`,
		name, excludeID,
	).Scan(&n)
	return n > 0, err
}

// ExistingScopeNames returns the subset of names present in the scope table.
func (r *scopesRepo) ExistingScopeNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM api_scopes WHERE name IN (`+placeholders(len(names))+`)`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var found []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		found = append(found, name)
	}
	return found, rows.Err()
}

func (r *scopesRepo) CreateScope(ctx context.Context, s domain.Scope) (int64, error) {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO api_scopes (
			name, display_name, description, enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		s.Name, s.DisplayName, s.Description, s.Enabled, ts, ts,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *scopesRepo) UpdateScope(ctx context.Context, s domain.Scope) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE api_scopes SET
			name = ?, display_name = ?, description = ?, enabled = ?, updated_at = ?
		WHERE id = ?`,
		s.Name, s.DisplayName, s.Description, s.Enabled, now(), s.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *scopesRepo) DeleteScope(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM api_scopes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
