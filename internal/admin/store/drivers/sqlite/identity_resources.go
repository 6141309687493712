package sqlite

import (
	"context"

	"github.com/keystead/identity-admin/internal/admin/domain"
)

type identityResourcesRepo struct {
	db dbtx
}

func scanIdentityResource(row interface{ Scan(...any) error }) (domain.IdentityResource, error) {
	var ir domain.IdentityResource
	err := row.Scan(
		&ir.ID, &ir.Name, &ir.DisplayName, &ir.Description, &ir.Enabled,
		&ir.CreatedAt, &ir.UpdatedAt,
	)
	return ir, err
}

func (r *identityResourcesRepo) GetIdentityResourceByID(
	ctx context.Context,
	id int64,
) (domain.IdentityResource, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scopeColumns+` FROM identity_resources WHERE id = ?`, id)
	ir, err := scanIdentityResource(row)
	if err != nil {
		return domain.IdentityResource{}, mapNotFound(err)
	}
	return ir, nil
}

func (r *identityResourcesRepo) ListIdentityResources(
	ctx context.Context,
) ([]domain.IdentityResource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scopeColumns+` FROM identity_resources ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var resources []domain.IdentityResource
	for rows.Next() {
		ir, err := scanIdentityResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, ir)
	}
	return resources, rows.Err()
}

func (r *identityResourcesRepo) IdentityResourceNameTaken(
	ctx context.Context,
	name string,
	excludeID int64,
) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM identity_resources WHERE name = ? AND id != ?`,
		name, excludeID,
	).Scan(&n)
	return n > 0, err
}

// ExistingIdentityResourceNames returns the subset of names present in the
// identity resource table.
func (r *identityResourcesRepo) ExistingIdentityResourceNames(
	ctx context.Context,
	names []string,
) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM identity_resources WHERE name IN (`+placeholders(len(names))+`)`,
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

func (r *identityResourcesRepo) CreateIdentityResource(
	ctx context.Context,
	ir domain.IdentityResource,
) (int64, error) {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO identity_resources (
			name, display_name, description, enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		ir.Name, ir.DisplayName, ir.Description, ir.Enabled, ts, ts,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *identityResourcesRepo) UpdateIdentityResource(
	ctx context.Context,
	ir domain.IdentityResource,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identity_resources SET
			name = ?, display_name = ?, description = ?, enabled = ?, updated_at = ?
		WHERE id = ?`,
		ir.Name, ir.DisplayName, ir.Description, ir.Enabled, now(), ir.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *identityResourcesRepo) DeleteIdentityResource(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM identity_resources WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
