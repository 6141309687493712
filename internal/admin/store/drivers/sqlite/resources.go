package sqlite

import (
	"context"

	"github.com/keystead/identity-admin/internal/admin/domain"
)

type resourcesRepo struct {
	db dbtx
}

const resourceColumns = `id, name, display_name, description, enabled, scopes,
	created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (domain.Resource, error) {
	var r domain.Resource
	var scopes string
	err := row.Scan(
		&r.ID, &r.Name, &r.DisplayName, &r.Description, &r.Enabled, &scopes,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return domain.Resource{}, err
	}
	r.Scopes = splitList(scopes)
	return r, nil
}

func (r *resourcesRepo) GetResourceByID(ctx context.Context, id int64) (domain.Resource, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resourceColumns+` FROM api_resources WHERE id = ?`, id)
	res, err := scanResource(row)
	if err != nil {
		return domain.Resource{}, mapNotFound(err)
	}
	return res, nil
}

func (r *resourcesRepo) ListResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+resourceColumns+` FROM api_resources ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var resources []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *resourcesRepo) ResourceNameTaken(
	ctx context.Context,
	name string,
	excludeID int64,
) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM api_resources WHERE name = ? AND id != ?`,
		name, excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r *resourcesRepo) CreateResource(ctx context.Context, res domain.Resource) (int64, error) {
	ts := now()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO api_resources (
			name, display_name, description, enabled, scopes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Name, res.DisplayName, res.Description, res.Enabled,
		joinList(res.Scopes), ts, ts,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *resourcesRepo) UpdateResource(ctx context.Context, res domain.Resource) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE api_resources SET
			name = ?, display_name = ?, description = ?, enabled = ?, scopes = ?,
			updated_at = ?
		WHERE id = ?`,
		res.Name, res.DisplayName, res.Description, res.Enabled,
		joinList(res.Scopes), now(), res.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *resourcesRepo) DeleteResource(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM api_resources WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}
