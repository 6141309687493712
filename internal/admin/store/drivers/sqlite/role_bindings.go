package sqlite

import "context"

type roleBindingsRepo struct {
	db dbtx
}

func (r *roleBindingsRepo) Members(ctx context.Context, role string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM role_bindings WHERE role = ? ORDER BY user_id ASC`, role)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

func (r *roleBindingsRepo) HasMember(ctx context.Context, role, userID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM role_bindings WHERE role = ? AND user_id = ?`,
		role, userID,
	).Scan(&n)
	return n > 0, err
}

func (r *roleBindingsRepo) CountMembers(ctx context.Context, role string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM role_bindings WHERE role = ?`, role,
	).Scan(&n)
	return n, err
}

func (r *roleBindingsRepo) Grant(ctx context.Context, role, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO role_bindings (role, user_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (role, user_id) DO NOTHING`,
		role, userID, now(),
	)
	return err
}

func (r *roleBindingsRepo) Revoke(ctx context.Context, role, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM role_bindings WHERE role = ? AND user_id = ?`,
		role, userID,
	)
	return err
}

// ClaimIfEmpty grants role to userID only when the role currently has no
// members. The check and insert execute as one statement so concurrent
// claimants cannot both win.
func (r *roleBindingsRepo) ClaimIfEmpty(ctx context.Context, role, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO role_bindings (role, user_id, created_at)
		 SELECT ?, ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM role_bindings WHERE role = ?)`,
		role, userID, now(), role,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
