package sqlite

import (
	"context"

	"github.com/keystead/identity-admin/internal/admin/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, agent_type, confirmed, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.AgentType, &u.Confirmed, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UserNameTaken(
	ctx context.Context,
	name string,
	excludeID string,
) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE name = ? AND id != ?`,
		name, excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, agent_type, confirmed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.AgentType, u.Confirmed, ts, ts,
	)
	return err
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, agent_type = ?, confirmed = ?, updated_at = ?
		 WHERE id = ?`,
		u.Name, u.AgentType, u.Confirmed, now(), u.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// DeleteUser removes the user row. Role bindings cascade through the
// foreign key so a deleted admin does not leave a dangling grant.
func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) SetConfirmed(ctx context.Context, id string, confirmed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET confirmed = ?, updated_at = ? WHERE id = ?`,
		confirmed, now(), id,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
