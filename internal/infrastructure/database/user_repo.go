package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, created_at, updated_at`

func scanUser(row scanner) (*entities.User, error) {
	var (
		u    entities.User
		role sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = roleFromNull(role)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	ts := now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		user.Email, user.PasswordHash, int64(user.Role), ts, ts,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.CreatedAt = ts
	user.UpdatedAt = ts
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entities.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	var (
		count int64
		err   error
	)
	if role == entities.RoleRegular {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = 0 OR role IS NULL`).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, int64(role)).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}
