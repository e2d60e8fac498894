package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	// CountByRole counts users holding role; RoleRegular also counts NULL roles.
	CountByRole(ctx context.Context, role entities.Role) (int64, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
