package input

import (
	"context"

	"eventreg/internal/domain/entities"
)

// SignUp is the account form. SecretCode is only read by admin sign-up.
type SignUp struct {
	Email                string
	Password             string
	PasswordConfirmation string
	SecretCode           string
}

type AccountUseCase interface {
	RegisterUser(ctx context.Context, form SignUp) (*entities.User, error)
	RegisterAdmin(ctx context.Context, form SignUp) (*entities.User, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	AuthenticateAdmin(ctx context.Context, email, password string) (*entities.User, error)
	GetUser(ctx context.Context, id int64) (*entities.User, error)
}
