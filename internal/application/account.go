package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

var _ input.AccountUseCase = (*AccountService)(nil)

type AccountService struct {
	userRepo    output.UserRepository
	hasher      output.PasswordHasher
	adminSecret string
}

func NewAccountService(
	userRepo output.UserRepository,
	hasher output.PasswordHasher,
	adminSecret string,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		hasher:      hasher,
		adminSecret: adminSecret,
	}
}

// RegisterUser creates a regular account whatever the form asks for.
func (s *AccountService) RegisterUser(ctx context.Context, form input.SignUp) (*entities.User, error) {
	return s.register(ctx, form, entities.RoleRegular, domain.ValidationErrors{})
}

// RegisterAdmin creates an admin account when the secret code matches.
func (s *AccountService) RegisterAdmin(ctx context.Context, form input.SignUp) (*entities.User, error) {
	errs := domain.ValidationErrors{}
	if subtle.ConstantTimeCompare([]byte(form.SecretCode), []byte(s.adminSecret)) != 1 {
		errs.Add("secret_code", domain.ValidationSecretCode)
	}
	return s.register(ctx, form, entities.RoleAdmin, errs)
}

func (s *AccountService) register(ctx context.Context, form input.SignUp, role entities.Role, errs domain.ValidationErrors) (*entities.User, error) {
	user := &entities.User{Email: normalizeEmail(form.Email), Role: role}
	for field, key := range domain.Validate(user) {
		errs.Add(field, key)
	}

	switch {
	case form.Password == "":
		errs.Add("password", domain.ValidationBlank)
	case len(form.Password) < domain.MinPasswordLength:
		errs.Add("password", domain.ValidationTooShort)
	case len(form.Password) > domain.MaxPasswordLength:
		errs.Add("password", domain.ValidationTooLong)
	}
	if form.Password != form.PasswordConfirmation {
		errs.Add("password_confirmation", domain.ValidationConfirmation)
	}

	if _, ok := errs["email"]; !ok {
		_, err := s.userRepo.FindByEmail(ctx, user.Email)
		switch {
		case err == nil:
			errs.Add("email", domain.ValidationTaken)
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateAdmin signs in through the admin scope, which only admins may use.
func (s *AccountService) AuthenticateAdmin(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireAdmin(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
