package input

import (
	"context"

	"eventreg/internal/domain/entities"
)

type RegistrationInput struct {
	AttendeeName  string
	AttendeeEmail string
}

type RegistrationUseCase interface {
	CreateRegistration(ctx context.Context, actor *entities.User, eventID int64, in RegistrationInput) (*entities.Registration, error)
	// GetRegistration returns the registration with its Event attached.
	GetRegistration(ctx context.Context, actor *entities.User, id int64) (*entities.Registration, error)
	UpdateRegistration(ctx context.Context, actor *entities.User, id int64, in RegistrationInput) (*entities.Registration, error)
	// DeleteRegistration returns the id of the event the registration belonged to.
	DeleteRegistration(ctx context.Context, actor *entities.User, id int64) (int64, error)
}
