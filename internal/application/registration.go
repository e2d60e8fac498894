package application

import (
	"context"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

type RegistrationService struct {
	registrationRepo output.RegistrationRepository
	eventRepo        output.EventRepository
}

func NewRegistrationService(
	registrationRepo output.RegistrationRepository,
	eventRepo output.EventRepository,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
	}
}

func (s *RegistrationService) CreateRegistration(ctx context.Context, actor *entities.User, eventID int64, in input.RegistrationInput) (*entities.Registration, error) {
	event, err := findVisibleEvent(ctx, s.eventRepo, actor, eventID)
	if err != nil {
		return nil, err
	}
	reg := &entities.Registration{EventID: event.ID, Event: event}
	if err := applyRegistrationInput(reg, in); err != nil {
		return nil, err
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *RegistrationService) GetRegistration(ctx context.Context, actor *entities.User, id int64) (*entities.Registration, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	reg, err := s.registrationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageRegistration(actor, event, reg) {
		return nil, domain.ErrRegistrationAccessDenied
	}
	reg.Event = event
	return reg, nil
}

// UpdateRegistration returns the registration alongside a validation error so
// the form can be re-rendered with its event.
func (s *RegistrationService) UpdateRegistration(ctx context.Context, actor *entities.User, id int64, in input.RegistrationInput) (*entities.Registration, error) {
	reg, err := s.GetRegistration(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyRegistrationInput(reg, in); err != nil {
		return reg, err
	}
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *RegistrationService) DeleteRegistration(ctx context.Context, actor *entities.User, id int64) (int64, error) {
	reg, err := s.GetRegistration(ctx, actor, id)
	if err != nil {
		return 0, err
	}
	if err := s.registrationRepo.Delete(ctx, reg.ID); err != nil {
		return 0, err
	}
	return reg.EventID, nil
}

func applyRegistrationInput(reg *entities.Registration, in input.RegistrationInput) error {
	reg.AttendeeName = clean(in.AttendeeName)
	reg.AttendeeEmail = clean(in.AttendeeEmail)
	errs := domain.Validate(reg)
	rejectMarkup(errs, map[string]string{"attendee_name": reg.AttendeeName})
	return errs.Err()
}
