package application

import (
	"context"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
}

func NewEventService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

// ListEvents returns the events actor may see, soonest first.
func (s *EventService) ListEvents(ctx context.Context, actor *entities.User) ([]entities.Event, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.eventRepo.List(ctx, output.EventFilter{
		OwnerID: domain.EventOwnerScope(actor),
		Order:   output.EventsByDate,
	})
}

func (s *EventService) GetEvent(ctx context.Context, actor *entities.User, id int64) (*entities.Event, error) {
	event, err := findVisibleEvent(ctx, s.eventRepo, actor, id)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.FindByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Registrations = regs
	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, actor *entities.User, in input.EventInput) (*entities.Event, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	event := &entities.Event{UserID: actor.ID}
	if err := applyEventInput(event, in); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	event.OwnerEmail = actor.Email
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, actor *entities.User, id int64, in input.EventInput) (*entities.Event, error) {
	event, err := findVisibleEvent(ctx, s.eventRepo, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyEventInput(event, in); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes the event together with its registrations.
func (s *EventService) DeleteEvent(ctx context.Context, actor *entities.User, id int64) error {
	event, err := findVisibleEvent(ctx, s.eventRepo, actor, id)
	if err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, event.ID)
}

// findVisibleEvent looks id up within the actor's listing scope, so another
// user's event reads as missing.
func findVisibleEvent(ctx context.Context, repo output.EventRepository, actor *entities.User, id int64) (*entities.Event, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	event, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageEvent(actor, event) {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func applyEventInput(event *entities.Event, in input.EventInput) error {
	event.Name = clean(in.Name)
	event.Date = in.Date
	event.Location = clean(in.Location)
	event.Description = clean(in.Description)

	errs := domain.Validate(event)
	if in.Date.IsZero() {
		errs.Add("date", domain.ValidationBlank)
	}
	rejectMarkup(errs, map[string]string{
		"name":        event.Name,
		"location":    event.Location,
		"description": event.Description,
	})
	return errs.Err()
}
