package input

import (
	"context"
	"time"

	"eventreg/internal/domain/entities"
)

type EventInput struct {
	Name        string
	Date        time.Time
	Location    string
	Description string
}

type EventUseCase interface {
	ListEvents(ctx context.Context, actor *entities.User) ([]entities.Event, error)
	// GetEvent returns the event with its registrations attached, newest first.
	GetEvent(ctx context.Context, actor *entities.User, id int64) (*entities.Event, error)
	CreateEvent(ctx context.Context, actor *entities.User, in EventInput) (*entities.Event, error)
	UpdateEvent(ctx context.Context, actor *entities.User, id int64, in EventInput) (*entities.Event, error)
	DeleteEvent(ctx context.Context, actor *entities.User, id int64) error
}
