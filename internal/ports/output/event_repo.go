package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

// EventOrder selects the sort order of an event listing.
type EventOrder int

const (
	EventsByDate EventOrder = iota
	EventsNewestFirst
)

// EventFilter narrows an event listing. Zero values disable a criterion.
type EventFilter struct {
	// OwnerID restricts the listing to one owner; a negative value matches
	// no events.
	OwnerID int64
	// Search is matched case-insensitively against name, location and description.
	Search string
	Order  EventOrder
	Limit  int
}

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	List(ctx context.Context, filter EventFilter) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	// Delete removes the event and its registrations.
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountOwners(ctx context.Context) (int64, error)
	CountWithRegistrations(ctx context.Context) (int64, error)
	CountPerOwner(ctx context.Context) ([]entities.OwnerCount, error)
}
