package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

// RegistrationFilter narrows a registration listing. Zero values disable a
// criterion. Results are newest first with Event (and its OwnerEmail) attached.
type RegistrationFilter struct {
	EventID int64
	IDs     []int64
	// Search is matched case-insensitively against attendee name, attendee
	// email and event name.
	Search string
	Limit  int
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *entities.Registration) error
	FindByID(ctx context.Context, id int64) (*entities.Registration, error)
	FindByEventID(ctx context.Context, eventID int64) ([]entities.Registration, error)
	List(ctx context.Context, filter RegistrationFilter) ([]entities.Registration, error)
	Update(ctx context.Context, registration *entities.Registration) error
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountDistinctEmails(ctx context.Context) (int64, error)
}
