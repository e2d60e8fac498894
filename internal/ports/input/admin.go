package input

import (
	"context"

	"eventreg/internal/domain/entities"
)

type Dashboard struct {
	TotalEvents        int64
	TotalUsers         int64
	TotalAdmins        int64
	TotalRegistrations int64
	RecentEvents       []entities.Event
}

type EventQuery struct {
	Search string
	UserID int64
}

type EventListing struct {
	Events             []entities.Event
	Owners             []entities.User
	TotalEvents        int64
	TotalRegistrations int64
	UsersWithEvents    int64
}

type RegistrationQuery struct {
	Search  string
	EventID int64
}

type RegistrationListing struct {
	Registrations           []entities.Registration
	AllEvents               []entities.Event
	TotalRegistrations      int64
	UniqueAttendees         int64
	EventsWithRegistrations int64
}

// Export is a rendered CSV attachment.
type Export struct {
	Filename string
	Data     []byte
	Rows     int
}

type AdminUseCase interface {
	Dashboard(ctx context.Context, actor *entities.User) (*Dashboard, error)
	SearchEvents(ctx context.Context, actor *entities.User, q EventQuery) (*EventListing, error)
	DeleteEvent(ctx context.Context, actor *entities.User, id int64) error
	BulkDeleteEvents(ctx context.Context, actor *entities.User, ids []int64) (int64, error)
	SearchRegistrations(ctx context.Context, actor *entities.User, q RegistrationQuery) (*RegistrationListing, error)
	DeleteRegistration(ctx context.Context, actor *entities.User, id int64) error
	BulkDeleteRegistrations(ctx context.Context, actor *entities.User, ids []int64) (int64, error)
	ExportRegistrations(ctx context.Context, actor *entities.User, q RegistrationQuery) (*Export, error)
	ExportSelected(ctx context.Context, actor *entities.User, ids []int64) (*Export, error)
}
