package application

import (
	"context"
	"fmt"
	"strings"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
	"eventreg/pkg/csvexport"
	"eventreg/pkg/tz"
)

// Listing caps applied when no search term narrows the admin lists.
const (
	AdminEventLimit        = 50
	AdminRegistrationLimit = 100
	DashboardRecentEvents  = 5
)

var _ input.AdminUseCase = (*AdminService)(nil)

type AdminService struct {
	userRepo         output.UserRepository
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
}

func NewAdminService(
	userRepo output.UserRepository,
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *AdminService) Dashboard(ctx context.Context, actor *entities.User) (*input.Dashboard, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	var (
		d   input.Dashboard
		err error
	)
	if d.TotalEvents, err = s.eventRepo.Count(ctx); err != nil {
		return nil, err
	}
	if d.TotalUsers, err = s.userRepo.CountByRole(ctx, entities.RoleRegular); err != nil {
		return nil, err
	}
	if d.TotalAdmins, err = s.userRepo.CountByRole(ctx, entities.RoleAdmin); err != nil {
		return nil, err
	}
	if d.TotalRegistrations, err = s.registrationRepo.Count(ctx); err != nil {
		return nil, err
	}
	d.RecentEvents, err = s.eventRepo.List(ctx, output.EventFilter{
		Order: output.EventsNewestFirst,
		Limit: DashboardRecentEvents,
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *AdminService) SearchEvents(ctx context.Context, actor *entities.User, q input.EventQuery) (*input.EventListing, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	filter := output.EventFilter{
		OwnerID: q.UserID,
		Search:  strings.TrimSpace(q.Search),
		Order:   output.EventsNewestFirst,
	}
	if filter.Search == "" {
		filter.Limit = AdminEventLimit
	}

	var (
		l   input.EventListing
		err error
	)
	if l.Events, err = s.eventRepo.List(ctx, filter); err != nil {
		return nil, err
	}
	if l.Owners, err = s.userRepo.List(ctx); err != nil {
		return nil, err
	}
	if l.TotalEvents, err = s.eventRepo.Count(ctx); err != nil {
		return nil, err
	}
	if l.TotalRegistrations, err = s.registrationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if l.UsersWithEvents, err = s.eventRepo.CountOwners(ctx); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *AdminService) DeleteEvent(ctx context.Context, actor *entities.User, id int64) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

// BulkDeleteEvents reports how many of ids were actually deleted.
func (s *AdminService) BulkDeleteEvents(ctx context.Context, actor *entities.User, ids []int64) (int64, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, domain.ErrNoEventsSelected
	}
	return s.eventRepo.DeleteMany(ctx, ids)
}

func (s *AdminService) SearchRegistrations(ctx context.Context, actor *entities.User, q input.RegistrationQuery) (*input.RegistrationListing, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	filter := output.RegistrationFilter{EventID: q.EventID, Search: strings.TrimSpace(q.Search)}
	if filter.Search == "" {
		filter.Limit = AdminRegistrationLimit
	}

	var (
		l   input.RegistrationListing
		err error
	)
	if l.Registrations, err = s.registrationRepo.List(ctx, filter); err != nil {
		return nil, err
	}
	if l.AllEvents, err = s.eventRepo.List(ctx, output.EventFilter{Order: output.EventsByDate}); err != nil {
		return nil, err
	}
	if l.TotalRegistrations, err = s.registrationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if l.UniqueAttendees, err = s.registrationRepo.CountDistinctEmails(ctx); err != nil {
		return nil, err
	}
	if l.EventsWithRegistrations, err = s.eventRepo.CountWithRegistrations(ctx); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *AdminService) DeleteRegistration(ctx context.Context, actor *entities.User, id int64) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	return s.registrationRepo.Delete(ctx, id)
}

func (s *AdminService) BulkDeleteRegistrations(ctx context.Context, actor *entities.User, ids []int64) (int64, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, domain.ErrNoRegistrationsSelected
	}
	return s.registrationRepo.DeleteMany(ctx, ids)
}

// ExportRegistrations renders every registration matching q, without the
// listing cap.
func (s *AdminService) ExportRegistrations(ctx context.Context, actor *entities.User, q input.RegistrationQuery) (*input.Export, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.List(ctx, output.RegistrationFilter{EventID: q.EventID, Search: strings.TrimSpace(q.Search)})
	if err != nil {
		return nil, fmt.Errorf("export registrations: %w", err)
	}
	return buildExport(csvexport.AllPrefix, regs), nil
}

func (s *AdminService) ExportSelected(ctx context.Context, actor *entities.User, ids []int64) (*input.Export, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, domain.ErrNoExportSelection
	}
	regs, err := s.registrationRepo.List(ctx, output.RegistrationFilter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("export selected registrations: %w", err)
	}
	if len(regs) == 0 {
		return nil, domain.ErrExportEmpty
	}
	return buildExport(csvexport.SelectedPrefix, regs), nil
}

func buildExport(prefix string, regs []entities.Registration) *input.Export {
	rows := make([]csvexport.Row, 0, len(regs))
	for _, r := range regs {
		row := csvexport.Row{
			AttendeeName:  r.AttendeeName,
			AttendeeEmail: r.AttendeeEmail,
			RegisteredAt:  r.CreatedAt,
		}
		if r.Event != nil {
			row.EventName = r.Event.Name
			row.EventDate = r.Event.Date
			row.EventLocation = r.Event.Location
			row.Organizer = r.Event.OwnerEmail
		}
		rows = append(rows, row)
	}
	return &input.Export{
		Filename: csvexport.Filename(prefix, tz.Today()),
		Data:     csvexport.Build(rows, tz.Local),
		Rows:     len(rows),
	}
}
