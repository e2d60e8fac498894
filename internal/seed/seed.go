// Package seed loads demo data and prints the account report.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

type sampleEvent struct {
	name        string
	in          time.Duration
	location    string
	description string
}

const day = 24 * time.Hour

var sampleEvents = []sampleEvent{
	{"Tech Conference 2025", 30 * day, "Convention Center, New York",
		"Join industry leaders for the latest in technology trends, networking opportunities, and hands-on workshops."},
	{"Music Festival", 60 * day, "Central Park, New York",
		"Three days of incredible music featuring local and international artists across multiple genres."},
	{"Startup Pitch Night", 21 * day, "Innovation Hub, Silicon Valley",
		"Watch promising startups pitch their ideas to a panel of investors and industry experts."},
	{"Art Exhibition Opening", 10 * day, "Modern Art Gallery, Chicago",
		"Discover contemporary works from emerging artists in this exclusive gallery opening."},
	{"Food & Wine Tasting", 5 * day, "Downtown Restaurant, San Francisco",
		"Sample exquisite wines paired with gourmet dishes prepared by renowned chefs."},
}

var (
	firstNames = []string{"John", "Jane", "Mike", "Sarah", "David", "Lisa", "Tom", "Emma"}
	lastNames  = []string{"Smith", "Johnson", "Brown", "Davis", "Wilson", "Moore", "Taylor", "Anderson"}
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]`)
)

// Demo accounts.
const (
	UserEmail     = "user@test.com"
	UserPassword  = "password123"
	AdminEmail    = "admin@test.com"
	AdminPassword = "admin123"
)

type Seeder struct {
	users         output.UserRepository
	events        output.EventRepository
	registrations output.RegistrationRepository
	hasher        output.PasswordHasher
	rnd           *rand.Rand
	now           func() time.Time
}

func New(
	users output.UserRepository,
	events output.EventRepository,
	registrations output.RegistrationRepository,
	hasher output.PasswordHasher,
	rnd *rand.Rand,
) *Seeder {
	return &Seeder{
		users:         users,
		events:        events,
		registrations: registrations,
		hasher:        hasher,
		rnd:           rnd,
		now:           time.Now,
	}
}

// Run creates the demo accounts, five events alternating between them and
// three to eight registrations per event. Existing records are reused, so Run
// can be repeated.
func (s *Seeder) Run(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "🌱 Seeding database...")

	regular, err := s.ensureUser(ctx, UserEmail, UserPassword, entities.RoleRegular)
	if err != nil {
		return err
	}
	admin, err := s.ensureUser(ctx, AdminEmail, AdminPassword, entities.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "✅ Created test users:")
	fmt.Fprintf(w, "   Regular User: %s (password: %s)\n", UserEmail, UserPassword)
	fmt.Fprintf(w, "   Admin User: %s (password: %s)\n", AdminEmail, AdminPassword)

	for i, sample := range sampleEvents {
		owner := regular
		if i%2 == 1 {
			owner = admin
		}
		event, err := s.ensureEvent(ctx, owner, sample)
		if err != nil {
			return err
		}
		if err := s.ensureRegistrations(ctx, event, 3+s.rnd.IntN(6)); err != nil {
			return err
		}
	}

	events, err := s.events.Count(ctx)
	if err != nil {
		return err
	}
	regs, err := s.registrations.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Created %d events with %d total registrations\n", events, regs)
	fmt.Fprintln(w, "🎉 Database seeding completed!")
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, email, password string, role entities.Role) (*entities.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}
	u = &entities.User{Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("seed: create %s: %w", email, err)
	}
	return u, nil
}

func (s *Seeder) ensureEvent(ctx context.Context, owner *entities.User, sample sampleEvent) (*entities.Event, error) {
	existing, err := s.events.List(ctx, output.EventFilter{OwnerID: owner.ID, Search: sample.name})
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Name == sample.name {
			return &existing[i], nil
		}
	}
	e := &entities.Event{
		UserID:      owner.ID,
		Name:        sample.name,
		Date:        s.now().Add(sample.in).Truncate(time.Minute),
		Location:    sample.location,
		Description: sample.description,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("seed: create event %q: %w", sample.name, err)
	}
	return e, nil
}

func (s *Seeder) ensureRegistrations(ctx context.Context, event *entities.Event, n int) error {
	existing, err := s.registrations.FindByEventID(ctx, event.ID)
	if err != nil {
		return err
	}
	taken := make(map[string]bool, len(existing))
	for _, r := range existing {
		taken[r.AttendeeEmail] = true
	}
	slug := nonAlnum.ReplaceAllString(strings.ToLower(event.Name), "")
	for i := 1; i <= n; i++ {
		email := fmt.Sprintf("attendee%d@%sevent.com", i, slug)
		if taken[email] {
			continue
		}
		r := &entities.Registration{
			EventID:       event.ID,
			AttendeeName:  firstNames[s.rnd.IntN(len(firstNames))] + " " + lastNames[s.rnd.IntN(len(lastNames))],
			AttendeeEmail: email,
		}
		if err := s.registrations.Create(ctx, r); err != nil {
			return fmt.Errorf("seed: create registration: %w", err)
		}
	}
	return nil
}

// Report prints user totals, both role lists and the events owned per user.
func (s *Seeder) Report(ctx context.Context, w io.Writer) error {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "USERS IN THE DATABASE")
	fmt.Fprintln(w, rule)

	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found in the database.")
	} else if err := s.reportUsers(ctx, w, users); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "END OF REPORT")
	fmt.Fprintln(w, rule)
	return nil
}

func (s *Seeder) reportUsers(ctx context.Context, w io.Writer, users []entities.User) error {
	var regular, admins []entities.User
	for _, u := range users {
		if u.IsAdmin() {
			admins = append(admins, u)
		} else {
			regular = append(regular, u)
		}
	}

	fmt.Fprintln(w, "\n📊 SUMMARY:")
	fmt.Fprintf(w, "Total Users: %d\n", len(users))
	fmt.Fprintf(w, "Admin Users: %d\n", len(admins))
	fmt.Fprintf(w, "Regular Users: %d\n", len(regular))

	section := strings.Repeat("-", 30)
	fmt.Fprintln(w, "\n👤 REGULAR USERS:")
	fmt.Fprintln(w, section)
	if len(regular) == 0 {
		fmt.Fprintln(w, "No regular users found.")
	}
	for i, u := range regular {
		fmt.Fprintf(w, "%d. %s (ID: %d, Role: %d)\n", i+1, u.Email, u.ID, u.Role)
	}

	fmt.Fprintln(w, "\n⚡ ADMIN USERS:")
	fmt.Fprintln(w, section)
	if len(admins) == 0 {
		fmt.Fprintln(w, "No admin users found.")
	}
	for i, u := range admins {
		fmt.Fprintf(w, "%d. %s (ID: %d, Role: %d)\n", i+1, u.Email, u.ID, u.Role)
	}

	totalEvents, err := s.events.Count(ctx)
	if err != nil {
		return err
	}
	totalRegs, err := s.registrations.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n📅 EVENTS SUMMARY:")
	fmt.Fprintln(w, section)
	fmt.Fprintf(w, "Total Events: %d\n", totalEvents)
	fmt.Fprintf(w, "Total Registrations: %d\n", totalRegs)

	if totalEvents > 0 {
		perOwner, err := s.events.CountPerOwner(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "\nEvents by user:")
		for _, oc := range perOwner {
			if oc.Count > 0 {
				fmt.Fprintf(w, "  %s: %d event(s)\n", oc.Email, oc.Count)
			}
		}
	}
	return nil
}
