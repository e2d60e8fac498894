package seed

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eventreg/internal/domain/entities"
	"eventreg/internal/infrastructure/database"
	"eventreg/internal/infrastructure/database/dbtest"
	"eventreg/internal/infrastructure/security"
	"eventreg/internal/ports/output"
)

func newSeeder(t *testing.T) (*Seeder, *database.EventRepository, *database.RegistrationRepository) {
	t.Helper()
	db := dbtest.Open(t)
	users := database.NewUserRepository(db)
	events := database.NewEventRepository(db)
	regs := database.NewRegistrationRepository(db)
	s := New(users, events, regs, security.NewBcryptHasher(bcrypt.MinCost), rand.New(rand.NewPCG(1, 2)))
	return s, events, regs
}

func TestRunIsRepeatable(t *testing.T) {
	ctx := context.Background()
	s, events, regs := newSeeder(t)

	var out bytes.Buffer
	require.NoError(t, s.Run(ctx, &out))
	assert.Contains(t, out.String(), "Database seeding completed!")

	all, err := events.List(ctx, output.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, len(sampleEvents))
	for _, e := range all {
		assert.GreaterOrEqual(t, e.RegistrationCount, int64(3))
		assert.LessOrEqual(t, e.RegistrationCount, int64(8))
	}

	admin, err := s.users.FindByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, admin.Role)
	user, err := s.users.FindByEmail(ctx, UserEmail)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleRegular, user.Role)

	owned, err := events.List(ctx, output.EventFilter{OwnerID: user.ID})
	require.NoError(t, err)
	assert.Len(t, owned, 3)

	before, err := regs.Count(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Run(ctx, &out))
	again, err := events.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(sampleEvents), again)
	after, err := regs.Count(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before)
	assert.LessOrEqual(t, after, int64(8*len(sampleEvents)))
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newSeeder(t)

	var out bytes.Buffer
	require.NoError(t, s.Report(ctx, &out))
	assert.Contains(t, out.String(), "No users found in the database.")

	require.NoError(t, s.Run(ctx, &bytes.Buffer{}))
	out.Reset()
	require.NoError(t, s.Report(ctx, &out))
	report := out.String()
	assert.Contains(t, report, "Total Users: 2")
	assert.Contains(t, report, "Admin Users: 1")
	assert.Contains(t, report, "1. user@test.com (ID: ")
	assert.Contains(t, report, "Total Events: 5")
	assert.Contains(t, report, "  user@test.com: 3 event(s)")
	assert.Contains(t, report, "  admin@test.com: 2 event(s)")
	assert.Contains(t, report, "END OF REPORT")
}
