package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"eventreg/internal/application"
	"eventreg/internal/domain/entities"
	"eventreg/internal/infrastructure/database"
	"eventreg/internal/infrastructure/database/dbtest"
	"eventreg/internal/infrastructure/i18n"
	"eventreg/internal/infrastructure/security"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

const testAdminCode = "TEST-ADMIN-CODE"

type testEnv struct {
	srv  *httptest.Server
	regs *database.RegistrationRepository
}

func newTestEnv(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	users := database.NewUserRepository(db)
	events := database.NewEventRepository(db)
	regs := database.NewRegistrationRepository(db)
	logger := zap.NewNop()

	deps := Deps{
		Logger:        logger,
		Accounts:      application.NewAccountService(users, security.NewBcryptHasher(bcrypt.MinCost), testAdminCode),
		Events:        application.NewEventService(events, regs),
		Registrations: application.NewRegistrationService(regs, events),
		Admin:         application.NewAdminService(users, events, regs),
		Sessions:      security.NewSessions("test-session-secret-123", time.Hour),
		Translator:    i18n.NewTranslator("en", logger),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	s, err := NewServer(deps)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, regs: regs}
}

// browser keeps cookies between requests and never follows redirects.
type browser struct {
	t    *testing.T
	base string
	http *http.Client
}

func (e *testEnv) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: e.srv.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type page struct {
	status   int
	location string
	header   http.Header
	body     string
}

func (b *browser) do(req *http.Request) page {
	b.t.Helper()
	resp, err := b.http.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{status: resp.StatusCode, location: resp.Header.Get("Location"), header: resp.Header, body: string(raw)}
}

func (b *browser) get(path string) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// follow asserts a redirect and loads its target.
func (b *browser) follow(p page) page {
	b.t.Helper()
	require.Equal(b.t, http.StatusSeeOther, p.status, p.body)
	require.NotEmpty(b.t, p.location)
	return b.get(p.location)
}

func (b *browser) signUp(email string) {
	b.t.Helper()
	p := b.post("/users/register", url.Values{
		"email": {email}, "password": {"password123"}, "password_confirmation": {"password123"},
	})
	require.Equal(b.t, "/events", p.location, p.body)
}

func (b *browser) signUpAdmin(email string) {
	b.t.Helper()
	p := b.post("/admin/register", url.Values{
		"email": {email}, "password": {"admin123"}, "password_confirmation": {"admin123"}, "secret_code": {testAdminCode},
	})
	require.Equal(b.t, "/admin", p.location, p.body)
}

// createEvent returns the path of the new event page.
func (b *browser) createEvent(name, location string) string {
	b.t.Helper()
	p := b.post("/events", url.Values{
		"name": {name}, "date": {"2026-11-20T18:30"}, "location": {location}, "description": {"All welcome"},
	})
	require.Equal(b.t, http.StatusSeeOther, p.status, p.body)
	require.True(b.t, strings.HasPrefix(p.location, "/events/"))
	return p.location
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestHealthAndMetrics(t *testing.T) {
	b := newTestEnv(t).browser(t)

	p := b.get("/up")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "ok", p.body)
	assert.NotEmpty(t, p.header.Get(requestIDHeader))

	p = b.get("/metrics")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "eventreg_http_requests_total")
}

func TestGuestIsSentHome(t *testing.T) {
	b := newTestEnv(t).browser(t)

	p := b.get("/")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Create an account")

	p = b.get("/events")
	assert.Equal(t, "/", p.location)
	assert.Contains(t, b.follow(p).body, "Please sign in to continue.")
}

func TestUserSignUpAndEventLifecycle(t *testing.T) {
	b := newTestEnv(t).browser(t)

	p := b.post("/users/register", url.Values{
		"email": {"user@test.com"}, "password": {"password123"}, "password_confirmation": {"password123"},
	})
	home := b.follow(p)
	assert.Equal(t, http.StatusOK, home.status)
	assert.Contains(t, home.body, "Account created successfully!")
	assert.Equal(t, "/events", b.get("/").location)

	eventPage := b.createEvent("Launch Party", "Main Hall")
	show := b.get(eventPage)
	assert.Contains(t, show.body, "Event was successfully created.")
	assert.Contains(t, show.body, "Launch Party")

	p = b.post(eventPage+"/event_registrations", url.Values{"attendee_name": {"Ann"}, "attendee_email": {"ann@test.com"}})
	show = b.follow(p)
	assert.Contains(t, show.body, "Registration was successfully created.")
	assert.Contains(t, show.body, "ann@test.com")

	p = b.post(eventPage+"/event_registrations", url.Values{"attendee_name": {"Bad"}, "attendee_email": {"not-an-email"}})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "is invalid")

	p = b.post(eventPage, url.Values{"name": {""}, "date": {"soon"}, "location": {"Hall"}, "description": {"x"}})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "can&#39;t be blank")
	assert.Contains(t, p.body, "is invalid")

	p = b.post(eventPage, url.Values{"name": {"Launch Night"}, "date": {"2026-11-21"}, "location": {"Hall"}, "description": {"x"}})
	assert.Contains(t, b.follow(p).body, "Launch Night")

	p = b.post(eventPage+"/delete", nil)
	assert.Equal(t, "/events", p.location)
	list := b.follow(p)
	assert.Contains(t, list.body, "Event was successfully deleted.")
	assert.NotContains(t, list.body, "Launch Night")

	p = b.post("/users/sign_out", nil)
	assert.Contains(t, b.follow(p).body, "Signed out successfully.")
	assert.Equal(t, "/", b.get("/events").location)
}

func TestSignUpValidationRerendersForm(t *testing.T) {
	b := newTestEnv(t).browser(t)

	p := b.post("/users/register", url.Values{
		"email": {"user@test.com"}, "password": {"123"}, "password_confirmation": {"456"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "is too short (minimum is 6 characters)")
	assert.Contains(t, p.body, "match Password")
	assert.Contains(t, p.body, `value="user@test.com"`)
}

func TestSignUpRejectsOverlongPassword(t *testing.T) {
	b := newTestEnv(t).browser(t)

	long := strings.Repeat("p", 80)
	p := b.post("/users/register", url.Values{
		"email": {"user@test.com"}, "password": {long}, "password_confirmation": {long},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "is too long (maximum is 72 characters)")
}

func TestEventFormKeepsInputOnMarkup(t *testing.T) {
	b := newTestEnv(t).browser(t)
	b.signUp("user@test.com")

	p := b.post("/events", url.Values{
		"name": {"Hackathon"}, "date": {"2026-11-20T18:30"}, "location": {"Lab"}, "description": {"Bring <laptop> & charger"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "is invalid")
	assert.Contains(t, p.body, "Bring &lt;laptop&gt; &amp; charger")

	p = b.post("/events", url.Values{
		"name": {strings.Repeat("n", 300)}, "date": {"2026-11-20T18:30"}, "location": {"Lab"}, "description": {"x"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "is too long (maximum is 255 characters)")
}

func TestSignIn(t *testing.T) {
	env := newTestEnv(t)
	env.browser(t).signUp("user@test.com")
	b := env.browser(t)

	p := b.post("/users/sign_in", url.Values{"email": {"user@test.com"}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "Invalid email or password.")

	p = b.post("/admin/login", url.Values{"email": {"user@test.com"}, "password": {"password123"}})
	assert.Equal(t, http.StatusForbidden, p.status)
	assert.Contains(t, p.body, "Admin access required.")

	p = b.post("/users/sign_in", url.Values{"email": {"USER@test.com"}, "password": {"password123"}})
	assert.Equal(t, "/events", p.location)
	assert.Contains(t, b.follow(p).body, "Signed in successfully.")
}

func TestRegularUserCannotReachOthersEvents(t *testing.T) {
	env := newTestEnv(t)
	alice := env.browser(t)
	alice.signUp("alice@test.com")
	eventPage := alice.createEvent("Alice Party", "Garden")

	bob := env.browser(t)
	bob.signUp("bob@test.com")

	p := bob.get(eventPage)
	assert.Equal(t, "/events", p.location)
	assert.Contains(t, bob.follow(p).body, "Event not found or access denied.")

	p = bob.get(eventPage + "/edit")
	assert.Equal(t, "/events", p.location)

	p = bob.post(eventPage+"/delete", nil)
	assert.Contains(t, bob.follow(p).body, "Event not found or access denied.")

	p = bob.post(eventPage, url.Values{"name": {"Hijacked"}, "date": {"2026-11-21"}, "location": {"Hall"}, "description": {"x"}})
	assert.Contains(t, bob.follow(p).body, "Event not found or access denied.")

	p = bob.post(eventPage+"/event_registrations", url.Values{"attendee_name": {"Bo"}, "attendee_email": {"bo@test.com"}})
	assert.Equal(t, "/events", p.location)

	assert.NotContains(t, bob.get("/events").body, "Alice Party")
	assert.Contains(t, alice.get(eventPage).body, "Alice Party")

	p = bob.get("/admin")
	assert.Equal(t, "/", p.location)
	assert.Contains(t, bob.follow(bob.follow(p)).body, "Admin access required.")
}

func TestAdminSignUpRequiresSecretCode(t *testing.T) {
	b := newTestEnv(t).browser(t)

	p := b.post("/admin/register", url.Values{
		"email": {"boss@test.com"}, "password": {"admin123"}, "password_confirmation": {"admin123"}, "secret_code": {"nope"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "Invalid admin secret code")

	b.signUpAdmin("boss@test.com")
	dash := b.get("/admin")
	assert.Equal(t, http.StatusOK, dash.status)
	assert.Contains(t, dash.body, "Admin dashboard")
	assert.Contains(t, dash.body, "Admin account created successfully!")
	assert.Equal(t, "/admin", b.get("/").location)
}

func TestAdminManagesEverything(t *testing.T) {
	env := newTestEnv(t)
	alice := env.browser(t)
	alice.signUp("alice@test.com")
	eventPage := alice.createEvent("Garden Party", "Paris, France")
	for _, name := range []string{"Ann", "Ben"} {
		p := alice.post(eventPage+"/event_registrations", url.Values{"attendee_name": {name}, "attendee_email": {strings.ToLower(name) + "@test.com"}})
		require.Equal(t, http.StatusSeeOther, p.status)
	}

	admin := env.browser(t)
	admin.signUpAdmin("admin@test.com")

	show := admin.get(eventPage)
	assert.Equal(t, http.StatusOK, show.status)
	assert.Contains(t, show.body, "Garden Party")

	events := admin.get("/admin/events?search=garden")
	assert.Contains(t, events.body, "alice@test.com")

	csv := admin.get("/admin/registrations?format=csv")
	assert.Equal(t, http.StatusOK, csv.status)
	assert.True(t, strings.HasPrefix(csv.header.Get("Content-Type"), "text/csv"))
	assert.Contains(t, csv.header.Get("Content-Disposition"), `attachment; filename="registrations_export_`)
	assert.Len(t, strings.Split(csv.body, "\n"), 3)
	assert.Contains(t, csv.body, `Garden Party,2026-11-20 18:30,"Paris, France",`)

	p := admin.post("/admin/registrations/export_selected_csv", nil)
	assert.Equal(t, adminRegistrationsPath, p.location)
	assert.Contains(t, admin.follow(p).body, "No registrations selected for export.")

	regs, err := env.regs.List(context.Background(), output.RegistrationFilter{})
	require.NoError(t, err)
	require.Len(t, regs, 2)
	ids := url.Values{"registration_ids[]": {itoa(regs[0].ID), itoa(regs[1].ID)}}

	sel := admin.post("/admin/registrations/export_selected_csv", ids)
	assert.Equal(t, http.StatusOK, sel.status)
	assert.Contains(t, sel.header.Get("Content-Disposition"), `filename="selected_registrations_export_`)

	p = admin.post("/admin/registrations/bulk_delete", ids)
	assert.Contains(t, admin.follow(p).body, "2 registrations deleted successfully.")

	p = admin.post("/admin/events/bulk_delete", nil)
	assert.Contains(t, admin.follow(p).body, "No events selected.")

	p = admin.post("/admin/events/9999/delete", nil)
	assert.Contains(t, admin.follow(p).body, "Event not found.")

	p = admin.post(eventPage+"/delete", nil)
	assert.Contains(t, admin.follow(p).body, "Event was successfully deleted.")
	assert.Equal(t, "/events", alice.get(eventPage).location)

	p = admin.post("/admin/logout", nil)
	assert.Equal(t, "/", p.location)
	assert.Equal(t, "/", admin.get("/admin").location)
}

func TestForgedSessionIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	b := env.browser(t)
	u, _ := url.Parse(env.srv.URL)
	b.http.Jar.SetCookies(u, []*http.Cookie{{Name: userCookie, Value: "forged", Path: "/"}})

	assert.Equal(t, "/", b.get("/events").location)
}

// failingExports serves the real admin pages but fails every CSV export with
// an error that carries no domain code.
type failingExports struct {
	input.AdminUseCase
}

var errDiskFull = errors.New("write export: disk full")

func (failingExports) ExportRegistrations(context.Context, *entities.User, input.RegistrationQuery) (*input.Export, error) {
	return nil, errDiskFull
}

func (failingExports) ExportSelected(context.Context, *entities.User, []int64) (*input.Export, error) {
	return nil, errDiskFull
}

func TestExportFailureIsLoggedAndReported(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	env := newTestEnv(t, func(d *Deps) {
		d.Logger = zap.New(core)
		d.Admin = failingExports{AdminUseCase: d.Admin}
	})
	admin := env.browser(t)
	admin.signUpAdmin("admin@test.com")

	p := admin.get("/admin/registrations?format=csv")
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, adminRegistrationsPath, p.location)
	assert.Contains(t, admin.follow(p).body, "An error occurred while exporting the CSV file.")

	p = admin.post("/admin/registrations/export_selected_csv", url.Values{"registration_ids[]": {"1"}})
	assert.Equal(t, adminRegistrationsPath, p.location)
	assert.Contains(t, admin.follow(p).body, "An error occurred while exporting the CSV file.")

	failures := logs.FilterMessage("csv export failed").All()
	require.Len(t, failures, 2)
	assert.Equal(t, "all", failures[0].ContextMap()["kind"])
	assert.Equal(t, "selected", failures[1].ContextMap()["kind"])
	assert.Equal(t, errDiskFull.Error(), failures[0].ContextMap()["error"])
}
