package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"eventreg/internal/infrastructure/security"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

const shutdownTimeout = 5 * time.Second

// Deps are the ports the HTTP adapter drives.
type Deps struct {
	Logger        *zap.Logger
	Accounts      input.AccountUseCase
	Events        input.EventUseCase
	Registrations input.RegistrationUseCase
	Admin         input.AdminUseCase
	Sessions      *security.Sessions
	Translator    output.Translator
	CookieSecure  bool
}

// Server is the HTML front end.
type Server struct {
	router        *gin.Engine
	logger        *zap.Logger
	accounts      input.AccountUseCase
	events        input.EventUseCase
	registrations input.RegistrationUseCase
	admin         input.AdminUseCase
	sessions      *security.Sessions
	translator    output.Translator
	cookieSecure  bool
}

// NewServer builds the router and registers every route.
func NewServer(deps Deps) (*Server, error) {
	s := &Server{
		logger:        deps.Logger,
		accounts:      deps.Accounts,
		events:        deps.Events,
		registrations: deps.Registrations,
		admin:         deps.Admin,
		sessions:      deps.Sessions,
		translator:    deps.Translator,
		cookieSecure:  deps.CookieSecure,
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(s.logger, true))
	router.Use(recordMetrics())
	router.Use(s.detectLocale(), s.loadPrincipals())
	router.SetHTMLTemplate(tmpl)

	s.router = router
	s.registerRoutes()
	return s, nil
}

// Router returns the gin engine, for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	r := s.router
	r.GET("/up", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", s.home)

	users := r.Group("/users")
	{
		users.GET("/register", s.newUser)
		users.POST("/register", s.createUser)
		users.GET("/sign_in", s.newUserSession)
		users.POST("/sign_in", s.createUserSession)
		users.POST("/sign_out", s.destroyUserSession)
	}

	adminAuth := r.Group("/admin")
	{
		adminAuth.GET("/register", s.newAdmin)
		adminAuth.POST("/register", s.createAdmin)
		adminAuth.GET("/login", s.newAdminSession)
		adminAuth.POST("/login", s.createAdminSession)
		adminAuth.POST("/logout", s.destroyAdminSession)
	}

	signedIn := r.Group("/", s.requireSignedIn())
	{
		signedIn.GET("/events", s.listEvents)
		signedIn.GET("/events/new", s.newEvent)
		signedIn.POST("/events", s.createEvent)
		signedIn.GET("/events/:id", s.showEvent)
		signedIn.GET("/events/:id/edit", s.editEvent)
		signedIn.POST("/events/:id", s.updateEvent)
		signedIn.POST("/events/:id/delete", s.deleteEvent)

		signedIn.POST("/events/:id/event_registrations", s.createRegistration)
		signedIn.GET("/event_registrations/:id/edit", s.editRegistration)
		signedIn.POST("/event_registrations/:id", s.updateRegistration)
		signedIn.POST("/event_registrations/:id/delete", s.deleteRegistration)
	}

	admin := r.Group("/admin", s.requireAdmin())
	{
		admin.GET("", s.adminDashboard)
		admin.GET("/events", s.adminEvents)
		admin.POST("/events/bulk_delete", s.adminBulkDeleteEvents)
		admin.POST("/events/:id/delete", s.adminDeleteEvent)
		admin.GET("/registrations", s.adminRegistrations)
		admin.POST("/registrations/bulk_delete", s.adminBulkDeleteRegistrations)
		admin.POST("/registrations/export_selected_csv", s.adminExportSelected)
		admin.POST("/registrations/:id/delete", s.adminDeleteRegistration)
	}
}

// Run serves addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("🌐 HTTP server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("🛑 shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
