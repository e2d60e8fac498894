package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventreg/internal/domain"
	"eventreg/internal/ports/input"
)

const (
	adminEventsPath        = "/admin/events"
	adminRegistrationsPath = "/admin/registrations"
)

func queryID(c *gin.Context, key string) int64 {
	id, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func (s *Server) adminDashboard(c *gin.Context) {
	d, err := s.admin.Dashboard(c.Request.Context(), currentAdmin(c))
	if err != nil {
		s.fail(c, "/", err)
		return
	}
	s.render(c, http.StatusOK, "admin/dashboard", gin.H{"Title": "Admin dashboard", "Dashboard": d})
}

func (s *Server) adminEvents(c *gin.Context) {
	q := input.EventQuery{Search: strings.TrimSpace(c.Query("search")), UserID: queryID(c, "user_id")}
	l, err := s.admin.SearchEvents(c.Request.Context(), currentAdmin(c), q)
	if err != nil {
		s.fail(c, "/admin", err)
		return
	}
	s.render(c, http.StatusOK, "admin/events", gin.H{"Title": "All events", "Listing": l, "Query": q})
}

func (s *Server) adminDeleteEvent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.setFlashKey(c, flashAlert, "errors.admin_event_not_found", nil)
		s.redirect(c, adminEventsPath)
		return
	}
	err := s.admin.DeleteEvent(c.Request.Context(), currentAdmin(c), id)
	if errors.Is(err, domain.ErrEventNotFound) {
		s.setFlashKey(c, flashAlert, "errors.admin_event_not_found", nil)
		s.redirect(c, adminEventsPath)
		return
	}
	if err != nil {
		s.fail(c, adminEventsPath, err)
		return
	}
	recordsDeleted.WithLabelValues("event").Inc()
	s.notice(c, adminEventsPath, "flash.admin_event_deleted", nil)
}

func (s *Server) adminBulkDeleteEvents(c *gin.Context) {
	n, err := s.admin.BulkDeleteEvents(c.Request.Context(), currentAdmin(c), formIDs(c, "event_ids[]"))
	if err != nil {
		s.fail(c, adminEventsPath, err)
		return
	}
	recordsDeleted.WithLabelValues("event").Add(float64(n))
	s.notice(c, adminEventsPath, "flash.admin_events_bulk_deleted", map[string]any{"Count": n})
}

func (s *Server) adminRegistrations(c *gin.Context) {
	q := input.RegistrationQuery{Search: strings.TrimSpace(c.Query("search")), EventID: queryID(c, "event_id")}
	if c.Query("format") == "csv" {
		export, err := s.admin.ExportRegistrations(c.Request.Context(), currentAdmin(c), q)
		s.sendExport(c, "all", export, err)
		return
	}
	l, err := s.admin.SearchRegistrations(c.Request.Context(), currentAdmin(c), q)
	if err != nil {
		s.fail(c, "/admin", err)
		return
	}
	s.render(c, http.StatusOK, "admin/registrations", gin.H{"Title": "All registrations", "Listing": l, "Query": q})
}

func (s *Server) adminDeleteRegistration(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, adminRegistrationsPath, domain.ErrRegistrationNotFound)
		return
	}
	if err := s.admin.DeleteRegistration(c.Request.Context(), currentAdmin(c), id); err != nil {
		s.fail(c, adminRegistrationsPath, err)
		return
	}
	recordsDeleted.WithLabelValues("registration").Inc()
	s.notice(c, adminRegistrationsPath, "flash.admin_registration_deleted", nil)
}

func (s *Server) adminBulkDeleteRegistrations(c *gin.Context) {
	n, err := s.admin.BulkDeleteRegistrations(c.Request.Context(), currentAdmin(c), formIDs(c, "registration_ids[]"))
	if err != nil {
		s.fail(c, adminRegistrationsPath, err)
		return
	}
	recordsDeleted.WithLabelValues("registration").Add(float64(n))
	s.notice(c, adminRegistrationsPath, "flash.admin_registrations_bulk_deleted", map[string]any{"Count": n})
}

func (s *Server) adminExportSelected(c *gin.Context) {
	export, err := s.admin.ExportSelected(c.Request.Context(), currentAdmin(c), formIDs(c, "registration_ids[]"))
	s.sendExport(c, "selected", export, err)
}

// sendExport serves export as a CSV attachment. Failures without a domain code
// are logged and reported as a failed export.
func (s *Server) sendExport(c *gin.Context, kind string, export *input.Export, err error) {
	if err != nil {
		key := "errors.export_failed"
		if code := domain.Code(err); code != "" {
			key = "errors." + code
		} else {
			s.logger.Error("csv export failed",
				zap.String("kind", kind),
				zap.Error(err),
				zap.String("request_id", c.GetString(ctxRequestID)),
			)
		}
		s.setFlashKey(c, flashAlert, key, nil)
		s.redirect(c, adminRegistrationsPath)
		return
	}
	csvExports.WithLabelValues(kind).Inc()
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Data)
}
