package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventreg/internal/domain"
	"eventreg/pkg/tz"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	displayLayout = "January 2, 2006 at 3:04 PM"
	inputLayout   = "2006-01-02T15:04"
)

var templateFuncs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.In(tz.Local).Format(displayLayout)
	},
	"inputDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.In(tz.Local).Format(inputLayout)
	},
}

// render executes the named page with the layout data every page reads.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Current"] = currentUser(c)
	data["AdminSignedIn"] = currentAdmin(c) != nil
	if v, ok := data["Errors"]; !ok || v == nil {
		data["Errors"] = map[string]string{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = s.takeFlash(c)
	}
	c.HTML(status, name, data)
}

func (s *Server) redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

// notice redirects to path with a translated success flash.
func (s *Server) notice(c *gin.Context, path, key string, data map[string]any) {
	s.setFlashKey(c, flashNotice, key, data)
	s.redirect(c, path)
}

// fail redirects to path with the message for err. Errors without a domain
// code are logged and reported generically.
func (s *Server) fail(c *gin.Context, path string, err error) {
	s.setFlash(c, flashAlert, s.errorMessage(c, err))
	s.redirect(c, path)
}

func (s *Server) errorMessage(c *gin.Context, err error) string {
	code := domain.Code(err)
	if code == "" {
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("route", c.FullPath()),
			zap.String("request_id", c.GetString(ctxRequestID)),
		)
		code = "generic"
	}
	return s.translator.T(locale(c), "errors."+code, nil)
}

// fieldErrors translates validation failures for inline display.
func (s *Server) fieldErrors(c *gin.Context, v domain.ValidationErrors) map[string]string {
	out := make(map[string]string, len(v))
	for field, key := range v {
		var data map[string]any
		switch {
		case key == domain.ValidationTooShort:
			data = map[string]any{"Min": domain.MinPasswordLength}
		case key == domain.ValidationTooLong && field == "password":
			data = map[string]any{"Max": domain.MaxPasswordLength}
		case key == domain.ValidationTooLong:
			data = map[string]any{"Max": domain.MaxFieldLength}
		}
		out[field] = s.translator.T(locale(c), "validation."+key, data)
	}
	return out
}

func isDomain(err error) bool {
	return domain.Code(err) != ""
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// formIDs parses a repeated id field, skipping malformed values.
func formIDs(c *gin.Context, field string) []int64 {
	var ids []int64
	for _, v := range c.PostFormArray(field) {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
