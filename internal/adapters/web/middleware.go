package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/infrastructure/security"
)

const (
	requestIDHeader = "X-Request-ID"

	ctxLocale    = "locale"
	ctxUser      = "user"
	ctxAdmin     = "admin"
	ctxRequestID = "request_id"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) detectLocale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxLocale, s.translator.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// loadPrincipals resolves the session cookie of each scope. Stale or forged
// cookies are dropped.
func (s *Server) loadPrincipals() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := s.principal(c, adminCookie, security.ScopeAdmin); u != nil {
			if u.IsAdmin() {
				c.Set(ctxAdmin, u)
			} else {
				s.clearSession(c, adminCookie)
			}
		}
		if u := s.principal(c, userCookie, security.ScopeUser); u != nil {
			c.Set(ctxUser, u)
		}
		c.Next()
	}
}

func (s *Server) principal(c *gin.Context, cookie string, scope security.Scope) *entities.User {
	token, err := c.Cookie(cookie)
	if err != nil || token == "" {
		return nil
	}
	id, err := s.sessions.Parse(token, scope)
	if err != nil {
		s.clearSession(c, cookie)
		return nil
	}
	u, err := s.accounts.GetUser(c.Request.Context(), id)
	if err != nil {
		if !isDomain(err) {
			s.logger.Error("load session user", zap.Error(err), zap.String("request_id", c.GetString(ctxRequestID)))
		}
		s.clearSession(c, cookie)
		return nil
	}
	return u
}

// currentAdmin is the admin-scope principal, if any.
func currentAdmin(c *gin.Context) *entities.User {
	if v, ok := c.Get(ctxAdmin); ok {
		return v.(*entities.User)
	}
	return nil
}

// currentUser is the admin-scope principal when present, else the user-scope one.
func currentUser(c *gin.Context) *entities.User {
	if a := currentAdmin(c); a != nil {
		return a
	}
	if v, ok := c.Get(ctxUser); ok {
		return v.(*entities.User)
	}
	return nil
}

func locale(c *gin.Context) string {
	return c.GetString(ctxLocale)
}

func (s *Server) requireSignedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			s.setFlashKey(c, flashAlert, "errors."+domain.ErrUnauthenticated.Code(), nil)
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := domain.RequireAdmin(currentAdmin(c)); err != nil {
			s.setFlashKey(c, flashAlert, "errors."+domain.ErrAdminRequired.Code(), nil)
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
