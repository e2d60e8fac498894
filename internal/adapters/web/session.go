package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventreg/internal/infrastructure/security"
)

const (
	userCookie  = "user_session"
	adminCookie = "admin_session"
)

func (s *Server) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", s.cookieSecure, true)
}

func (s *Server) startSession(c *gin.Context, userID int64, scope security.Scope) error {
	token, err := s.sessions.Issue(userID, scope)
	if err != nil {
		return err
	}
	name := userCookie
	if scope == security.ScopeAdmin {
		name = adminCookie
	}
	s.setCookie(c, name, token, int(s.sessions.TTL().Seconds()))
	return nil
}

func (s *Server) clearSession(c *gin.Context, name string) {
	s.setCookie(c, name, "", -1)
}
