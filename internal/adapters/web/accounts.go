package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/infrastructure/security"
	"eventreg/internal/ports/input"
)

type signUpForm struct {
	Email                string `form:"email"`
	Password             string `form:"password"`
	PasswordConfirmation string `form:"password_confirmation"`
	SecretCode           string `form:"secret_code"`
}

func (f signUpForm) input() input.SignUp {
	return input.SignUp{
		Email:                f.Email,
		Password:             f.Password,
		PasswordConfirmation: f.PasswordConfirmation,
		SecretCode:           f.SecretCode,
	}
}

type signInForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (s *Server) home(c *gin.Context) {
	switch {
	case currentAdmin(c) != nil:
		s.redirect(c, "/admin")
	case currentUser(c) != nil:
		s.redirect(c, "/events")
	default:
		s.render(c, http.StatusOK, "home", gin.H{"Title": "Welcome"})
	}
}

func (s *Server) newUser(c *gin.Context) {
	s.render(c, http.StatusOK, "users/register", gin.H{"Title": "Sign up", "Form": signUpForm{}})
}

func (s *Server) createUser(c *gin.Context) {
	var form signUpForm
	_ = c.ShouldBind(&form)
	user, err := s.accounts.RegisterUser(c.Request.Context(), form.input())
	if s.signUpFailed(c, "users/register", form, err) {
		return
	}
	s.signIn(c, user, security.ScopeUser, "/events", "flash.signed_up")
}

func (s *Server) newAdmin(c *gin.Context) {
	s.render(c, http.StatusOK, "admin/register", gin.H{"Title": "Admin sign up", "Form": signUpForm{}})
}

func (s *Server) createAdmin(c *gin.Context) {
	var form signUpForm
	_ = c.ShouldBind(&form)
	user, err := s.accounts.RegisterAdmin(c.Request.Context(), form.input())
	if s.signUpFailed(c, "admin/register", form, err) {
		return
	}
	s.signIn(c, user, security.ScopeAdmin, "/admin", "flash.admin_signed_up")
}

// signUpFailed re-renders page with the form when err is set.
func (s *Server) signUpFailed(c *gin.Context, page string, form signUpForm, err error) bool {
	if err == nil {
		return false
	}
	form.Password, form.PasswordConfirmation, form.SecretCode = "", "", ""
	data := gin.H{"Title": "Sign up", "Form": form}
	if v, ok := domain.AsValidation(err); ok {
		data["Errors"] = s.fieldErrors(c, v)
	} else {
		data["Flash"] = &flash{Kind: flashAlert, Message: s.errorMessage(c, err)}
	}
	s.render(c, http.StatusUnprocessableEntity, page, data)
	return true
}

func (s *Server) newUserSession(c *gin.Context) {
	s.render(c, http.StatusOK, "users/sign_in", gin.H{"Title": "Sign in", "Form": signInForm{}})
}

func (s *Server) createUserSession(c *gin.Context) {
	var form signInForm
	_ = c.ShouldBind(&form)
	user, err := s.accounts.Authenticate(c.Request.Context(), form.Email, form.Password)
	if s.signInFailed(c, "users/sign_in", form, err) {
		return
	}
	s.signIn(c, user, security.ScopeUser, "/events", "flash.signed_in")
}

func (s *Server) newAdminSession(c *gin.Context) {
	s.render(c, http.StatusOK, "admin/login", gin.H{"Title": "Admin sign in", "Form": signInForm{}})
}

func (s *Server) createAdminSession(c *gin.Context) {
	var form signInForm
	_ = c.ShouldBind(&form)
	user, err := s.accounts.AuthenticateAdmin(c.Request.Context(), form.Email, form.Password)
	if s.signInFailed(c, "admin/login", form, err) {
		return
	}
	s.signIn(c, user, security.ScopeAdmin, "/admin", "flash.signed_in")
}

func (s *Server) signInFailed(c *gin.Context, page string, form signInForm, err error) bool {
	if err == nil {
		return false
	}
	status := http.StatusUnprocessableEntity
	if errors.Is(err, domain.ErrAdminRequired) {
		status = http.StatusForbidden
	}
	form.Password = ""
	s.render(c, status, page, gin.H{
		"Title": "Sign in",
		"Form":  form,
		"Flash": &flash{Kind: flashAlert, Message: s.errorMessage(c, err)},
	})
	return true
}

func (s *Server) signIn(c *gin.Context, user *entities.User, scope security.Scope, path, key string) {
	if err := s.startSession(c, user.ID, scope); err != nil {
		s.fail(c, "/", err)
		return
	}
	s.notice(c, path, key, nil)
}

func (s *Server) destroyUserSession(c *gin.Context) {
	s.clearSession(c, userCookie)
	s.notice(c, "/", "flash.signed_out", nil)
}

func (s *Server) destroyAdminSession(c *gin.Context) {
	s.clearSession(c, adminCookie)
	s.notice(c, "/", "flash.signed_out", nil)
}
