package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventreg/internal/domain"
	"eventreg/internal/ports/input"
)

type registrationForm struct {
	AttendeeName  string `form:"attendee_name"`
	AttendeeEmail string `form:"attendee_email"`
}

func (f registrationForm) input() input.RegistrationInput {
	return input.RegistrationInput{AttendeeName: f.AttendeeName, AttendeeEmail: f.AttendeeEmail}
}

func (s *Server) createRegistration(c *gin.Context) {
	eventID, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrEventNotFound)
		return
	}
	var form registrationForm
	_ = c.ShouldBind(&form)
	ctx := c.Request.Context()
	_, err := s.registrations.CreateRegistration(ctx, currentUser(c), eventID, form.input())
	if v, ok := domain.AsValidation(err); ok {
		event, gerr := s.events.GetEvent(ctx, currentUser(c), eventID)
		if gerr != nil {
			s.fail(c, "/events", gerr)
			return
		}
		s.renderEvent(c, http.StatusUnprocessableEntity, event, form, s.fieldErrors(c, v))
		return
	}
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	s.notice(c, eventPath(eventID), "flash.registration_created", nil)
}

func (s *Server) editRegistration(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrRegistrationNotFound)
		return
	}
	reg, err := s.registrations.GetRegistration(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	s.render(c, http.StatusOK, "registrations/edit", gin.H{
		"Title":        "Edit registration",
		"Registration": reg,
		"Form":         registrationForm{AttendeeName: reg.AttendeeName, AttendeeEmail: reg.AttendeeEmail},
	})
}

func (s *Server) updateRegistration(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrRegistrationNotFound)
		return
	}
	var form registrationForm
	_ = c.ShouldBind(&form)
	reg, err := s.registrations.UpdateRegistration(c.Request.Context(), currentUser(c), id, form.input())
	var v domain.ValidationErrors
	if errors.As(err, &v) && reg != nil {
		s.render(c, http.StatusUnprocessableEntity, "registrations/edit", gin.H{
			"Title":        "Edit registration",
			"Registration": reg,
			"Form":         form,
			"Errors":       s.fieldErrors(c, v),
		})
		return
	}
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	s.notice(c, eventPath(reg.EventID), "flash.registration_updated", nil)
}

func (s *Server) deleteRegistration(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrRegistrationNotFound)
		return
	}
	eventID, err := s.registrations.DeleteRegistration(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	recordsDeleted.WithLabelValues("registration").Inc()
	s.notice(c, eventPath(eventID), "flash.registration_deleted", nil)
}
