package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/pkg/tz"
)

var dateLayouts = []string{inputLayout, "2006-01-02 15:04", "2006-01-02"}

type eventForm struct {
	Name        string `form:"name"`
	Date        string `form:"date"`
	Location    string `form:"location"`
	Description string `form:"description"`
}

func eventFormFrom(e *entities.Event) eventForm {
	f := eventForm{Name: e.Name, Location: e.Location, Description: e.Description}
	if !e.Date.IsZero() {
		f.Date = e.Date.In(tz.Local).Format(inputLayout)
	}
	return f
}

// input parses the date in the application time zone. ok is false when a
// non-empty date could not be parsed.
func (f eventForm) input() (in input.EventInput, ok bool) {
	in = input.EventInput{Name: f.Name, Location: f.Location, Description: f.Description}
	raw := strings.TrimSpace(f.Date)
	if raw == "" {
		return in, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, tz.Local); err == nil {
			in.Date = t
			return in, true
		}
	}
	return in, false
}

func eventPath(id int64) string {
	return "/events/" + strconv.FormatInt(id, 10)
}

func (s *Server) listEvents(c *gin.Context) {
	events, err := s.events.ListEvents(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, "/", err)
		return
	}
	s.render(c, http.StatusOK, "events/index", gin.H{"Title": "Events", "Events": events})
}

func (s *Server) showEvent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrEventNotFound)
		return
	}
	event, err := s.events.GetEvent(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	s.renderEvent(c, http.StatusOK, event, registrationForm{}, nil)
}

// renderEvent shows the event page with its new-registration form.
func (s *Server) renderEvent(c *gin.Context, status int, event *entities.Event, form registrationForm, errs map[string]string) {
	s.render(c, status, "events/show", gin.H{
		"Title":  event.Name,
		"Event":  event,
		"Form":   form,
		"Errors": errs,
	})
}

func (s *Server) newEvent(c *gin.Context) {
	s.render(c, http.StatusOK, "events/new", gin.H{"Title": "New event", "Form": eventForm{}})
}

func (s *Server) createEvent(c *gin.Context) {
	var form eventForm
	_ = c.ShouldBind(&form)
	in, dateOK := form.input()
	event, err := s.events.CreateEvent(c.Request.Context(), currentUser(c), in)
	if v, ok := domain.AsValidation(err); ok {
		s.renderEventForm(c, "events/new", "New event", 0, form, v, dateOK)
		return
	}
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	s.notice(c, eventPath(event.ID), "flash.event_created", nil)
}

func (s *Server) editEvent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrEventNotFound)
		return
	}
	event, err := s.events.GetEvent(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	s.render(c, http.StatusOK, "events/edit", gin.H{"Title": "Edit event", "EventID": event.ID, "Form": eventFormFrom(event)})
}

func (s *Server) updateEvent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrEventNotFound)
		return
	}
	var form eventForm
	_ = c.ShouldBind(&form)
	in, dateOK := form.input()
	_, err := s.events.UpdateEvent(c.Request.Context(), currentUser(c), id, in)
	if v, ok := domain.AsValidation(err); ok {
		s.renderEventForm(c, "events/edit", "Edit event", id, form, v, dateOK)
		return
	}
	if err != nil {
		s.fail(c, "/events", err)
		return
	}
	s.notice(c, eventPath(id), "flash.event_updated", nil)
}

func (s *Server) renderEventForm(c *gin.Context, page, title string, id int64, form eventForm, v domain.ValidationErrors, dateOK bool) {
	if !dateOK {
		v["date"] = domain.ValidationInvalid
	}
	s.render(c, http.StatusUnprocessableEntity, page, gin.H{
		"Title":   title,
		"EventID": id,
		"Form":    form,
		"Errors":  s.fieldErrors(c, v),
	})
}

func (s *Server) deleteEvent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.fail(c, "/events", domain.ErrEventNotFound)
		return
	}
	if err := s.events.DeleteEvent(c.Request.Context(), currentUser(c), id); err != nil {
		s.fail(c, "/events", err)
		return
	}
	recordsDeleted.WithLabelValues("event").Inc()
	s.notice(c, "/events", "flash.event_deleted", nil)
}
