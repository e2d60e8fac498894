package domain

import "errors"

// Error is a domain failure carrying a stable code. Adapters resolve the code to
// a user-facing message ("errors.<code>").
type Error struct {
	code string
	msg  string
}

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Code() string { return e.code }

// Code extracts the domain code from err, or "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}

// Domain errors.
var (
	ErrUserNotFound             = newError("user_not_found", "user not found")
	ErrInvalidCredentials       = newError("invalid_credentials", "invalid email or password")
	ErrAdminRequired            = newError("admin_required", "admin access required")
	ErrUnauthenticated          = newError("unauthenticated", "sign in required")
	ErrEventNotFound            = newError("event_not_found", "event not found")
	ErrRegistrationNotFound     = newError("registration_not_found", "registration not found")
	ErrRegistrationAccessDenied = newError("registration_access_denied", "registration belongs to another user's event")
	ErrNoEventsSelected         = newError("no_events_selected", "no events selected")
	ErrNoRegistrationsSelected  = newError("no_registrations_selected", "no registrations selected")
	ErrNoExportSelection        = newError("no_export_selection", "no registrations selected for export")
	ErrExportEmpty              = newError("no_export_rows", "no valid registrations found for export")
)
