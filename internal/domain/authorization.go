package domain

import "eventreg/internal/domain/entities"

// CanManageEvent reports whether actor may view or change e: admins may touch
// any event, regular users only the events they own.
func CanManageEvent(actor *entities.User, e *entities.Event) bool {
	if actor == nil || e == nil {
		return false
	}
	return actor.IsAdmin() || e.UserID == actor.ID
}

// CanManageRegistration applies the event gate through the event r belongs to.
func CanManageRegistration(actor *entities.User, e *entities.Event, r *entities.Registration) bool {
	if r == nil || e == nil || r.EventID != e.ID {
		return false
	}
	return CanManageEvent(actor, e)
}

// EventOwnerScope returns the owner id listings must be restricted to, or 0
// when actor may see every event. Without an actor the scope matches nothing.
func EventOwnerScope(actor *entities.User) int64 {
	if actor == nil {
		return -1
	}
	if actor.IsAdmin() {
		return 0
	}
	return actor.ID
}

// RequireAdmin fails with ErrAdminRequired unless actor is an admin.
func RequireAdmin(actor *entities.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
