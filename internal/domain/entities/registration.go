package entities

import "time"

// Registration is one attendee signed up for an event.
type Registration struct {
	ID            int64
	EventID       int64
	AttendeeName  string `json:"attendee_name" validate:"required,max=255"`
	AttendeeEmail string `json:"attendee_email" validate:"required,max=255,mailto"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Event is attached by admin listing and export queries, with OwnerEmail set.
	Event *Event `validate:"-"`
}
