package entities

import "time"

type Event struct {
	ID          int64
	UserID      int64
	Name        string    `json:"name" validate:"required,max=255"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=255"`
	Description string    `json:"description" validate:"required"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// OwnerEmail and RegistrationCount are filled by listing queries.
	OwnerEmail        string
	RegistrationCount int64
	Registrations     []Registration `validate:"-"`
}
