package entities

import "time"

// Role distinguishes regular users from admins. A NULL role in storage reads
// as RoleRegular.
type Role int

const (
	RoleRegular Role = 0
	RoleAdmin   Role = 1
)

// User is an account in either authentication scope.
type User struct {
	ID           int64
	Email        string `json:"email" validate:"required,max=255,account_email"`
	PasswordHash string `json:"-"`
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// OwnerCount is the number of events a user owns, keyed by email.
type OwnerCount struct {
	Email string
	Count int64
}
