package users

import (
	"time"

	"github.com/schoolhub/schoolhub/internal/shared"
)

// User is an account record. SchoolID is set for school admins and empty for
// superadmins.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         shared.Role
	SchoolID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the client-facing view of a user; the password hash never leaves
// this package.
type Public struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     shared.Role `json:"role"`
	SchoolID string      `json:"schoolId,omitempty"`
}

// Public converts a stored user into its client-facing view.
func (u User) Public() Public {
	return Public{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, SchoolID: u.SchoolID}
}

// Principal derives the claim snapshot embedded into issued tokens.
func (u User) Principal() *shared.Principal {
	return &shared.Principal{UserID: u.ID, Role: u.Role, SchoolID: u.SchoolID}
}

// CreateUserInput carries the createUser payload.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     shared.Role
	SchoolID string
}
