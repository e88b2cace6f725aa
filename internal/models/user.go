package models

import "time"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// Stored in plaintext. Known weakness of the system, kept deliberately
	// rather than silently fixed; see DESIGN.md. The field must serialize
	// because the record store persists collections as JSON; handlers send
	// Redacted copies so it never reaches API responses.
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role"` // admin or user
	CreatedAt time.Time `json:"created_at"`
}

// Redacted returns a copy of the user with the password cleared, safe to
// serialize in an API response.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	// Bootstrap credentials created when the users collection is empty
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
