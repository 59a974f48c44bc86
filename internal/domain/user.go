package domain

import "time"

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Stored hashed, never serialized
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// Viewer identifies who is looking at a resource. Read projections take
// the viewer explicitly instead of pulling identity from ambient request
// state; the zero value is the anonymous viewer.
type Viewer string

// Anonymous is the viewer for unauthenticated requests.
const Anonymous Viewer = ""

// IsAnonymous reports whether the viewer is unauthenticated.
func (v Viewer) IsAnonymous() bool {
	return v == Anonymous
}

// UserID returns the viewer's user ID, or empty for anonymous viewers.
func (v Viewer) UserID() string {
	return string(v)
}
