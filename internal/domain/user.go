package domain

import "time"

// Role represents a user's access level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid checks if the role is one of the allowed values.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User represents a registered account.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Token     string
	CreatedAt time.Time
}

// Actor is the authenticated identity performing an action. It is the only
// part of a User the task core reads, and is always passed explicitly.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Actor returns the acting identity for this user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
