package model

import "time"

const (
	// RoleUser is the role assigned to every account at signup.
	RoleUser = "user"
	// RoleAdmin grants access to the user-management endpoints.
	RoleAdmin = "admin"
)

// User represents a model for a user.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
