package models

import (
	"time"
)

// Role constants
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"` // Email is unique and required
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"hashed_password,omitempty"` // OAuth-only users have empty password
	Role         string    `bson:"role"`                      // "student", "teacher" or "admin"
	IsActive     bool      `bson:"is_active"`
	IsSuperuser  bool      `bson:"is_superuser"`
	AuthSource   string    `bson:"auth_source"` // "local" or "google"
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// View is the non-sensitive representation returned to clients
type UserView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// View returns the client-facing projection of the user
func (u *User) View() UserView {
	return UserView{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
	}
}
