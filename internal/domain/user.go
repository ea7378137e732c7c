package domain

import "time"

// User represents a user account. PasswordHash holds a bcrypt digest of the
// empty string for accounts provisioned through Google OAuth.
type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
