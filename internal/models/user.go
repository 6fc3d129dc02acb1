package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a user account in the database.
type User struct {
	ID            int64     `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Role          Role      `json:"role" db:"role"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSettings holds per-user preferences. Zero or one row per account.
type UserSettings struct {
	UserID             int64     `json:"user_id" db:"user_id"`
	Theme              string    `json:"theme" db:"theme"`
	Locale             string    `json:"locale" db:"locale"`
	EmailNotifications bool      `json:"email_notifications" db:"email_notifications"`
	ReminderLeadMins   int       `json:"reminder_lead_minutes" db:"reminder_lead_minutes"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the settings used before a user has saved any.
func DefaultSettings(userID int64) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		Theme:              "light",
		Locale:             "en",
		EmailNotifications: true,
		ReminderLeadMins:   30,
	}
}

// Notification is a per-user inbox entry.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Read      bool      `json:"read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CalendarEvent is a user-scoped calendar entry.
type CalendarEvent struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time `json:"ends_at" db:"ends_at"`
	AllDay      bool      `json:"all_day" db:"all_day"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
