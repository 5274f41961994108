package models

import "time"

// UserRole mirrors the role column of the users table.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleSeller UserRole = "SELLER"
)

// User represents a row in the users table.
type User struct {
	UserID       string   `json:"userID" db:"user_id"`
	Name         string   `json:"name" db:"name"`
	Email        string   `json:"email" db:"email"`
	Role         UserRole `json:"role" db:"role"`
	PasswordHash string   `json:"-" db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
