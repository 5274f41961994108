package domain

import "time"

// UserRole controls what management actions a user may perform.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleSeller UserRole = "SELLER"
)

// User represents an application user. Sellers create and finalize sales;
// admins additionally manage users and may delete records.
type User struct {
	UserID string   `json:"userID"` // Primary Key (e.g., UUID)
	Name   string   `json:"name"`
	Email  string   `json:"email"` // Unique, login identifier
	Role   UserRole `json:"role"`  // Default: SELLER
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
