package domain

import "time"

// UserRole role of an account
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// IsValid returns true if the role is known
func (r UserRole) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User represents an account. Accounts gate the admin surface and the
// "my bookings" view; bookings themselves carry denormalized contact data
// and exist independently of any account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin returns true if the account has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
