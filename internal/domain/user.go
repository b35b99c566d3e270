package domain

import "time"

// Roles assignable to a user.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User Model. Email is stored lowercase; Balance is kept in sync with the
// transactions table only through the atomic apply path in the store.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Name      string    `gorm:"not null" json:"name"`              // Display name
	Email     string    `gorm:"uniqueIndex;not null" json:"email"` // Unique login email, lowercase
	Password  string    `gorm:"not null" json:"-"`                 // Bcrypt hash, never serialized
	Role      string    `gorm:"default:member" json:"role"`        // Role: admin or member
	Balance   int64     `gorm:"not null;default:0" json:"balance"` // Running balance in whole monetary units
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`  // Timestamp of creation
}

// IsAdmin reports whether the user may perform administrative operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity is the session principal produced by a successful login and
// carried in the session token. It never contains the password hash.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
