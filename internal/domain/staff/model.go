package staff

import (
	"time"

	"github.com/google/uuid"
)

// Staff maps to the staff table: the people who operate the system, as
// opposed to providers who see patients.
type Staff struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	FirstName string     `db:"first_name" json:"firstName"`
	LastName  string     `db:"last_name" json:"lastName"`
	JobTitle  *string    `db:"job_title" json:"jobTitle,omitempty"`
	Phone     *string    `db:"phone" json:"phone,omitempty"`
	Email     *string    `db:"email" json:"email,omitempty"`
	UserID    *uuid.UUID `db:"user_id" json:"userId,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

// User is a login account. Role is either "admin" or "staff".
// PasswordHash only ever holds a bcrypt hash; plaintext is never stored.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	StaffID      *uuid.UUID `db:"staff_id" json:"staffId,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}
