// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FirstName    *string   `db:"first_name"`
	LastName     *string   `db:"last_name"`
	Role         string    `db:"role"`
	IsDisabled   bool      `db:"is_disabled"`
	AvatarURL    *string   `db:"avatar_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Patch holds the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	Role         *string
	IsDisabled   *bool
	AvatarURL    *string
}
