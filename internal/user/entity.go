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
	Name         string    `db:"name"`
	Lastname     string    `db:"lastname"`
	Role         string    `db:"role"`
	Avatar       string    `db:"avatar"`
	IsVerified   bool      `db:"is_verified"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	RoleArtist    = "artist"
	RoleRecruiter = "recruiter"

	// RoleAdmin is provisioned directly in the database for operators.
	// Registration never grants it; ValidRole deliberately excludes it.
	RoleAdmin = "admin"
)

func ValidRole(role string) bool {
	return role == RoleArtist || role == RoleRecruiter
}

func (u *User) IsArtist() bool {
	return u.Role == RoleArtist
}

func (u *User) IsRecruiter() bool {
	return u.Role == RoleRecruiter
}
