// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// PasswordReset is one recovery code issued for an email address. The code
// itself is never stored; only its SHA-256 hex digest is. Issuing a new
// code deletes every prior row for the email, so at most one row per email
// can verify at any time.
type PasswordReset struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	OTPHash   string    `db:"otp_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (p *PasswordReset) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}
