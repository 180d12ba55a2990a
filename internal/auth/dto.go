// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Lastname string `json:"lastname" validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role"     validate:"omitempty,oneof=artist recruiter"`
}

// LoginRequest deliberately has no role field. The stored role wins; a
// client claiming a role at login time gets it ignored.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	OTP   string `json:"otp"   validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email,max=255"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
	ResetToken  string `json:"reset_token"  validate:"required"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Lastname   string    `json:"lastname"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type VerifyOTPResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token"`
}
