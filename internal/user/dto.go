// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=2,max=50"`
	Lastname *string `json:"lastname,omitempty" validate:"omitempty,min=2,max=50"`
	Avatar   *string `json:"avatar,omitempty"   validate:"omitempty,url,max=500"`
}

// UserResponse is the public projection of a user. The password hash is
// never part of any response shape.
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Lastname   string    `json:"lastname"`
	Role       string    `json:"role"`
	Avatar     string    `json:"avatar,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Lastname:   u.Lastname,
		Role:       u.Role,
		Avatar:     u.Avatar,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
