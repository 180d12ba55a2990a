// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/talenthub/internal/auth"
	"github.com/carterperez-dev/talenthub/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create persists a new user. The role is validated here, server-side;
// an unrecognized role falls back to artist rather than failing so the
// registration flow matches the public sign-up form.
func (s *Service) Create(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	role := params.Role
	if !ValidRole(role) {
		role = RoleArtist
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(params.Email),
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		Lastname:     params.Lastname,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	email, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, strings.ToLower(email), passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update profile: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListTalent is the recruiter browse surface: artists only, optionally
// narrowed by a name/email search.
func (s *Service) ListTalent(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Role = RoleArtist
	return s.repo.List(ctx, params)
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Lastname:     u.Lastname,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
