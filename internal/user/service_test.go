// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/auth"
	"github.com/carterperez-dev/talenthub/internal/core"
)

type fakeRepository struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (f *fakeRepository) Create(_ context.Context, user *User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepository) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepository) UpdateProfile(_ context.Context, user *User) error {
	stored, ok := f.byID[user.ID]
	if !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	stored.Name = user.Name
	stored.Lastname = user.Lastname
	stored.Avatar = user.Avatar
	return nil
}

func (f *fakeRepository) UpdatePassword(
	_ context.Context,
	email, passwordHash string,
) error {
	user, ok := f.byEmail[email]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepository) List(
	_ context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range f.byID {
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepository) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func TestCreateValidatesRoleServerSide(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantRole string
	}{
		{"artist", "artist", "artist"},
		{"recruiter", "recruiter", "recruiter"},
		{"empty falls back", "", "artist"},
		{"admin not self-assignable", "admin", "artist"},
		{"garbage falls back", "superuser", "artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepository())

			info, err := svc.Create(context.Background(), auth.CreateUserParams{
				Email:        "User@Example.com",
				PasswordHash: "hash",
				Name:         "Nina",
				Lastname:     "Simone",
				Role:         tt.role,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, info.Role)
			assert.Equal(t, "user@example.com", info.Email)
		})
	}
}

func TestGetByEmailLowercases(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), auth.CreateUserParams{
		Email:        "Mixed@Case.com",
		PasswordHash: "hash",
		Name:         "A",
		Lastname:     "B",
		Role:         "artist",
	})
	require.NoError(t, err)

	info, err := svc.GetByEmail(context.Background(), "MIXED@CASE.COM")
	require.NoError(t, err)
	assert.Equal(t, "mixed@case.com", info.Email)
}

func TestListTalentForcesArtistRole(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	for _, role := range []string{"artist", "recruiter"} {
		_, err := svc.Create(context.Background(), auth.CreateUserParams{
			Email:        role + "@example.com",
			PasswordHash: "hash",
			Name:         "N",
			Lastname:     "S",
			Role:         role,
		})
		require.NoError(t, err)
	}

	users, total, err := svc.ListTalent(
		context.Background(),
		ListUsersParams{Role: "recruiter"},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, RoleArtist, users[0].Role)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	info, err := svc.Create(context.Background(), auth.CreateUserParams{
		Email:        "nina@example.com",
		PasswordHash: "hash",
		Name:         "Nina",
		Lastname:     "Simone",
		Role:         "artist",
	})
	require.NoError(t, err)

	avatar := "https://cdn.example.com/a/nina.png"
	updated, err := svc.UpdateProfile(
		context.Background(),
		info.ID,
		UpdateProfileRequest{Avatar: &avatar},
	)
	require.NoError(t, err)
	assert.Equal(t, avatar, updated.Avatar)
	assert.Equal(t, "Nina", updated.Name)
}

func TestGetProfileRequiresIdentity(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.GetProfile(context.Background(), "")
	require.ErrorIs(t, err, core.ErrUnauthorized)
}
