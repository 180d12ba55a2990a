// AngelaMos | 2026
// service_test.go

package video

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type fakeRepository struct {
	videos map[string]*Video
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{videos: make(map[string]*Video)}
}

func (f *fakeRepository) Create(_ context.Context, video *Video) error {
	copied := *video
	f.videos[video.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Video, error) {
	video, ok := f.videos[id]
	if !ok {
		return nil, fmt.Errorf("get video: %w", core.ErrNotFound)
	}
	copied := *video
	return &copied, nil
}

func (f *fakeRepository) ListPublic(_ context.Context) ([]Video, error) {
	var out []Video
	for _, v := range f.videos {
		if v.IsPublic {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListByUser(
	_ context.Context,
	userID string,
) ([]Video, error) {
	var out []Video
	for _, v := range f.videos {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListByCategory(
	_ context.Context,
	category string,
) ([]Video, error) {
	var out []Video
	for _, v := range f.videos {
		if v.Category == category && v.IsPublic {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeRepository) Filter(
	_ context.Context,
	params FilterParams,
) ([]Video, error) {
	var out []Video
	for _, v := range f.videos {
		if !v.IsPublic {
			continue
		}
		if params.Category != "" && params.Category != "all" &&
			v.Category != params.Category {
			continue
		}
		if params.Genre != "" && params.Genre != "all" &&
			v.Genre != params.Genre {
			continue
		}
		if params.Level != "" && params.Level != "all" &&
			v.Level != params.Level {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.videos[id]; !ok {
		return fmt.Errorf("delete video: %w", core.ErrNotFound)
	}
	delete(f.videos, id)
	return nil
}

func createVideo(t *testing.T, svc *Service, userID string) *Video {
	t.Helper()

	video, err := svc.Create(context.Background(), userID, CreateVideoRequest{
		Title:    "Contemporary solo",
		Category: "Dance",
		Genre:    "Contemporary",
		Level:    "Advanced",
		VideoURL: "https://cdn.example.com/v/abc123",
	})
	require.NoError(t, err)
	return video
}

func TestCreateNormalizesTaxonomy(t *testing.T) {
	svc := NewService(newFakeRepository())

	video := createVideo(t, svc, "owner-1")
	assert.Equal(t, "dance", video.Category)
	assert.Equal(t, "contemporary", video.Genre)
	assert.Equal(t, "advanced", video.Level)
	assert.True(t, video.IsPublic)
	assert.NotEmpty(t, video.ID)
}

func TestDeleteByOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	video := createVideo(t, svc, "owner-1")

	err := svc.Delete(context.Background(), video.ID, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, repo.videos)
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	video := createVideo(t, svc, "owner-1")

	err := svc.Delete(context.Background(), video.ID, "intruder")
	require.ErrorIs(t, err, core.ErrForbidden)

	// The row must survive the rejected attempt.
	assert.Len(t, repo.videos, 1)
}

func TestDeleteMissingVideo(t *testing.T) {
	svc := NewService(newFakeRepository())

	err := svc.Delete(context.Background(), "no-such-id", "owner-1")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestFilterMatchesAllAxes(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	createVideo(t, svc, "owner-1")

	hidden := false
	other, err := svc.Create(context.Background(), "owner-2", CreateVideoRequest{
		Title:    "Vocal warmup",
		Category: "singing",
		Genre:    "jazz",
		Level:    "beginner",
		VideoURL: "https://cdn.example.com/v/def456",
		IsPublic: &hidden,
	})
	require.NoError(t, err)
	assert.False(t, other.IsPublic)

	got, err := svc.Filter(context.Background(), FilterParams{
		Category: "dance",
		Genre:    "all",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dance", got[0].Category)

	// Private videos never surface in the public filter.
	got, err = svc.Filter(context.Background(), FilterParams{Category: "singing"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
