// AngelaMos | 2026
// service_test.go

package playlist

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type fakeRepository struct {
	playlists map[string]*Playlist
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{playlists: make(map[string]*Playlist)}
}

func (f *fakeRepository) Create(_ context.Context, playlist *Playlist) error {
	copied := *playlist
	f.playlists[playlist.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(
	_ context.Context,
	id string,
) (*Playlist, error) {
	playlist, ok := f.playlists[id]
	if !ok {
		return nil, fmt.Errorf("get playlist: %w", core.ErrNotFound)
	}
	copied := *playlist
	return &copied, nil
}

func (f *fakeRepository) ListPublic(_ context.Context) ([]Playlist, error) {
	var out []Playlist
	for _, p := range f.playlists {
		if p.IsPublic {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, playlist *Playlist) error {
	if _, ok := f.playlists[playlist.ID]; !ok {
		return fmt.Errorf("update playlist: %w", core.ErrNotFound)
	}
	copied := *playlist
	f.playlists[playlist.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.playlists[id]; !ok {
		return fmt.Errorf("delete playlist: %w", core.ErrNotFound)
	}
	delete(f.playlists, id)
	return nil
}

func createPlaylist(t *testing.T, svc *Service, userID string) *Playlist {
	t.Helper()

	playlist, err := svc.Create(context.Background(), userID, CreatePlaylistRequest{
		Name:     "Wedding set",
		Occasion: "wedding",
		SongList: []string{
			"https://audio.example.com/t/1",
			"https://audio.example.com/t/2",
		},
	})
	require.NoError(t, err)
	return playlist
}

func TestCreatePlaylist(t *testing.T) {
	svc := NewService(newFakeRepository())

	playlist := createPlaylist(t, svc, "owner-1")
	assert.Equal(t, "Wedding set", playlist.Name)
	assert.Len(t, playlist.SongList, 2)
	assert.True(t, playlist.IsPublic)
}

func TestUpdateByOwnerAppliesPartialChanges(t *testing.T) {
	svc := NewService(newFakeRepository())
	playlist := createPlaylist(t, svc, "owner-1")

	newName := "Reception set"
	songs := []string{"https://audio.example.com/t/3"}
	updated, err := svc.Update(
		context.Background(),
		playlist.ID,
		"owner-1",
		UpdatePlaylistRequest{Name: &newName, SongList: &songs},
	)
	require.NoError(t, err)
	assert.Equal(t, "Reception set", updated.Name)
	assert.Equal(t, SongList(songs), updated.SongList)
	// Untouched fields survive.
	assert.Equal(t, "wedding", updated.Occasion)
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	playlist := createPlaylist(t, svc, "owner-1")

	newName := "Hijacked"
	_, err := svc.Update(
		context.Background(),
		playlist.ID,
		"intruder",
		UpdatePlaylistRequest{Name: &newName},
	)
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Equal(t, "Wedding set", repo.playlists[playlist.ID].Name)
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	playlist := createPlaylist(t, svc, "owner-1")

	err := svc.Delete(context.Background(), playlist.ID, "intruder")
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Len(t, repo.playlists, 1)
}

func TestDeleteMissingPlaylist(t *testing.T) {
	svc := NewService(newFakeRepository())

	err := svc.Delete(context.Background(), "no-such-id", "owner-1")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestSongListJSONRoundTrip(t *testing.T) {
	original := SongList{
		"https://audio.example.com/t/1",
		"https://audio.example.com/t/2",
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned SongList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)

	var empty SongList
	nilValue, err := SongList(nil).Value()
	require.NoError(t, err)
	require.NoError(t, empty.Scan(nilValue))
	assert.Empty(t, empty)
}
