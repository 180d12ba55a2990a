// AngelaMos | 2026
// repository.go

package playlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, playlist *Playlist) error
	GetByID(ctx context.Context, id string) (*Playlist, error)
	ListPublic(ctx context.Context) ([]Playlist, error)
	Update(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, playlist *Playlist) error {
	query := `
		INSERT INTO playlists (id, user_id, name, description, occasion,
		                       song_list, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, playlist, query,
		playlist.ID,
		playlist.UserID,
		playlist.Name,
		playlist.Description,
		playlist.Occasion,
		playlist.SongList,
		playlist.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("create playlist: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Playlist, error) {
	query := `
		SELECT id, user_id, name, description, occasion, song_list,
		       is_public, created_at, updated_at
		FROM playlists
		WHERE id = $1`

	var playlist Playlist
	err := r.db.GetContext(ctx, &playlist, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get playlist: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}

	return &playlist, nil
}

func (r *repository) ListPublic(ctx context.Context) ([]Playlist, error) {
	query := `
		SELECT id, user_id, name, description, occasion, song_list,
		       is_public, created_at, updated_at
		FROM playlists
		WHERE is_public = TRUE
		ORDER BY created_at DESC`

	var playlists []Playlist
	if err := r.db.SelectContext(ctx, &playlists, query); err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}

	return playlists, nil
}

func (r *repository) Update(ctx context.Context, playlist *Playlist) error {
	query := `
		UPDATE playlists
		SET name = $2, description = $3, occasion = $4, song_list = $5,
		    is_public = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &playlist.UpdatedAt, query,
		playlist.ID,
		playlist.Name,
		playlist.Description,
		playlist.Occasion,
		playlist.SongList,
		playlist.IsPublic,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update playlist: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM playlists WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete playlist: %w", core.ErrNotFound)
	}

	return nil
}
