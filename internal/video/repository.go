// AngelaMos | 2026
// repository.go

package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, video *Video) error
	GetByID(ctx context.Context, id string) (*Video, error)
	ListPublic(ctx context.Context) ([]Video, error)
	ListByUser(ctx context.Context, userID string) ([]Video, error)
	ListByCategory(ctx context.Context, category string) ([]Video, error)
	Filter(ctx context.Context, params FilterParams) ([]Video, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const videoColumns = `id, user_id, title, description, category, genre, level,
	video_url, thumbnail_url, views, is_public, created_at, updated_at`

func (r *repository) Create(ctx context.Context, video *Video) error {
	query := `
		INSERT INTO videos (id, user_id, title, description, category, genre,
		                    level, video_url, thumbnail_url, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING views, created_at, updated_at`

	err := r.db.GetContext(ctx, video, query,
		video.ID,
		video.UserID,
		video.Title,
		video.Description,
		video.Category,
		video.Genre,
		video.Level,
		video.VideoURL,
		video.ThumbnailURL,
		video.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Video, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM videos WHERE id = $1`,
		videoColumns,
	)

	var video Video
	err := r.db.GetContext(ctx, &video, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get video: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}

	return &video, nil
}

func (r *repository) ListPublic(ctx context.Context) ([]Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos
		WHERE is_public = TRUE
		ORDER BY created_at DESC`,
		videoColumns)

	var videos []Video
	if err := r.db.SelectContext(ctx, &videos, query); err != nil {
		return nil, fmt.Errorf("list public videos: %w", err)
	}

	return videos, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		videoColumns)

	var videos []Video
	if err := r.db.SelectContext(ctx, &videos, query, userID); err != nil {
		return nil, fmt.Errorf("list user videos: %w", err)
	}

	return videos, nil
}

func (r *repository) ListByCategory(
	ctx context.Context,
	category string,
) ([]Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos
		WHERE category = $1 AND is_public = TRUE
		ORDER BY created_at DESC`,
		videoColumns)

	var videos []Video
	if err := r.db.SelectContext(ctx, &videos, query, category); err != nil {
		return nil, fmt.Errorf("list videos by category: %w", err)
	}

	return videos, nil
}

func (r *repository) Filter(
	ctx context.Context,
	params FilterParams,
) ([]Video, error) {
	conditions := []string{"is_public = TRUE"}
	var args []any
	argIdx := 1

	if params.Category != "" && params.Category != "all" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, strings.ToLower(params.Category))
		argIdx++
	}

	if params.Genre != "" && params.Genre != "all" {
		conditions = append(conditions, fmt.Sprintf("genre = $%d", argIdx))
		args = append(args, strings.ToLower(params.Genre))
		argIdx++
	}

	if params.Level != "" && params.Level != "all" {
		conditions = append(conditions, fmt.Sprintf("level = $%d", argIdx))
		args = append(args, strings.ToLower(params.Level))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM videos
		WHERE %s
		ORDER BY created_at DESC`,
		videoColumns, strings.Join(conditions, " AND "))

	var videos []Video
	if err := r.db.SelectContext(ctx, &videos, query, args...); err != nil {
		return nil, fmt.Errorf("filter videos: %w", err)
	}

	return videos, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete video: %w", core.ErrNotFound)
	}

	return nil
}
