// AngelaMos | 2026
// repository.go

package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	ListByUser(ctx context.Context, userID string) ([]Post, error)
	ListAll(ctx context.Context) ([]Post, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (id, user_id, title, description, category, genre,
		                   level, video_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, post, query,
		post.ID,
		post.UserID,
		post.Title,
		post.Description,
		post.Category,
		post.Genre,
		post.Level,
		post.VideoURL,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Post, error) {
	query := `
		SELECT id, user_id, title, description, category, genre, level,
		       video_url, created_at, updated_at
		FROM posts
		WHERE id = $1`

	var post Post
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Post, error) {
	query := `
		SELECT p.id, p.user_id, p.title, p.description, p.category, p.genre,
		       p.level, p.video_url, p.created_at, p.updated_at,
		       u.name AS author_name, u.email AS author_email
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`

	var posts []Post
	if err := r.db.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}

	return posts, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Post, error) {
	query := `
		SELECT p.id, p.user_id, p.title, p.description, p.category, p.genre,
		       p.level, p.video_url, p.created_at, p.updated_at,
		       u.name AS author_name, u.email AS author_email
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	var posts []Post
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}

	return nil
}
