// AngelaMos | 2026
// service.go

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreatePostRequest,
) (*Post, error) {
	post := &Post{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.ToLower(req.Category),
		Genre:       strings.ToLower(req.Genre),
		Level:       strings.ToLower(req.Level),
		VideoURL:    req.VideoURL,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	userID string,
) ([]Post, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	return s.repo.ListAll(ctx)
}

// Delete removes a post after confirming ownership. Someone else's post is
// reported as forbidden, a missing one as not found.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.UserID != requesterID {
		return fmt.Errorf("delete post: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}
