// AngelaMos | 2026
// service.go

package video

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
	req CreateVideoRequest,
) (*Video, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	video := &Video{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.ToLower(req.Category),
		Genre:        strings.ToLower(req.Genre),
		Level:        strings.ToLower(req.Level),
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		IsPublic:     isPublic,
	}

	if err := s.repo.Create(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

func (s *Service) ListPublic(ctx context.Context) ([]Video, error) {
	return s.repo.ListPublic(ctx)
}

func (s *Service) ListMine(
	ctx context.Context,
	userID string,
) ([]Video, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByCategory(
	ctx context.Context,
	category string,
) ([]Video, error) {
	return s.repo.ListByCategory(ctx, strings.ToLower(category))
}

func (s *Service) Filter(
	ctx context.Context,
	params FilterParams,
) ([]Video, error) {
	return s.repo.Filter(ctx, params)
}

// Delete removes a video after confirming the requester owns it. A video
// that exists but belongs to someone else is always reported as forbidden,
// never as missing.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if video.UserID != requesterID {
		return fmt.Errorf("delete video: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}
