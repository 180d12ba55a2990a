// AngelaMos | 2026
// service.go

package playlist

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
	req CreatePlaylistRequest,
) (*Playlist, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	playlist := &Playlist{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Occasion:    strings.TrimSpace(req.Occasion),
		SongList:    req.SongList,
		IsPublic:    isPublic,
	}

	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (s *Service) ListPublic(ctx context.Context) ([]Playlist, error) {
	return s.repo.ListPublic(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Playlist, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies partial changes after confirming the requester owns the
// playlist. A row that exists under someone else's account is forbidden,
// never hidden as missing.
func (s *Service) Update(
	ctx context.Context,
	id, requesterID string,
	req UpdatePlaylistRequest,
) (*Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if playlist.UserID != requesterID {
		return nil, fmt.Errorf("update playlist: %w", core.ErrForbidden)
	}

	if req.Name != nil {
		playlist.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		playlist.Description = strings.TrimSpace(*req.Description)
	}
	if req.Occasion != nil {
		playlist.Occasion = strings.TrimSpace(*req.Occasion)
	}
	if req.SongList != nil {
		playlist.SongList = *req.SongList
	}
	if req.IsPublic != nil {
		playlist.IsPublic = *req.IsPublic
	}

	if err := s.repo.Update(ctx, playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if playlist.UserID != requesterID {
		return fmt.Errorf("delete playlist: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}
