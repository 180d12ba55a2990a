// AngelaMos | 2026
// handler.go

package playlist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/playlist", func(r chi.Router) {
		r.Get("/", h.ListPublic)
		r.Get("/{playlistID}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Put("/{playlistID}", h.Update)
			r.Delete("/{playlistID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	playlist, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, playlist)
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.service.ListPublic(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, playlists)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistID")
	if playlistID == "" {
		core.BadRequest(w, "playlist ID required")
		return
	}

	playlist, err := h.service.GetByID(r.Context(), playlistID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "playlist")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, playlist)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	playlistID := chi.URLParam(r, "playlistID")
	if playlistID == "" {
		core.BadRequest(w, "playlist ID required")
		return
	}

	var req UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	playlist, err := h.service.Update(r.Context(), playlistID, userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "playlist")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot modify another user's playlist")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, playlist)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	playlistID := chi.URLParam(r, "playlistID")
	if playlistID == "" {
		core.BadRequest(w, "playlist ID required")
		return
	}

	if err := h.service.Delete(r.Context(), playlistID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "playlist")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot delete another user's playlist")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "Playlist deleted successfully"})
}
