// AngelaMos | 2026
// handler.go

package post

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
	artistOnly func(http.Handler) http.Handler,
) {
	r.Route("/posts", func(r chi.Router) {
		r.Get("/videos", h.ListAll)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/", h.ListMine)
			r.Delete("/{postID}", h.Delete)

			r.Group(func(r chi.Router) {
				r.Use(artistOnly)
				r.Post("/", h.Create)
			})
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	post, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, CreatePostResponse{
		Message: "Video uploaded successfully",
		Post:    *post,
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	posts, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, posts)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, posts)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	postID := chi.URLParam(r, "postID")
	if postID == "" {
		core.BadRequest(w, "post ID required")
		return
	}

	if err := h.service.Delete(r.Context(), postID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "post")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot delete another user's post")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "Post deleted successfully"})
}
