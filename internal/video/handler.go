// AngelaMos | 2026
// handler.go

package video

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
	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.ListPublic)
		r.Get("/filter", h.Filter)
		r.Get("/category/{category}", h.ListByCategory)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/my", h.ListMine)
			r.Delete("/{videoID}", h.Delete)

			r.Group(func(r chi.Router) {
				r.Use(artistOnly)
				r.Post("/", h.Create)
				r.Post("/youtube", h.CreateExternal)
			})
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r)
}

// CreateExternal saves a link to an externally hosted video (YouTube etc.)
// instead of an uploaded file. Storage-wise the two are identical: both
// persist an opaque URL.
func (h *Handler) CreateExternal(w http.ResponseWriter, r *http.Request) {
	h.create(w, r)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	video, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, video)
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.ListPublic(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, VideoListResponse{Videos: videos, Total: len(videos)})
}

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	params := FilterParams{
		Category: r.URL.Query().Get("category"),
		Genre:    r.URL.Query().Get("genre"),
		Level:    r.URL.Query().Get("level"),
	}

	videos, err := h.service.Filter(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, VideoListResponse{Videos: videos, Total: len(videos)})
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		core.BadRequest(w, "category required")
		return
	}

	videos, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, VideoListResponse{Videos: videos, Total: len(videos)})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	videos, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, VideoListResponse{Videos: videos, Total: len(videos)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	videoID := chi.URLParam(r, "videoID")
	if videoID == "" {
		core.BadRequest(w, "video ID required")
		return
	}

	if err := h.service.Delete(r.Context(), videoID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "video")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot delete another user's video")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "Video deleted successfully"})
}
