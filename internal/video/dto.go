// AngelaMos | 2026
// dto.go

package video

type CreateVideoRequest struct {
	Title        string `json:"title"         validate:"required,max=150"`
	Description  string `json:"description"   validate:"max=2000"`
	Category     string `json:"category"      validate:"required"`
	Genre        string `json:"genre"         validate:"required"`
	Level        string `json:"level"         validate:"required"`
	VideoURL     string `json:"video_url"     validate:"required,url"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
	IsPublic     *bool  `json:"is_public"`
}

// FilterParams narrows the public listing. "all" or empty means no
// constraint on that axis.
type FilterParams struct {
	Category string
	Genre    string
	Level    string
}

type VideoListResponse struct {
	Videos []Video `json:"videos"`
	Total  int     `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
