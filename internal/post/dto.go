// AngelaMos | 2026
// dto.go

package post

type CreatePostRequest struct {
	Title       string `json:"title"       validate:"required,max=150"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category"    validate:"required"`
	Genre       string `json:"genre"       validate:"required"`
	Level       string `json:"level"       validate:"required"`
	VideoURL    string `json:"video_url"   validate:"required,url"`
}

type CreatePostResponse struct {
	Message string `json:"message"`
	Post    Post   `json:"post"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
