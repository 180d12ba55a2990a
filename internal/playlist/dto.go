// AngelaMos | 2026
// dto.go

package playlist

type CreatePlaylistRequest struct {
	Name        string   `json:"name"        validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"max=1000"`
	Occasion    string   `json:"occasion"    validate:"max=100"`
	SongList    []string `json:"song_list"   validate:"dive,required,url"`
	IsPublic    *bool    `json:"is_public"`
}

// UpdatePlaylistRequest uses pointers so absent fields are left untouched.
type UpdatePlaylistRequest struct {
	Name        *string   `json:"name"        validate:"omitempty,min=2,max=120"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Occasion    *string   `json:"occasion"    validate:"omitempty,max=100"`
	SongList    *[]string `json:"song_list"   validate:"omitempty,dive,required,url"`
	IsPublic    *bool     `json:"is_public"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
