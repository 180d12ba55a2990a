// AngelaMos | 2026
// entity.go

package video

import "time"

// Video is an artist upload. The media itself lives with an external
// provider; only opaque URLs are stored here.
type Video struct {
	ID           string    `db:"id"            json:"id"`
	UserID       string    `db:"user_id"       json:"user_id"`
	Title        string    `db:"title"         json:"title"`
	Description  string    `db:"description"   json:"description"`
	Category     string    `db:"category"      json:"category"`
	Genre        string    `db:"genre"         json:"genre"`
	Level        string    `db:"level"         json:"level"`
	VideoURL     string    `db:"video_url"     json:"video_url"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail_url"`
	Views        int       `db:"views"         json:"views"`
	IsPublic     bool      `db:"is_public"     json:"is_public"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}
