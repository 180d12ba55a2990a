// AngelaMos | 2026
// entity.go

package post

import "time"

// Post is an artist's published video post, the unit recruiters browse.
type Post struct {
	ID          string    `db:"id"          json:"id"`
	UserID      string    `db:"user_id"     json:"user_id"`
	Title       string    `db:"title"       json:"title"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category"    json:"category"`
	Genre       string    `db:"genre"       json:"genre"`
	Level       string    `db:"level"       json:"level"`
	VideoURL    string    `db:"video_url"   json:"video_url"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`

	// Author denormalization for listing responses; populated by the
	// repository join, never written back.
	AuthorName  string `db:"author_name"  json:"author_name,omitempty"`
	AuthorEmail string `db:"author_email" json:"author_email,omitempty"`
}
