// AngelaMos | 2026
// entity.go

package playlist

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SongList is a jsonb-backed ordered list of track URLs.
type SongList []string

func (s SongList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *SongList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("song list: cannot scan %T", src)
	}
}

type Playlist struct {
	ID          string    `db:"id"          json:"id"`
	UserID      string    `db:"user_id"     json:"user_id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description"`
	Occasion    string    `db:"occasion"    json:"occasion"`
	SongList    SongList  `db:"song_list"   json:"song_list"`
	IsPublic    bool      `db:"is_public"   json:"is_public"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}
