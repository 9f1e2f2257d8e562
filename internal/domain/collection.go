package domain

import "time"

// Collection is one (user, game) entry of a user's BGG collection. Rows are
// written by the ingestion pipeline and read-only for the recommendation core.
type Collection struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserName  string    `json:"user" gorm:"index:idx_collection_user_game,unique;not null"`
	GameID    uint      `json:"game" gorm:"index:idx_collection_user_game,unique;not null"`
	Rating    *float64  `json:"rating" gorm:"index"`
	Owned     bool      `json:"owned" gorm:"index"`
	Wishlist  *int      `json:"wishlist" gorm:"index"`
	PlayCount int       `json:"play_count" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is keyed by BGG user name. Lookups are case-insensitive.
type User struct {
	Name      string     `json:"name" gorm:"primaryKey"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"index"`
}
