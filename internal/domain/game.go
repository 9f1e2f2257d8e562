package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Game is a catalog entry keyed by its BoardGameGeek id. Rating and ranking
// fields are nullable because freshly scraped games may not have them yet.
type Game struct {
	BGGID       uint           `json:"bgg_id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"index;not null"`
	AltName     datatypes.JSON `json:"alt_name" gorm:"type:jsonb"`
	Year        *int           `json:"year" gorm:"index"`
	Description string         `json:"description"`

	URL          string         `json:"url"`
	ImageURL     datatypes.JSON `json:"image_url" gorm:"type:jsonb"`
	VideoURL     datatypes.JSON `json:"video_url" gorm:"type:jsonb"`
	ExternalLink datatypes.JSON `json:"external_link" gorm:"type:jsonb"`
	ListPrice    string         `json:"list_price"`

	MinPlayers     *int     `json:"min_players" gorm:"index"`
	MaxPlayers     *int     `json:"max_players" gorm:"index"`
	MinPlayersRec  *int     `json:"min_players_rec" gorm:"index"`
	MaxPlayersRec  *int     `json:"max_players_rec" gorm:"index"`
	MinPlayersBest *int     `json:"min_players_best" gorm:"index"`
	MaxPlayersBest *int     `json:"max_players_best" gorm:"index"`
	MinAge         *int     `json:"min_age" gorm:"index"`
	MaxAge         *int     `json:"max_age" gorm:"index"`
	MinAgeRec      *float64 `json:"min_age_rec" gorm:"index"`
	MaxAgeRec      *float64 `json:"max_age_rec" gorm:"index"`
	MinTime        *int     `json:"min_time" gorm:"index"`
	MaxTime        *int     `json:"max_time" gorm:"index"`

	Cooperative bool `json:"cooperative" gorm:"index"`
	Compilation bool `json:"compilation" gorm:"index"`

	BGGRank      *int     `json:"bgg_rank" gorm:"index"`
	NumVotes     int      `json:"num_votes" gorm:"index"`
	AvgRating    *float64 `json:"avg_rating" gorm:"index"`
	StddevRating *float64 `json:"stddev_rating"`
	BayesRating  *float64 `json:"bayes_rating" gorm:"index"`

	// Snapshot of the global (non-personalized) model ranking, written by the
	// ingestion pipeline. Per-request personalized values live on
	// RecommendedGame instead.
	RecRank   *int     `json:"rec_rank" gorm:"index"`
	RecRating *float64 `json:"rec_rating" gorm:"index"`
	RecStars  *float64 `json:"rec_stars" gorm:"index"`

	Complexity         *float64 `json:"complexity" gorm:"index"`
	LanguageDependency *float64 `json:"language_dependency" gorm:"index"`

	Designer []Person   `json:"designer" gorm:"many2many:game_designers"`
	Artist   []Person   `json:"artist" gorm:"many2many:game_artists"`
	GameType []GameType `json:"game_type" gorm:"many2many:game_game_types"`
	Category []Category `json:"category" gorm:"many2many:game_categories"`
	Mechanic []Mechanic `json:"mechanic" gorm:"many2many:game_mechanics"`

	Implements     []Game `json:"-" gorm:"many2many:game_implements;joinForeignKey:game_id;joinReferences:implements_id"`
	IntegratesWith []Game `json:"-" gorm:"many2many:game_integrations;joinForeignKey:game_id;joinReferences:integrates_id"`
	CompilationOf  []Game `json:"-" gorm:"many2many:game_compilations;joinForeignKey:game_id;joinReferences:contained_id"`

	ScrapedAt time.Time `json:"scraped_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
