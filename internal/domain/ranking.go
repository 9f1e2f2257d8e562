package domain

import "time"

// Ranking types as stored in the rankings time series.
const (
	RankingTypeBGG    = "bgg"
	RankingTypeFactor = "fac"
)

// Ranking is one (game, type, date) snapshot of a published ranking. The
// series is append-only; rows are never updated once written.
type Ranking struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	GameID      uint      `json:"game" gorm:"index;not null"`
	RankingType string    `json:"ranking_type" gorm:"index;not null"`
	Rank        int       `json:"rank" gorm:"index;not null"`
	Date        time.Time `json:"date" gorm:"index;not null"`
}
