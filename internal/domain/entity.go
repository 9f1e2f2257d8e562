package domain

// Person is a game designer and/or artist.
type Person struct {
	BGGID uint   `json:"bgg_id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"index;not null"`
}

// UncreditedPersonID is BGG's placeholder "(Uncredited)" entry. It is skipped
// in stats breakdowns.
const UncreditedPersonID uint = 3

type GameType struct {
	BGGID uint   `json:"bgg_id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"index;not null"`
}

type Category struct {
	BGGID uint   `json:"bgg_id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"index;not null"`
}

type Mechanic struct {
	BGGID uint   `json:"bgg_id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"index;not null"`
}
