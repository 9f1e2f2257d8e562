package repository

// Op is a predicate operator on a single column.
type Op string

const (
	OpExact  Op = "exact"
	OpGT     Op = "gt"
	OpGTE    Op = "gte"
	OpLT     Op = "lt"
	OpLTE    Op = "lte"
	OpIsNull Op = "isnull"
	OpIn     Op = "in"
)

// Predicate is one column condition. Field is the database column name; the
// API layer only builds predicates from a whitelist, so repositories may
// interpolate Field into SQL.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// GameQuery is the standing catalog query of a request: ANDed column
// predicates, relation membership filters, a name search and an ordering.
type GameQuery struct {
	Predicates []Predicate
	// Relations filters games by membership in a many-to-many relation,
	// e.g. {"designer": 13, "mechanic": 2023}.
	Relations map[string]uint
	Search    string
	// Ordering entries are column names, "-" prefix for descending.
	Ordering []string
}

// CollectionStats is the per-user rollup over a fixed set of games.
type CollectionStats struct {
	Owned  int `json:"owned"`
	Played int `json:"played"`
	Rated  int `json:"rated"`
}

// EntityStat is one row of a stats breakdown: a related entity with the
// number of top games credited to it and the best (lowest) rank among them.
type EntityStat struct {
	BGGID uint    `json:"bgg_id"`
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
	Best  int     `json:"best"`
}

// RankingDate is one distinct (type, date) pair of the ranking series.
type RankingDate struct {
	RankingType string `json:"ranking_type"`
	Date        string `json:"date"`
}
