package domain

// RecommendedItem is one entry of a recommender response: a game id with its
// 1-based rank and model score. Stars is only set when the model was asked to
// translate scores into star ratings.
type RecommendedItem struct {
	GameID uint     `json:"bgg_id"`
	Rank   int      `json:"rank"`
	Score  float64  `json:"score"`
	Stars  *float64 `json:"stars,omitempty"`
}

// RecommendedGame is a catalog row joined with its per-request recommendation
// fields. It only exists for the lifetime of one response.
type RecommendedGame struct {
	Game
	RecRank   int      `json:"rec_rank"`
	RecRating *float64 `json:"rec_rating"`
	RecStars  *float64 `json:"rec_stars"`
}
