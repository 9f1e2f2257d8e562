package recommender

// RecommendRequest is one scoring call against a loaded model. Users must
// already be lowercased; Games is the candidate pool (nil means the model's
// full coverage).
type RecommendRequest struct {
	Users []string
	Games []uint
	// Exclude lists game ids to drop from the results of a given user.
	Exclude map[string][]uint
	// ExcludeKnown drops games the user has already rated.
	ExcludeKnown bool
	// ExcludeClusters additionally drops games clustered with known ones.
	ExcludeClusters bool
	// SimilarityModel switches from the rating predictor to the
	// similarity-based variant.
	SimilarityModel bool
	// StarPercentiles are ascending score-percentile thresholds used to
	// translate scores into star counts. Empty disables stars.
	StarPercentiles []float64
}

// Recommendation is one scored (user, game) record. Rank is 1-based per user,
// descending by score.
type Recommendation struct {
	User   string
	GameID uint
	Rank   int
	Score  float64
	Stars  *float64
}

// SimilarGame is one neighbour of a similarity query.
type SimilarGame struct {
	GameID uint
	Rank   int
	Score  float64
}

// Recommender is the read-only contract of a trained model. Implementations
// must be safe for concurrent use; all methods are pure reads.
type Recommender interface {
	KnownUsers() map[string]struct{}
	RatedGames() map[uint]struct{}
	Recommend(req RecommendRequest) []Recommendation
	RecommendSimilar(seedIDs, candidates []uint) []Recommendation
	// SimilarGames ranks the neighbours of one game; numGames 0 means all.
	SimilarGames(id uint, numGames int) []SimilarGame
}
