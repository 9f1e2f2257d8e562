package service

import (
	"context"
	"sort"
	"strings"

	"github.com/recgames/board-game-server/internal/config"
	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/metrics"
	"github.com/recgames/board-game-server/internal/recommender"
	"github.com/recgames/board-game-server/internal/repository"
	"github.com/rs/zerolog"
)

// Mode is the recommendation dispatch mode, computed once from the parsed
// request and then switched exhaustively.
type Mode int

const (
	ModePlainListing Mode = iota
	ModeSingleUser
	ModeGroup
	ModeSimilarity
)

func (m Mode) String() string {
	switch m {
	case ModeSingleUser:
		return "single_user"
	case ModeGroup:
		return "group"
	case ModeSimilarity:
		return "similarity"
	default:
		return "plain_listing"
	}
}

// RecommendParams is the parsed shape of a /games/recommend request.
type RecommendParams struct {
	Users   []string
	Like    []uint
	Include []uint
	Exclude []uint

	ExcludeOptions ExcludeOptions

	// SimilarityModel selects the similarity-based model variant.
	SimilarityModel bool

	// Site selects the recommender artifact ("bgg" by default).
	Site string

	// Query carries the standing catalog filters of the request.
	Query repository.GameQuery
}

// Mode derives the dispatch mode from the request shape.
func (p *RecommendParams) Mode() Mode {
	switch {
	case len(p.Users) == 1:
		return ModeSingleUser
	case len(p.Users) > 1:
		return ModeGroup
	case len(p.Like) > 0:
		return ModeSimilarity
	default:
		return ModePlainListing
	}
}

type RecommendService struct {
	games       repository.GameRepository
	collections repository.CollectionRepository
	models      *recommender.Cache
	cfg         *config.Config
	logger      zerolog.Logger
}

func NewRecommendService(
	games repository.GameRepository,
	collections repository.CollectionRepository,
	models *recommender.Cache,
	cfg *config.Config,
	logger zerolog.Logger,
) *RecommendService {
	return &RecommendService{
		games:       games,
		collections: collections,
		models:      models,
		cfg:         cfg,
		logger:      logger.With().Str("component", "recommend").Logger(),
	}
}

func (s *RecommendService) model(site string) *recommender.Model {
	if site == "" {
		site = "bgg"
	}
	return s.models.Get(s.cfg.RecommenderPath, site)
}

// Rank resolves a recommendation request into the full ranked sequence,
// before pagination. It returns domain.ErrModelUnavailable when no model is
// loaded, which callers downgrade to a plain listing.
func (s *RecommendService) Rank(ctx context.Context, p *RecommendParams) ([]domain.RecommendedItem, error) {
	mode := p.Mode()
	metrics.RecommendRequests.WithLabelValues(mode.String()).Inc()

	model := s.model(p.Site)
	if model == nil {
		return nil, domain.ErrModelUnavailable
	}

	switch mode {
	case ModeSingleUser:
		return s.rankSingleUser(ctx, p, model)
	case ModeGroup:
		return s.rankGroup(ctx, p, model)
	case ModeSimilarity:
		return s.rankSimilar(ctx, p, model)
	default:
		return nil, domain.ErrModelUnavailable
	}
}

func (s *RecommendService) rankSingleUser(ctx context.Context, p *RecommendParams, model *recommender.Model) ([]domain.RecommendedItem, error) {
	user := strings.ToLower(p.Users[0])
	if _, known := model.KnownUsers()[user]; !known {
		return nil, domain.UserNotFound(user)
	}

	candidates, err := s.candidates(ctx, p.Query, p.Include, model)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	exclude := s.BuildExclusion(ctx, user, p.ExcludeOptions, p.Include, p.Exclude)

	recs := model.Recommend(recommender.RecommendRequest{
		Users:           []string{user},
		Games:           candidates,
		Exclude:         map[string][]uint{user: exclude},
		ExcludeKnown:    p.ExcludeOptions.Known,
		ExcludeClusters: p.ExcludeOptions.Clusters,
		SimilarityModel: p.SimilarityModel,
		StarPercentiles: s.cfg.StarPercentiles,
	})

	items := make([]domain.RecommendedItem, len(recs))
	for i, rec := range recs {
		items[i] = domain.RecommendedItem{
			GameID: rec.GameID,
			Rank:   rec.Rank,
			Score:  rec.Score,
			Stars:  rec.Stars,
		}
	}
	return items, nil
}

func (s *RecommendService) rankGroup(ctx context.Context, p *RecommendParams, model *recommender.Model) ([]domain.RecommendedItem, error) {
	known := model.KnownUsers()
	users := make([]string, 0, len(p.Users))
	for _, name := range p.Users {
		name = strings.ToLower(name)
		if _, ok := known[name]; ok {
			users = append(users, name)
		}
	}
	if len(users) == 0 {
		return nil, domain.UserNotFound(strings.Join(p.Users, ", "))
	}

	// Group mode uses aggregate rather than personalized exclusion, so the
	// explicit include/exclude sets are not applied here.
	candidates, err := s.candidates(ctx, p.Query, nil, model)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	recs := model.Recommend(recommender.RecommendRequest{
		Users:           users,
		Games:           candidates,
		ExcludeKnown:    false,
		SimilarityModel: p.SimilarityModel,
	})

	return meanByGame(recs), nil
}

// meanByGame aggregates per-user records into one record per game carrying
// the arithmetic mean score, ranked descending. Ties keep the order games
// first appeared in the recommender output.
func meanByGame(recs []recommender.Recommendation) []domain.RecommendedItem {
	type agg struct {
		sum   float64
		count int
	}
	order := make([]uint, 0, len(recs))
	sums := make(map[uint]*agg, len(recs))
	for _, rec := range recs {
		a, ok := sums[rec.GameID]
		if !ok {
			a = &agg{}
			sums[rec.GameID] = a
			order = append(order, rec.GameID)
		}
		a.sum += rec.Score
		a.count++
	}

	items := make([]domain.RecommendedItem, len(order))
	for i, id := range order {
		a := sums[id]
		items[i] = domain.RecommendedItem{GameID: id, Score: a.sum / float64(a.count)}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	for i := range items {
		items[i].Rank = i + 1
	}
	return items
}

func (s *RecommendService) rankSimilar(ctx context.Context, p *RecommendParams, model *recommender.Model) ([]domain.RecommendedItem, error) {
	candidates, err := s.candidates(ctx, p.Query, nil, model)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	recs := model.RecommendSimilar(p.Like, candidates)
	items := make([]domain.RecommendedItem, len(recs))
	for i, rec := range recs {
		items[i] = domain.RecommendedItem{GameID: rec.GameID, Rank: rec.Rank, Score: rec.Score}
	}
	return items, nil
}

// candidates computes (include ∪ catalog-filtered ids) ∩ model coverage,
// ascending for deterministic scoring order.
func (s *RecommendService) candidates(ctx context.Context, q repository.GameQuery, include []uint, model *recommender.Model) ([]uint, error) {
	ids, err := s.games.IDs(ctx, q)
	if err != nil {
		return nil, err
	}

	rated := model.RatedGames()
	seen := make(map[uint]struct{}, len(ids)+len(include))
	candidates := make([]uint, 0, len(ids)+len(include))
	for _, id := range append(include, ids...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := rated[id]; ok {
			candidates = append(candidates, id)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates, nil
}

// SimilarTo ranks the catalog neighbours of one game using the model's own
// similarity ranking. Returns ErrModelUnavailable when no model is loaded.
func (s *RecommendService) SimilarTo(ctx context.Context, site string, id uint) ([]domain.RecommendedItem, error) {
	model := s.model(site)
	if model == nil {
		return nil, domain.ErrModelUnavailable
	}

	neighbours := model.SimilarGames(id, 0)
	if len(neighbours) == 0 {
		return nil, domain.GameNotFound(id)
	}

	items := make([]domain.RecommendedItem, len(neighbours))
	for i, n := range neighbours {
		items[i] = domain.RecommendedItem{GameID: n.GameID, Rank: n.Rank, Score: n.Score}
	}
	return items, nil
}
