package recommender

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// artifact is the on-disk layout of a trained model, written by the offline
// training pipeline. The server only ever reads it.
type artifact struct {
	Site  string               `json:"site"`
	Users map[string]userEntry `json:"users"`
	Games map[string]gameEntry `json:"games"`
}

type userEntry struct {
	Factors []float64 `json:"factors"`
	Rated   []uint    `json:"rated"`
}

type gameEntry struct {
	Factors    []float64 `json:"factors"`
	Popularity float64   `json:"popularity"`
	Cluster    int       `json:"cluster"`
}

// Model is a loaded, immutable recommender. Safe to share across requests
// without locking.
type Model struct {
	site       string
	users      map[string]userEntry
	games      map[uint]gameEntry
	knownUsers map[string]struct{}
	ratedGames map[uint]struct{}
	gameIDs    []uint // sorted, for deterministic full-coverage iteration
}

// Load reads a model artifact from dir. User names are normalized to
// lowercase on load.
func Load(dir, site string) (*Model, error) {
	raw, err := os.ReadFile(filepath.Join(dir, site, "model.json"))
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if art.Site != "" && art.Site != site {
		return nil, fmt.Errorf("artifact is for site <%s>, expected <%s>", art.Site, site)
	}

	m := &Model{
		site:       site,
		users:      make(map[string]userEntry, len(art.Users)),
		games:      make(map[uint]gameEntry, len(art.Games)),
		knownUsers: make(map[string]struct{}, len(art.Users)),
		ratedGames: make(map[uint]struct{}, len(art.Games)),
	}

	for name, entry := range art.Users {
		name = strings.ToLower(name)
		m.users[name] = entry
		m.knownUsers[name] = struct{}{}
	}
	for key, entry := range art.Games {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad game id <%s> in artifact: %w", key, err)
		}
		m.games[uint(id)] = entry
		m.ratedGames[uint(id)] = struct{}{}
		m.gameIDs = append(m.gameIDs, uint(id))
	}
	sort.Slice(m.gameIDs, func(i, j int) bool { return m.gameIDs[i] < m.gameIDs[j] })

	return m, nil
}

func (m *Model) KnownUsers() map[string]struct{} { return m.knownUsers }

func (m *Model) RatedGames() map[uint]struct{} { return m.ratedGames }

func (m *Model) score(user userEntry, game gameEntry, similarity bool) float64 {
	if similarity {
		// The similarity variant folds in the item popularity baseline,
		// so broadly liked games outrank obscure ones at equal affinity.
		return cosine(user.Factors, game.Factors) + game.Popularity
	}
	return dot(user.Factors, game.Factors)
}

func (m *Model) Recommend(req RecommendRequest) []Recommendation {
	pool := req.Games
	if pool == nil {
		pool = m.gameIDs
	}

	var out []Recommendation
	for _, name := range req.Users {
		user, ok := m.users[name]
		if !ok {
			continue
		}

		exclude := make(map[uint]struct{}, len(req.Exclude[name]))
		for _, id := range req.Exclude[name] {
			exclude[id] = struct{}{}
		}

		var clusters map[int]struct{}
		if req.ExcludeKnown {
			for _, id := range user.Rated {
				exclude[id] = struct{}{}
			}
			if req.ExcludeClusters {
				clusters = make(map[int]struct{})
				for _, id := range user.Rated {
					if game, ok := m.games[id]; ok && game.Cluster != 0 {
						clusters[game.Cluster] = struct{}{}
					}
				}
			}
		}

		scored := make([]Recommendation, 0, len(pool))
		for _, id := range pool {
			game, ok := m.games[id]
			if !ok {
				continue
			}
			if _, skip := exclude[id]; skip {
				continue
			}
			if clusters != nil && game.Cluster != 0 {
				if _, skip := clusters[game.Cluster]; skip {
					continue
				}
			}
			scored = append(scored, Recommendation{
				User:   name,
				GameID: id,
				Score:  m.score(user, game, req.SimilarityModel),
			})
		}

		sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
		for i := range scored {
			scored[i].Rank = i + 1
		}

		if len(req.StarPercentiles) > 0 {
			m.attachStars(name, scored, req.StarPercentiles, req.SimilarityModel)
		}

		out = append(out, scored...)
	}
	return out
}

// attachStars maps each score to its percentile within the user's full
// coverage, then counts how many configured thresholds it clears.
func (m *Model) attachStars(name string, recs []Recommendation, percentiles []float64, similarity bool) {
	user := m.users[name]
	all := make([]float64, 0, len(m.gameIDs))
	for _, id := range m.gameIDs {
		all = append(all, m.score(user, m.games[id], similarity))
	}
	sort.Float64s(all)

	for i := range recs {
		below := sort.SearchFloat64s(all, recs[i].Score)
		pct := float64(below) / float64(len(all))
		stars := 0.0
		for _, threshold := range percentiles {
			if pct >= threshold {
				stars++
			}
		}
		recs[i].Stars = &stars
	}
}

func (m *Model) RecommendSimilar(seedIDs, candidates []uint) []Recommendation {
	seed := make([]float64, 0)
	seeds := make(map[uint]struct{}, len(seedIDs))
	count := 0
	for _, id := range seedIDs {
		game, ok := m.games[id]
		if !ok {
			continue
		}
		seeds[id] = struct{}{}
		if len(seed) == 0 {
			seed = make([]float64, len(game.Factors))
		}
		for i, f := range game.Factors {
			seed[i] += f
		}
		count++
	}
	if count == 0 {
		return nil
	}
	for i := range seed {
		seed[i] /= float64(count)
	}

	if candidates == nil {
		candidates = m.gameIDs
	}

	scored := make([]Recommendation, 0, len(candidates))
	for _, id := range candidates {
		if _, isSeed := seeds[id]; isSeed {
			continue
		}
		game, ok := m.games[id]
		if !ok {
			continue
		}
		scored = append(scored, Recommendation{
			GameID: id,
			Score:  cosine(seed, game.Factors),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func (m *Model) SimilarGames(id uint, numGames int) []SimilarGame {
	game, ok := m.games[id]
	if !ok {
		return nil
	}

	scored := make([]SimilarGame, 0, len(m.gameIDs))
	for _, other := range m.gameIDs {
		if other == id {
			continue
		}
		scored = append(scored, SimilarGame{
			GameID: other,
			Score:  cosine(game.Factors, m.games[other].Factors),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if numGames > 0 && numGames < len(scored) {
		scored = scored[:numGames]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func cosine(a, b []float64) float64 {
	normA := math.Sqrt(dot(a, a))
	normB := math.Sqrt(dot(b, b))
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot(a, b) / (normA * normB)
}
