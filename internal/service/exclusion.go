package service

import (
	"context"
	"sort"

	"github.com/recgames/board-game-server/internal/metrics"
	"github.com/recgames/board-game-server/internal/repository"
)

// ExcludeOptions configures which collection history rules feed the
// exclusion set of a user-scoped recommendation.
type ExcludeOptions struct {
	// Known excludes games the user has already rated. Defaults to true at
	// the parsing layer.
	Known bool
	// Owned excludes games marked owned in the collection.
	Owned bool
	// Wishlist excludes games wishlisted at or above the given priority
	// (lower number = higher priority).
	Wishlist *int
	// PlayCount excludes games played at least this many times.
	PlayCount *int
	// Clusters additionally suppresses games clustered with known ones.
	Clusters bool
}

// clauses builds the ORed collection predicates of the options. An empty
// result means no collection query is needed at all.
func (o ExcludeOptions) clauses() []repository.Predicate {
	var clauses []repository.Predicate
	if o.Owned {
		clauses = append(clauses, repository.Predicate{Field: "owned", Op: repository.OpExact, Value: true})
	}
	if o.Known && o.Clusters {
		clauses = append(clauses, repository.Predicate{Field: "rating", Op: repository.OpIsNull, Value: false})
	}
	if o.Wishlist != nil {
		clauses = append(clauses, repository.Predicate{Field: "wishlist", Op: repository.OpLTE, Value: *o.Wishlist})
	}
	if o.PlayCount != nil {
		clauses = append(clauses, repository.Predicate{Field: "play_count", Op: repository.OpGTE, Value: *o.PlayCount})
	}
	return clauses
}

// BuildExclusion derives the final exclusion set for a user: collection rows
// matching the options, unioned with the seed excludes, minus the explicit
// includes. A failing collection query degrades to the seed set — exclusion
// is best effort and must never block a response.
func (s *RecommendService) BuildExclusion(ctx context.Context, user string, opts ExcludeOptions, include, seedExclude []uint) []uint {
	excluded := make(map[uint]struct{}, len(seedExclude))
	for _, id := range seedExclude {
		excluded[id] = struct{}{}
	}

	if clauses := opts.clauses(); len(clauses) > 0 {
		ids, err := s.collections.GameIDs(ctx, user, clauses)
		if err != nil {
			metrics.ExclusionQueryFailures.Inc()
			s.logger.Warn().Err(err).Str("user", user).
				Msg("exclusion query failed, falling back to seed excludes")
		} else {
			for _, id := range ids {
				excluded[id] = struct{}{}
			}
		}
	}

	for _, id := range include {
		delete(excluded, id)
	}

	out := make([]uint, 0, len(excluded))
	for id := range excluded {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
