package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrModelUnavailable means the recommender artifact could not be loaded.
	// Callers downgrade to a plain catalog listing instead of surfacing it.
	ErrModelUnavailable = errors.New("recommender model unavailable")

	// ErrInconsistentRankings means the precomputed ranking series does not
	// contain the expected number of games at the latest snapshot date. This
	// indicates corrupted data and is propagated as a server error.
	ErrInconsistentRankings = errors.New("inconsistent ranking data")
)

func UserNotFound(name string) error {
	return fmt.Errorf("user <%s> could not be found: %w", name, ErrNotFound)
}

func GameNotFound(id uint) error {
	return fmt.Errorf("game <%d> could not be found: %w", id, ErrNotFound)
}
