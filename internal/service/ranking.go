package service

import (
	"context"
	"fmt"
	"time"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"github.com/rs/zerolog"
)

// HistoryEntry pairs one of the current top games with its full ranking
// time series.
type HistoryEntry struct {
	Game     *domain.Game      `json:"game"`
	Rankings []*domain.Ranking `json:"rankings"`
}

type RankingService struct {
	rankings repository.RankingRepository
	games    repository.GameRepository
	logger   zerolog.Logger
}

func NewRankingService(rankings repository.RankingRepository, games repository.GameRepository, logger zerolog.Logger) *RankingService {
	return &RankingService{
		rankings: rankings,
		games:    games,
		logger:   logger.With().Str("component", "ranking").Logger(),
	}
}

func (s *RankingService) List(ctx context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time, limit, offset int) ([]*domain.Ranking, int64, error) {
	rows, err := s.rankings.Find(ctx, rankingTypes, gameID, dateFrom, dateTo, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.rankings.Count(ctx, rankingTypes, gameID, dateFrom, dateTo)
	if err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}

func (s *RankingService) Dates(ctx context.Context, rankingTypes []string) ([]repository.RankingDate, error) {
	return s.rankings.Dates(ctx, rankingTypes)
}

// ForGame returns the ranking series of one game, optionally restricted by
// type and date bounds.
func (s *RankingService) ForGame(ctx context.Context, gameID uint, rankingTypes []string, dateFrom, dateTo *time.Time) ([]*domain.Ranking, error) {
	return s.rankings.Find(ctx, rankingTypes, &gameID, dateFrom, dateTo, 0, 0)
}

// History returns the top games of the most recent snapshot together with
// each game's full series. The snapshot must contain exactly top games up to
// the cutoff rank; fewer means the precomputed series is corrupted, which is
// reported as ErrInconsistentRankings rather than recovered.
func (s *RankingService) History(ctx context.Context, top int, rankingType string, dateFrom, dateTo *time.Time) ([]HistoryEntry, error) {
	last, err := s.rankings.LatestDate(ctx, rankingType, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.rankings.AtDate(ctx, rankingType, last, top)
	if err != nil {
		return nil, err
	}
	if len(snapshot) != top {
		return nil, fmt.Errorf("expected %d games at rank <= %d on %s, found %d: %w",
			top, top, last.Format("2006-01-02"), len(snapshot), domain.ErrInconsistentRankings)
	}

	gameIDs := make([]uint, len(snapshot))
	for i, row := range snapshot {
		gameIDs[i] = row.GameID
	}

	rows, err := s.games.FindByIDs(ctx, repository.GameQuery{}, gameIDs, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*domain.Game, len(rows))
	for _, row := range rows {
		byID[row.BGGID] = row
	}

	series, err := s.rankings.Series(ctx, rankingType, gameIDs, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	seriesByGame := make(map[uint][]*domain.Ranking, len(gameIDs))
	for _, row := range series {
		seriesByGame[row.GameID] = append(seriesByGame[row.GameID], row)
	}

	entries := make([]HistoryEntry, 0, len(snapshot))
	for _, row := range snapshot {
		game, ok := byID[row.GameID]
		if !ok {
			return nil, fmt.Errorf("ranked game <%d> missing from catalog: %w",
				row.GameID, domain.ErrInconsistentRankings)
		}
		entries = append(entries, HistoryEntry{Game: game, Rankings: seriesByGame[row.GameID]})
	}
	return entries, nil
}
