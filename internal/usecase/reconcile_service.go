package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
	"github.com/riskibarqy/sports-reconciler/internal/platform/cache"
	"github.com/riskibarqy/sports-reconciler/internal/platform/logging"
	"github.com/riskibarqy/sports-reconciler/internal/reconcile"
)

const (
	DefaultMaxWorkers = 8
	MaxBatchSize      = 10000
)

type ReconcileConfig struct {
	MaxWorkers int
	// StrictGameDates rejects games whose date had to be defaulted.
	StrictGameDates bool
}

// CacheStatsSource reports memo cache counters. cache.Store implements it.
type CacheStatsSource interface {
	Stats() cache.Stats
}

type ReconcileService struct {
	rawRepo    rawdata.Repository
	normalizer *reconcile.Normalizer
	live       *reconcile.LiveClassifier
	cacheStats CacheStatsSource
	cfg        ReconcileConfig
	logger     *logging.Logger
}

func NewReconcileService(
	rawRepo rawdata.Repository,
	normalizer *reconcile.Normalizer,
	live *reconcile.LiveClassifier,
	cacheStats CacheStatsSource,
	cfg ReconcileConfig,
	logger *logging.Logger,
) *ReconcileService {
	if normalizer == nil {
		normalizer = reconcile.NewNormalizer()
	}
	if live == nil {
		live = reconcile.NewLiveClassifier()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ReconcileService{
		rawRepo:    rawRepo,
		normalizer: normalizer,
		live:       live,
		cacheStats: cacheStats,
		cfg:        cfg,
		logger:     logger.Named("reconcile"),
	}
}

type TeamBatchInput struct {
	Sport         string
	League        *string
	IncludeStored bool
	Teams         []rawdata.Payload
}

type TeamBatchResult struct {
	Teams          []team.Team `json:"teams"`
	InputCount     int         `json:"input_count"`
	DroppedCount   int         `json:"dropped_count"`
	DuplicateCount int         `json:"duplicate_count"`
}

type GameBatchInput struct {
	Sport         string
	League        *string
	IncludeStored bool
	Games         []rawdata.Payload
}

type GameRejection struct {
	Index  int    `json:"index"`
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
}

type GameBatchResult struct {
	Games          []game.Game               `json:"games"`
	InputCount     int                       `json:"input_count"`
	RejectedCount  int                       `json:"rejected_count"`
	DuplicateCount int                       `json:"duplicate_count"`
	LiveGameIDs    []string                  `json:"live_game_ids"`
	Rejections     []GameRejection           `json:"rejections,omitempty"`
	Integrity      reconcile.IntegrityReport `json:"integrity"`
}

type LiveGamesInput struct {
	Sport         string
	League        *string
	IncludeStored bool
	// GraceWindowMinutes overrides the configured window when set.
	GraceWindowMinutes *int
	Games              []rawdata.Payload
}

func (s *ReconcileService) ReconcileTeams(ctx context.Context, input TeamBatchInput) (TeamBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileTeams")
	defer span.End()

	sport, league, err := normalizeScope(input.Sport, input.League)
	if err != nil {
		return TeamBatchResult{}, err
	}
	if err := validateBatch(len(input.Teams)); err != nil {
		return TeamBatchResult{}, err
	}

	payloads := input.Teams
	if input.IncludeStored {
		stored, err := s.loadStoredTeams(ctx, sport, league)
		if err != nil {
			return TeamBatchResult{}, err
		}
		payloads = appendPayloads(payloads, stored)
	}

	teams, dropped, err := s.normalizeTeams(ctx, payloads, sport, league)
	if err != nil {
		return TeamBatchResult{}, err
	}
	deduped := reconcile.DeduplicateTeams(teams)

	result := TeamBatchResult{
		Teams:          deduped,
		InputCount:     len(payloads),
		DroppedCount:   dropped,
		DuplicateCount: len(teams) - len(deduped),
	}
	span.SetAttributes(
		attribute.String("reconcile.sport", sport),
		attribute.Int("reconcile.input_count", result.InputCount),
		attribute.Int("reconcile.output_count", len(deduped)),
	)
	s.logger.DebugContext(ctx, "teams reconciled",
		"sport", sport,
		"input", result.InputCount,
		"output", len(deduped),
		"dropped", dropped,
		"duplicates", result.DuplicateCount,
	)

	return result, nil
}

func (s *ReconcileService) ReconcileGames(ctx context.Context, input GameBatchInput) (GameBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileGames")
	defer span.End()

	sport, league, err := normalizeScope(input.Sport, input.League)
	if err != nil {
		return GameBatchResult{}, err
	}
	if err := validateBatch(len(input.Games)); err != nil {
		return GameBatchResult{}, err
	}

	payloads := input.Games
	var knownTeams []team.Team
	if input.IncludeStored {
		storedGames, storedTeams, err := s.loadStoredGamesAndTeams(ctx, sport, league)
		if err != nil {
			return GameBatchResult{}, err
		}
		payloads = appendPayloads(payloads, storedGames)

		teams, _, err := s.normalizeTeams(ctx, storedTeams, sport, league)
		if err != nil {
			return GameBatchResult{}, err
		}
		knownTeams = reconcile.DeduplicateTeams(teams)
	}

	accepted, rejections, err := s.normalizeGames(ctx, payloads, sport, league)
	if err != nil {
		return GameBatchResult{}, err
	}
	deduped := reconcile.DeduplicateGames(accepted)

	liveIDs := make([]string, 0)
	for _, g := range deduped {
		if s.live.IsLive(g) {
			liveIDs = append(liveIDs, g.ID)
		}
	}

	result := GameBatchResult{
		Games:          deduped,
		InputCount:     len(payloads),
		RejectedCount:  len(rejections),
		DuplicateCount: len(accepted) - len(deduped),
		LiveGameIDs:    liveIDs,
		Rejections:     rejections,
		Integrity:      reconcile.CheckIntegrity(knownTeams, deduped),
	}
	span.SetAttributes(
		attribute.String("reconcile.sport", sport),
		attribute.Int("reconcile.input_count", result.InputCount),
		attribute.Int("reconcile.output_count", len(deduped)),
		attribute.Int("reconcile.live_count", len(liveIDs)),
	)
	if !result.Integrity.OK() {
		s.logger.WarnContext(ctx, "reconciled games failed integrity check",
			"sport", sport,
			"unknown_team_games", len(result.Integrity.UnknownTeamGameIDs),
			"placeholder_games", len(result.Integrity.PlaceholderGameIDs),
		)
	}

	return result, nil
}

func (s *ReconcileService) ListLiveGames(ctx context.Context, input LiveGamesInput) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ListLiveGames")
	defer span.End()

	sport, league, err := normalizeScope(input.Sport, input.League)
	if err != nil {
		return nil, err
	}
	if err := validateBatch(len(input.Games)); err != nil {
		return nil, err
	}

	classifier := s.live
	if input.GraceWindowMinutes != nil {
		if *input.GraceWindowMinutes < 0 {
			return nil, fmt.Errorf("%w: grace window must not be negative", ErrInvalidInput)
		}
		classifier = s.live.With(reconcile.WithGraceWindowMinutes(*input.GraceWindowMinutes))
	}

	payloads := input.Games
	if input.IncludeStored {
		stored, err := s.loadStoredGames(ctx, sport, league)
		if err != nil {
			return nil, err
		}
		payloads = appendPayloads(payloads, stored)
	}

	accepted, _, err := s.normalizeGames(ctx, payloads, sport, league)
	if err != nil {
		return nil, err
	}

	out := make([]game.Game, 0)
	for _, g := range reconcile.DeduplicateGames(accepted) {
		if classifier.IsLive(g) {
			out = append(out, g)
		}
	}
	span.SetAttributes(attribute.Int("reconcile.live_count", len(out)))

	return out, nil
}

// CacheStats returns zero stats when the memo cache is disabled.
func (s *ReconcileService) CacheStats() cache.Stats {
	if s.cacheStats == nil {
		return cache.Stats{}
	}
	return s.cacheStats.Stats()
}

func (s *ReconcileService) normalizeTeams(ctx context.Context, payloads []rawdata.Payload, sport string, league *string) ([]team.Team, int, error) {
	normalized := make([]*team.Team, len(payloads))
	err := runParallel(ctx, s.cfg.MaxWorkers, len(payloads), func(i int) {
		normalized[i] = s.normalizer.NormalizeTeam(payloads[i], sport, league)
	})
	if err != nil {
		return nil, 0, err
	}

	teams := make([]team.Team, 0, len(normalized))
	dropped := 0
	for _, t := range normalized {
		if t == nil {
			dropped++
			continue
		}
		teams = append(teams, *t)
	}
	return teams, dropped, nil
}

func (s *ReconcileService) normalizeGames(ctx context.Context, payloads []rawdata.Payload, sport string, league *string) ([]game.Game, []GameRejection, error) {
	normalized := make([]game.Game, len(payloads))
	err := runParallel(ctx, s.cfg.MaxWorkers, len(payloads), func(i int) {
		normalized[i] = s.normalizer.NormalizeGame(payloads[i], sport, league)
	})
	if err != nil {
		return nil, nil, err
	}
	if !s.cfg.StrictGameDates {
		return normalized, nil, nil
	}

	accepted := make([]game.Game, 0, len(normalized))
	var rejections []GameRejection
	for i, g := range normalized {
		if err := reconcile.ValidateGameDate(g); err != nil {
			s.logger.WarnContext(ctx, "game rejected", "index", i, "game_id", g.ID, "error", err)
			rejections = append(rejections, GameRejection{Index: i, GameID: g.ID, Reason: err.Error()})
			continue
		}
		accepted = append(accepted, g)
	}
	return accepted, rejections, nil
}

func (s *ReconcileService) loadStoredTeams(ctx context.Context, sport string, league *string) ([]rawdata.Payload, error) {
	if s.rawRepo == nil {
		return nil, nil
	}
	rows, err := s.rawRepo.ListTeamRows(ctx, sport, derefLeague(league))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "list stored team rows"), ErrDependencyUnavailable)
	}
	return rows, nil
}

func (s *ReconcileService) loadStoredGames(ctx context.Context, sport string, league *string) ([]rawdata.Payload, error) {
	if s.rawRepo == nil {
		return nil, nil
	}
	rows, err := s.rawRepo.ListGameRows(ctx, sport, derefLeague(league))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "list stored game rows"), ErrDependencyUnavailable)
	}
	return rows, nil
}

// loadStoredGamesAndTeams reads both stored sources concurrently.
func (s *ReconcileService) loadStoredGamesAndTeams(ctx context.Context, sport string, league *string) ([]rawdata.Payload, []rawdata.Payload, error) {
	var (
		games, teams       []rawdata.Payload
		gamesErr, teamsErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		games, gamesErr = s.loadStoredGames(ctx, sport, league)
	})
	wg.Go(func() {
		teams, teamsErr = s.loadStoredTeams(ctx, sport, league)
	})
	wg.Wait()

	if err := crerr.CombineErrors(gamesErr, teamsErr); err != nil {
		return nil, nil, err
	}
	return games, teams, nil
}

func normalizeScope(sport string, league *string) (string, *string, error) {
	sport = strings.TrimSpace(sport)
	if sport == "" {
		return "", nil, fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	if league == nil {
		return sport, nil, nil
	}

	trimmed := strings.TrimSpace(*league)
	if trimmed == "" {
		return sport, nil, nil
	}
	return sport, &trimmed, nil
}

func validateBatch(size int) error {
	if size > MaxBatchSize {
		return fmt.Errorf("%w: batch of %d exceeds limit %d", ErrInvalidInput, size, MaxBatchSize)
	}
	return nil
}

func appendPayloads(first, second []rawdata.Payload) []rawdata.Payload {
	out := make([]rawdata.Payload, 0, len(first)+len(second))
	out = append(out, first...)
	return append(out, second...)
}

func derefLeague(league *string) string {
	if league == nil {
		return ""
	}
	return *league
}
