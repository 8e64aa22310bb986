package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	rawdatamock "github.com/riskibarqy/sports-reconciler/internal/mocks/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/platform/cache"
	"github.com/riskibarqy/sports-reconciler/internal/platform/logging"
	"github.com/riskibarqy/sports-reconciler/internal/reconcile"
)

var testNow = time.Date(2026, time.February, 22, 20, 0, 0, 0, time.UTC)

func newTestService(repo rawdata.Repository, cfg ReconcileConfig) *ReconcileService {
	clock := func() time.Time { return testNow }
	logger := logging.NewNop()

	return NewReconcileService(
		repo,
		reconcile.NewNormalizer(reconcile.WithClock(clock), reconcile.WithLogger(logger)),
		reconcile.NewLiveClassifier(reconcile.WithLiveClock(clock), reconcile.WithLiveLogger(logger)),
		nil,
		cfg,
		logger,
	)
}

func leaguePtr(v string) *string {
	return &v
}

func TestReconcileService_ReconcileTeams_CollapsesDuplicates(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	service := newTestService(repo, ReconcileConfig{})

	got, err := service.ReconcileTeams(context.Background(), TeamBatchInput{
		Sport: "basketball",
		Teams: []rawdata.Payload{
			{"name": "Lakers", "sport": "basketball"},
			{"name": "L.A. Lakers FC", "sport": "basketball", "city": "Los Angeles"},
			{},
			{"displayName": "Boston Celtics"},
		},
	})
	if err != nil {
		t.Fatalf("reconcile teams: %v", err)
	}

	if got.InputCount != 4 || got.DroppedCount != 1 || got.DuplicateCount != 1 {
		t.Fatalf("unexpected counts: input=%d dropped=%d duplicates=%d", got.InputCount, got.DroppedCount, got.DuplicateCount)
	}
	if len(got.Teams) != 2 {
		t.Fatalf("unexpected team count: got=%d want=2", len(got.Teams))
	}
	if got.Teams[0].Name != "Lakers" || got.Teams[0].City == nil {
		t.Fatalf("expected the more complete Lakers record first, got %+v", got.Teams[0])
	}
	if got.Teams[1].Name != "Celtics" {
		t.Fatalf("unexpected second team: %q", got.Teams[1].Name)
	}
}

func TestReconcileService_ReconcileTeams_RequiresSport(t *testing.T) {
	t.Parallel()

	service := newTestService(rawdatamock.NewRepository(t), ReconcileConfig{})

	_, err := service.ReconcileTeams(context.Background(), TeamBatchInput{Sport: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReconcileService_ReconcileTeams_IncludesStoredRows(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	service := newTestService(repo, ReconcileConfig{})

	repo.
		On("ListTeamRows", mock.Anything, "soccer", "EPL").
		Return([]rawdata.Payload{
			{"name": "Arsenal FC", "founded": 1886},
			{"name": "Chelsea FC"},
		}, nil).
		Once()

	got, err := service.ReconcileTeams(context.Background(), TeamBatchInput{
		Sport:         "soccer",
		League:        leaguePtr(" EPL "),
		IncludeStored: true,
		Teams:         []rawdata.Payload{{"name": "Arsenal"}},
	})
	if err != nil {
		t.Fatalf("reconcile teams: %v", err)
	}

	if got.InputCount != 3 || got.DuplicateCount != 1 || len(got.Teams) != 2 {
		t.Fatalf("unexpected result: input=%d duplicates=%d teams=%d", got.InputCount, got.DuplicateCount, len(got.Teams))
	}
	if got.Teams[0].Founded == nil || *got.Teams[0].Founded != 1886 {
		t.Fatalf("expected stored row with more fields to win, got %+v", got.Teams[0])
	}
	if got.Teams[0].League == nil || *got.Teams[0].League != "EPL" {
		t.Fatalf("expected trimmed league, got %v", got.Teams[0].League)
	}
}

func TestReconcileService_ReconcileGames(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	service := newTestService(repo, ReconcileConfig{})

	kickoff := testNow.Add(-30 * time.Minute).Format(time.RFC3339)
	repo.
		On("ListGameRows", mock.Anything, "basketball", "NBA").
		Return([]rawdata.Payload{
			{"home_team": map[string]any{"name": "Lakers"}, "away_team": map[string]any{"name": "Celtics"}, "date": kickoff, "homeScore": 10, "awayScore": 7, "status": "in progress"},
			{"home_team": map[string]any{"name": "Heat"}, "away_team": map[string]any{"name": "Knicks"}, "date": "2026-02-21T19:00:00Z", "status": "Final", "homeScore": 99, "awayScore": 101},
		}, nil).
		Once()
	repo.
		On("ListTeamRows", mock.Anything, "basketball", "NBA").
		Return([]rawdata.Payload{
			{"name": "Lakers"},
			{"name": "Boston Celtics"},
			{"name": "Miami Heat"},
		}, nil).
		Once()

	got, err := service.ReconcileGames(context.Background(), GameBatchInput{
		Sport:         "basketball",
		League:        leaguePtr("NBA"),
		IncludeStored: true,
		Games: []rawdata.Payload{
			{"homeTeam": map[string]any{"name": "L.A. Lakers"}, "awayTeam": map[string]any{"name": "Boston Celtics"}, "dateTime": kickoff, "home_score": nil, "away_score": nil, "status": "scheduled"},
		},
	})
	if err != nil {
		t.Fatalf("reconcile games: %v", err)
	}

	if got.InputCount != 3 || got.DuplicateCount != 1 || len(got.Games) != 2 {
		t.Fatalf("unexpected result: input=%d duplicates=%d games=%d", got.InputCount, got.DuplicateCount, len(got.Games))
	}
	if !got.Games[0].HasScore() || *got.Games[0].HomeScore != 10 {
		t.Fatalf("expected the scored Lakers game to win dedup, got %+v", got.Games[0])
	}
	if len(got.LiveGameIDs) != 1 || got.LiveGameIDs[0] != got.Games[0].ID {
		t.Fatalf("unexpected live ids: %v", got.LiveGameIDs)
	}
	if got.Integrity.KnownTeams != 3 {
		t.Fatalf("unexpected known team count: %d", got.Integrity.KnownTeams)
	}
	if len(got.Integrity.UnknownTeamGameIDs) != 1 || got.Integrity.UnknownTeamGameIDs[0] != got.Games[1].ID {
		t.Fatalf("expected the Knicks game to reference an unknown team, got %v", got.Integrity.UnknownTeamGameIDs)
	}
}

func TestReconcileService_ReconcileGames_StrictDates(t *testing.T) {
	t.Parallel()

	service := newTestService(rawdatamock.NewRepository(t), ReconcileConfig{StrictGameDates: true})

	got, err := service.ReconcileGames(context.Background(), GameBatchInput{
		Sport: "soccer",
		Games: []rawdata.Payload{
			{"home": "Arsenal", "away": "Chelsea", "date": "2026-02-21"},
			{"home": "Arsenal", "away": "Spurs"},
		},
	})
	if err != nil {
		t.Fatalf("reconcile games: %v", err)
	}

	if got.RejectedCount != 1 || len(got.Rejections) != 1 || got.Rejections[0].Index != 1 {
		t.Fatalf("expected the undated game to be rejected, got %+v", got.Rejections)
	}
	if len(got.Games) != 1 || got.Games[0].AwayTeam.Name != "Chelsea" {
		t.Fatalf("unexpected accepted games: %+v", got.Games)
	}

	lenient := newTestService(rawdatamock.NewRepository(t), ReconcileConfig{})
	all, err := lenient.ReconcileGames(context.Background(), GameBatchInput{
		Sport: "soccer",
		Games: []rawdata.Payload{{"home": "Arsenal", "away": "Spurs"}},
	})
	if err != nil {
		t.Fatalf("reconcile games: %v", err)
	}
	if all.RejectedCount != 0 || len(all.Games) != 1 || !all.Games[0].DateInferred {
		t.Fatalf("expected lenient mode to keep the inferred date, got %+v", all)
	}
}

func TestReconcileService_ReconcileGames_StoredSourceFailure(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	service := newTestService(repo, ReconcileConfig{})

	repo.
		On("ListGameRows", mock.Anything, "soccer", "").
		Return(nil, fmt.Errorf("connection refused")).
		Once()
	repo.
		On("ListTeamRows", mock.Anything, "soccer", "").
		Return([]rawdata.Payload{}, nil).
		Once()

	_, err := service.ReconcileGames(context.Background(), GameBatchInput{Sport: "soccer", IncludeStored: true})
	if !crerr.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestReconcileService_ListLiveGames(t *testing.T) {
	t.Parallel()

	service := newTestService(rawdatamock.NewRepository(t), ReconcileConfig{})
	games := []rawdata.Payload{
		{"home": "Lakers", "away": "Celtics", "date": testNow.Add(-20 * time.Minute).Format(time.RFC3339), "status": "scheduled"},
		{"home": "Heat", "away": "Knicks", "date": testNow.Add(-2 * time.Hour).Format(time.RFC3339), "status": "Q3 12:04"},
		{"home": "Bulls", "away": "Nets", "date": testNow.Add(-3 * time.Hour).Format(time.RFC3339), "status": "Final"},
	}

	got, err := service.ListLiveGames(context.Background(), LiveGamesInput{Sport: "basketball", Games: games})
	if err != nil {
		t.Fatalf("list live games: %v", err)
	}
	if len(got) != 1 || got[0].HomeTeam.Name != "Heat" {
		t.Fatalf("expected only the in-play game with the default window, got %d games", len(got))
	}

	wide := 30
	got, err = service.ListLiveGames(context.Background(), LiveGamesInput{Sport: "basketball", Games: games, GraceWindowMinutes: &wide})
	if err != nil {
		t.Fatalf("list live games: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the wider grace window to include the scheduled game, got %d games", len(got))
	}

	negative := -1
	_, err = service.ListLiveGames(context.Background(), LiveGamesInput{Sport: "basketball", GraceWindowMinutes: &negative})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReconcileService_LargeBatchKeepsInputOrder(t *testing.T) {
	t.Parallel()

	service := newTestService(rawdatamock.NewRepository(t), ReconcileConfig{MaxWorkers: 4})

	payloads := make([]rawdata.Payload, 0, 200)
	for i := 0; i < 200; i++ {
		payloads = append(payloads, rawdata.Payload{"name": fmt.Sprintf("Club %03d", i%100)})
	}

	got, err := service.ReconcileTeams(context.Background(), TeamBatchInput{Sport: "soccer", Teams: payloads})
	if err != nil {
		t.Fatalf("reconcile teams: %v", err)
	}
	if len(got.Teams) != 100 || got.DuplicateCount != 100 {
		t.Fatalf("unexpected result: teams=%d duplicates=%d", len(got.Teams), got.DuplicateCount)
	}
	for i, tm := range got.Teams {
		if want := fmt.Sprintf("Club %03d", i); tm.Name != want {
			t.Fatalf("unexpected team at %d: got=%q want=%q", i, tm.Name, want)
		}
	}
}

func TestReconcileService_RejectsOversizedBatch(t *testing.T) {
	t.Parallel()

	service := newTestService(rawdatamock.NewRepository(t), ReconcileConfig{})

	_, err := service.ReconcileGames(context.Background(), GameBatchInput{Sport: "soccer", Games: make([]rawdata.Payload, MaxBatchSize+1)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReconcileService_CacheStats(t *testing.T) {
	t.Parallel()

	disabled := newTestService(nil, ReconcileConfig{})
	if stats := disabled.CacheStats(); stats != (cache.Stats{}) {
		t.Fatalf("expected zero stats without a cache, got %+v", stats)
	}

	store := cache.NewStore(cache.Config{TTL: time.Minute, SweepInterval: time.Minute, MaxEntries: 16})
	defer store.Close()

	normalizer := reconcile.NewNormalizer(reconcile.WithMemo(store), reconcile.WithLogger(logging.NewNop()))
	service := NewReconcileService(nil, normalizer, nil, store, ReconcileConfig{}, logging.NewNop())

	input := TeamBatchInput{Sport: "soccer", Teams: []rawdata.Payload{{"name": "Arsenal"}}}
	for i := 0; i < 2; i++ {
		if _, err := service.ReconcileTeams(context.Background(), input); err != nil {
			t.Fatalf("reconcile teams: %v", err)
		}
	}

	stats := service.CacheStats()
	if stats.Entries != 1 || stats.Hits != 1 || stats.MaxEntries != 16 {
		t.Fatalf("unexpected cache stats: %+v", stats)
	}
}
