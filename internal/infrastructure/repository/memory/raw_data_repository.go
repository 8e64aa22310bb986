package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
)

// StoredRow is one provider payload tagged with the scope it was stored under.
type StoredRow struct {
	Sport   string
	League  string
	Payload rawdata.Payload
}

type RawDataRepository struct {
	mu       sync.RWMutex
	teamRows []StoredRow
	gameRows []StoredRow
}

func NewRawDataRepository(teamRows, gameRows []StoredRow) *RawDataRepository {
	r := &RawDataRepository{}
	r.AddTeamRows(teamRows...)
	r.AddGameRows(gameRows...)
	return r
}

func (r *RawDataRepository) AddTeamRows(rows ...StoredRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teamRows = append(r.teamRows, rows...)
}

func (r *RawDataRepository) AddGameRows(rows ...StoredRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameRows = append(r.gameRows, rows...)
}

func (r *RawDataRepository) ListTeamRows(_ context.Context, sport, league string) ([]rawdata.Payload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterRows(r.teamRows, sport, league), nil
}

func (r *RawDataRepository) ListGameRows(_ context.Context, sport, league string) ([]rawdata.Payload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterRows(r.gameRows, sport, league), nil
}

// filterRows matches sport and league case-insensitively. An empty league
// matches every league. Payloads are copied so callers cannot mutate
// stored rows.
func filterRows(rows []StoredRow, sport, league string) []rawdata.Payload {
	sport = strings.TrimSpace(sport)
	league = strings.TrimSpace(league)

	out := make([]rawdata.Payload, 0, len(rows))
	for _, row := range rows {
		if !strings.EqualFold(row.Sport, sport) {
			continue
		}
		if league != "" && !strings.EqualFold(row.League, league) {
			continue
		}
		out = append(out, maps.Clone(row.Payload))
	}
	return out
}
